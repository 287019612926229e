package tenant

import "github.com/prometheus/client_golang/prometheus"

// ResolutionDegradedTotal counts requests whose tenant resolution degraded
// to the global realm. Fail-open resolution silently changes request
// semantics, so every degradation is observable here and in the logs.
var ResolutionDegradedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tenantkit_tenant_resolution_degraded_total",
		Help: "Tenant resolutions degraded to the global realm",
	},
	[]string{"reason"},
)

// Degradation reasons recorded on ResolutionDegradedTotal.
const (
	ReasonNotFound         = "not_found"
	ReasonInvalidSubdomain = "invalid_subdomain"
	ReasonDirectoryError   = "directory_error"
)

func init() {
	prometheus.MustRegister(ResolutionDegradedTotal)
}

package auth

import "github.com/prometheus/client_golang/prometheus"

// AuthenticationsTotal counts login attempts by outcome. The outcome label
// never carries the failure reason; reasons stay in the logs to keep the
// anti-enumeration posture intact even on the metrics surface.
var AuthenticationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tenantkit_authentications_total",
		Help: "Login attempts by outcome",
	},
	[]string{"outcome"},
)

// Outcome labels recorded on AuthenticationsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

func init() {
	prometheus.MustRegister(AuthenticationsTotal)
}

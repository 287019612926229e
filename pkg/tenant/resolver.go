package tenant

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// LoopbackHost always resolves to the global realm, with or without a port.
const LoopbackHost = "localhost"

// subdomainPattern ensures DNS-safe subdomain labels.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Resolver extracts a subdomain candidate from an HTTP request.
// Returns empty string when the request belongs to the global realm.
type Resolver func(r *http.Request) (string, error)

// NewSubdomainResolver extracts the tenant subdomain from the request host.
//
// With an empty baseDomain the first label of any host with two or more
// labels is treated as the subdomain. That makes a bare apex such as
// "example.com" indistinguishable from a true subdomain, so deployments
// that serve the apex should set baseDomain (e.g. "example.com"): the apex
// and any host outside the base domain then resolve to the global realm,
// and only hosts strictly under the base domain yield a candidate.
func NewSubdomainResolver(baseDomain string) Resolver {
	baseDomain = strings.ToLower(strings.TrimSpace(baseDomain))

	return func(req *http.Request) (string, error) {
		host := strings.ToLower(req.Host)
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}

		if host == "" || host == LoopbackHost {
			return "", nil
		}

		var candidate string
		if baseDomain != "" {
			if host == baseDomain || !strings.HasSuffix(host, "."+baseDomain) {
				return "", nil
			}
			candidate, _, _ = strings.Cut(strings.TrimSuffix(host, "."+baseDomain), ".")
		} else {
			parts := strings.Split(host, ".")
			if len(parts) < 2 {
				return "", nil
			}
			candidate = parts[0]
		}

		if !subdomainPattern.MatchString(candidate) {
			return "", fmt.Errorf("%w: %q", ErrInvalidSubdomain, candidate)
		}

		return candidate, nil
	}
}

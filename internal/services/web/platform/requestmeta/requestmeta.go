// Package requestmeta resolves request scheme and origin facts.
package requestmeta

import (
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how the request scheme is resolved.
//
// X-Forwarded-Proto is only honoured when TrustForwardedProto is set.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// IsHTTPSWithPolicy reports whether a request should be treated as HTTPS.
func IsHTTPSWithPolicy(r *http.Request, policy SchemePolicy) bool {
	return scheme(r, policy) == "https"
}

// IsCrossOriginWithPolicy reports whether the request names an Origin (or,
// failing that, a Referer) that differs from the request host. Requests
// with neither header are not considered cross-origin.
func IsCrossOriginWithPolicy(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	source := strings.TrimSpace(r.Header.Get("Origin"))
	if source == "" || source == "null" {
		source = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if source == "" {
		return false
	}
	parsed, err := url.Parse(source)
	if err != nil || parsed.Host == "" {
		return true
	}
	requestScheme := scheme(r, policy)
	if !strings.EqualFold(parsed.Scheme, requestScheme) {
		return true
	}
	return hostPort(parsed.Host, parsed.Scheme) != hostPort(r.Host, requestScheme)
}

func scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedProto {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func hostPort(rawHost string, scheme string) string {
	parsed, err := url.Parse("//" + strings.TrimSpace(rawHost))
	if err != nil {
		return ""
	}
	port := parsed.Port()
	if port == "" {
		switch strings.ToLower(scheme) {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}
	return strings.ToLower(parsed.Hostname()) + ":" + port
}

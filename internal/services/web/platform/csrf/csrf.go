// Package csrf issues and checks per-form XSRF tokens bound to a browser
// cookie.
package csrf

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/galien/internal/platform/id"
	apperrors "github.com/louisbranch/galien/internal/services/web/platform/errors"
	"github.com/louisbranch/galien/internal/services/web/platform/requestmeta"
	"golang.org/x/net/xsrftoken"
)

const (
	// CookieName stores the opaque browser id tokens are bound to.
	CookieName = "galien_csrf"
	// FieldName is the form field carrying the token.
	FieldName = "csrf_token"
	// HeaderName lets HTMX requests send the token as a header.
	HeaderName = "X-CSRF-Token"
)

// ErrInvalidToken reports a missing or mismatched token.
var ErrInvalidToken = apperrors.EK(apperrors.KindForbidden, "error.web.message.invalid_xsrf_token", "invalid xsrf token")

type browserIDKey struct{}

// Protector binds tokens to a secret key.
type Protector struct {
	key    string
	policy requestmeta.SchemePolicy
}

// New returns a protector. The key must not be empty.
func New(key string, policy requestmeta.SchemePolicy) (*Protector, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("csrf key is required")
	}
	return &Protector{key: key, policy: policy}, nil
}

// Middleware ensures every request has a browser id and rejects unsafe
// methods that do not carry a valid token for their path.
func (p *Protector) Middleware(onReject func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	if onReject == nil {
		onReject = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), apperrors.HTTPStatus(err))
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			browserID, fresh := browserIDFromRequest(r)
			if fresh {
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    browserID,
					Path:     "/",
					HttpOnly: true,
					Secure:   requestmeta.IsHTTPSWithPolicy(r, p.policy),
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int((30 * 24 * time.Hour).Seconds()),
				})
			}
			r = r.WithContext(context.WithValue(r.Context(), browserIDKey{}, browserID))

			if !safeMethod(r.Method) {
				if fresh || requestmeta.IsCrossOriginWithPolicy(r, p.policy) || !p.Valid(r, r.URL.Path) {
					onReject(w, r, ErrInvalidToken)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Token returns a token for a form posting to action.
func (p *Protector) Token(r *http.Request, action string) string {
	if p == nil || r == nil {
		return ""
	}
	browserID, ok := r.Context().Value(browserIDKey{}).(string)
	if !ok || browserID == "" {
		return ""
	}
	return xsrftoken.Generate(p.key, browserID, action)
}

// Valid reports whether the request carries a token for action.
func (p *Protector) Valid(r *http.Request, action string) bool {
	if p == nil || r == nil {
		return false
	}
	browserID, ok := r.Context().Value(browserIDKey{}).(string)
	if !ok || browserID == "" {
		return false
	}
	token := strings.TrimSpace(r.Header.Get(HeaderName))
	if token == "" {
		token = strings.TrimSpace(r.PostFormValue(FieldName))
	}
	if token == "" {
		return false
	}
	return xsrftoken.Valid(token, p.key, browserID, action)
}

func browserIDFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if value := strings.TrimSpace(cookie.Value); id.Valid(value) {
			return value, false
		}
	}
	generated, err := id.NewID()
	if err != nil {
		return "", true
	}
	return generated, true
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

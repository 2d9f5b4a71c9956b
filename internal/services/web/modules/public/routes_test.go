package public

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/galien/internal/platform/i18n"
	module "github.com/louisbranch/galien/internal/services/web/module"
)

func mountPublic(t *testing.T) http.Handler {
	t.Helper()
	mount, err := New().Mount(module.Dependencies{Localization: i18n.NewProvider(i18n.LocaleFR)})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/" {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, "/")
	}
	return mount.Handler
}

func TestModuleIDReturnsPublic(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "public" {
		t.Fatalf("ID() = %q, want %q", got, "public")
	}
}

func TestHomeRendersLandingPage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountPublic(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="home"`) || !strings.Contains(body, `href="/" class="nav-link active" aria-current="page"`) {
		t.Fatalf("body = %q, want home page with active home link", body)
	}
	if !strings.Contains(body, "Commencer mon inscription") {
		t.Fatalf("body = %q, want register call to action", body)
	}
}

func TestHomeHeadIsServed(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountPublic(t).ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	mountPublic(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if body := rr.Body.String(); !strings.Contains(body, `id="error-state"`) {
		t.Fatalf("body = %q, want error state", body)
	}
}

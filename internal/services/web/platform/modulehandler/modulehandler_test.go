package modulehandler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/galien/internal/platform/i18n"
	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/platform/flash"
)

type failingComponent struct{}

func (failingComponent) Render(context.Context, io.Writer) error {
	return io.ErrUnexpectedEOF
}

func TestPageLocalizerUsesDependencyProvider(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{Localization: i18n.NewProvider(i18n.LocaleEN)})
	loc := base.PageLocalizer(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got := loc.Locale(); got != i18n.LocaleEN {
		t.Fatalf("Locale() = %q, want %q", got, i18n.LocaleEN)
	}
}

func TestCSRFTokenWithoutProtectorIsEmpty(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	if got := base.CSRFToken(httptest.NewRequest(http.MethodGet, "/register", nil), "/register"); got != "" {
		t.Fatalf("CSRFToken() = %q, want empty", got)
	}
	if got := base.CSRFField(); got != "csrf_token" {
		t.Fatalf("CSRFField() = %q", got)
	}
}

func TestNotifyWritesFlashCookie(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{})
	rr := httptest.NewRecorder()
	base.Notify(rr, httptest.NewRequest(http.MethodPost, "/", nil), flash.NoticeSuccess("web.notice.email_queued"))
	if header := rr.Header().Get("Set-Cookie"); !strings.Contains(header, flash.CookieName+"=") {
		t.Fatalf("Set-Cookie = %q, want flash cookie", header)
	}
}

func TestWriteNotFoundRendersErrorPage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewBase(module.Dependencies{}).WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestWritePageRenderFailureWritesError(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	base := NewBase(module.Dependencies{})
	base.WritePage(rr, httptest.NewRequest(http.MethodGet, "/", nil), i18n.Localizer{}, "Home", http.StatusOK, failingComponent{})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

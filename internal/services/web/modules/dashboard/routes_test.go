package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/platform/i18n"
	module "github.com/louisbranch/galien/internal/services/web/module"
	"github.com/louisbranch/galien/internal/services/web/platform/flash"
	"github.com/louisbranch/galien/internal/services/web/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const jeanID = "12345678-abcd-efgh-ijkl-123456789012"

func jean() participant.Participant {
	return participant.Participant{
		ID:               jeanID,
		FirstName:        "Jean",
		LastName:         "Dupont",
		Email:            "jean.dupont@example.com",
		Phone:            "+33 6 12 34 56 78",
		Organization:     "Institut Pasteur",
		Country:          "France",
		Status:           participant.StatusApproved,
		Type:             participant.TypeSpeaker,
		RegistrationDate: "2023-09-15T10:30:00Z",
	}
}

func mountDashboard(t *testing.T, gateway Gateway, deps module.Dependencies) http.Handler {
	t.Helper()
	if deps.Localization == nil {
		deps.Localization = i18n.NewProvider(i18n.LocaleEN)
	}
	mount, err := NewWithGateway(gateway).Mount(deps)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/dashboard/" {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, "/dashboard/")
	}
	return mount.Handler
}

func serve(h http.Handler, method string, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestModuleIDReturnsDashboard(t *testing.T) {
	t.Parallel()

	if got := New().ID(); got != "dashboard" {
		t.Fatalf("ID() = %q, want %q", got, "dashboard")
	}
	if New().Healthy() {
		t.Fatalf("Healthy() = true without gateway")
	}
}

func TestListRendersParticipants(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(jean())
	h := mountDashboard(t, gateway, module.Dependencies{})
	rr := serve(h, http.MethodGet, "/dashboard?slug=congres&page_size=1000")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `href="/dashboard/congres/`+jeanID+`"`) || !strings.Contains(body, "Jean Dupont") {
		t.Fatalf("body = %q, want participant row", body)
	}
	if gateway.lastQuery.PageSize != participant.MaxPageSize {
		t.Fatalf("PageSize = %d, want %d", gateway.lastQuery.PageSize, participant.MaxPageSize)
	}
	if !strings.Contains(body, `id="dashboard-link" href="/dashboard?slug=main" class="dashboard-link active"`) {
		t.Fatalf("body = %q, want active dashboard link", body)
	}
}

func TestListInvalidFilterRendersInlineError(t *testing.T) {
	t.Parallel()

	h := mountDashboard(t, newFakeGateway(jean()), module.Dependencies{})
	rr := serve(h, http.MethodGet, "/dashboard?filter=status+%3D%3D%3D")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if body := rr.Body.String(); !strings.Contains(body, "The participant filter is not valid.") {
		t.Fatalf("body = %q, want filter error", body)
	}
}

func TestListStoreFailureRendersUnavailable(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	gateway.listErr = errStoreDown
	rr := serve(mountDashboard(t, gateway, module.Dependencies{}), http.MethodGet, "/dashboard")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestDetailRendersParticipant(t *testing.T) {
	t.Parallel()

	h := mountDashboard(t, newFakeGateway(jean()), module.Dependencies{})
	rr := serve(h, http.MethodGet, "/dashboard/main/"+jeanID)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"Jean Dupont",
		"September 15, 2023, 10:30 AM",
		`href="/dashboard?slug=main"`,
		`action="/dashboard/main/` + jeanID + `/revoke"`,
		`action="/dashboard/main/` + jeanID + `/email"`,
		`href="/dashboard/main/` + jeanID + `/edit"`,
		`data-category="positive"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q: %s", want, body)
		}
	}
}

func TestDetailFrenchDateAndBadgeTab(t *testing.T) {
	t.Parallel()

	h := mountDashboard(t, newFakeGateway(jean()), module.Dependencies{Localization: i18n.NewProvider(i18n.LocaleFR)})
	rr := serve(h, http.MethodGet, "/dashboard/main/"+jeanID+"?tab=badge")
	body := rr.Body.String()
	if !strings.Contains(body, `id="participant-badge"`) {
		t.Fatalf("body = %q, want badge tab", body)
	}
	rr = serve(h, http.MethodGet, "/dashboard/main/"+jeanID)
	if body := rr.Body.String(); !strings.Contains(body, "15 septembre 2023 à 10:30") {
		t.Fatalf("body = %q, want french date", body)
	}
}

func TestDetailPendingParticipantOffersDelete(t *testing.T) {
	t.Parallel()

	p := jean()
	p.Status = participant.StatusPending
	p.RegistrationDate = "yesterday"
	rr := serve(mountDashboard(t, newFakeGateway(p), module.Dependencies{}), http.MethodGet, "/dashboard/main/"+jeanID)
	body := rr.Body.String()
	if !strings.Contains(body, `action="/dashboard/main/`+jeanID+`/delete"`) {
		t.Fatalf("body = %q, want delete action", body)
	}
	if !strings.Contains(body, participant.UnknownDate) {
		t.Fatalf("body = %q, want unknown date sentinel", body)
	}
}

func TestDetailMissingParticipantRendersNotFoundState(t *testing.T) {
	t.Parallel()

	rr := serve(mountDashboard(t, newFakeGateway(), module.Dependencies{}), http.MethodGet, "/dashboard/congres/missing")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="participant-not-found"`) || !strings.Contains(body, `href="/dashboard?slug=congres"`) {
		t.Fatalf("body = %q, want not-found state with back link", body)
	}
}

func TestSendEmailRedirectsWithNotice(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(jean())
	m := metrics.New()
	rr := serve(mountDashboard(t, gateway, module.Dependencies{Metrics: m}), http.MethodPost, "/dashboard/main/"+jeanID+"/email")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/dashboard/main/"+jeanID {
		t.Fatalf("Location = %q", got)
	}
	if header := rr.Header().Get("Set-Cookie"); !strings.Contains(header, flash.CookieName+"=") {
		t.Fatalf("Set-Cookie = %q, want flash notice", header)
	}
	if len(gateway.calls) != 1 || gateway.calls[0] != "email:"+jeanID {
		t.Fatalf("calls = %v", gateway.calls)
	}
	if got := testutil.ToFloat64(m.ParticipantActions.WithLabelValues("email", "ok")); got != 1 {
		t.Fatalf("email actions = %v, want 1", got)
	}
}

func TestRevokeThenDelete(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(jean())
	h := mountDashboard(t, gateway, module.Dependencies{})

	rr := serve(h, http.MethodPost, "/dashboard/main/"+jeanID+"/revoke")
	if got := rr.Header().Get("Location"); got != "/dashboard/main/"+jeanID {
		t.Fatalf("revoke Location = %q", got)
	}
	body := serve(h, http.MethodGet, "/dashboard/main/"+jeanID).Body.String()
	if !strings.Contains(body, `action="/dashboard/main/`+jeanID+`/delete"`) {
		t.Fatalf("body = %q, want delete once approval is revoked", body)
	}

	rr = serve(h, http.MethodPost, "/dashboard/main/"+jeanID+"/delete")
	if got := rr.Header().Get("Location"); got != "/dashboard?slug=main" {
		t.Fatalf("delete Location = %q", got)
	}
	if rr := serve(h, http.MethodGet, "/dashboard/main/"+jeanID); rr.Code != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestActionOnMissingParticipantRendersNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(mountDashboard(t, newFakeGateway(), module.Dependencies{}), http.MethodPost, "/dashboard/main/missing/email")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestActionFailureRedirectsWithErrorNotice(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(jean())
	gateway.actionErr = errStoreDown
	rr := serve(mountDashboard(t, gateway, module.Dependencies{}), http.MethodPost, "/dashboard/main/"+jeanID+"/revoke")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	notice, ok := flash.Store{}.ReadAndClear(httptest.NewRecorder(), req)
	if !ok || notice.Kind != flash.KindError || notice.Key != "error.web.message.service_unavailable" {
		t.Fatalf("notice = %+v, ok = %v", notice, ok)
	}
}

func TestRevokeOfUnapprovedParticipantKeepsStatus(t *testing.T) {
	t.Parallel()

	pending := jean()
	pending.Status = participant.StatusPending
	gateway := newFakeGateway(pending)
	rr := serve(mountDashboard(t, gateway, module.Dependencies{}), http.MethodPost, "/dashboard/main/"+jeanID+"/revoke")
	if got := rr.Header().Get("Location"); got != "/dashboard/main/"+jeanID {
		t.Fatalf("Location = %q, want %q", got, "/dashboard/main/"+jeanID)
	}
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	notice, ok := flash.Store{}.ReadAndClear(httptest.NewRecorder(), req)
	if !ok || notice.Kind != flash.KindError || notice.Key != "error.web.message.participant_not_approved" {
		t.Fatalf("notice = %+v, ok = %v", notice, ok)
	}
	if got := gateway.participants[jeanID].Status; got != participant.StatusPending {
		t.Fatalf("Status = %q, want %q", got, participant.StatusPending)
	}
}

func TestActionsRunWithBoundedContext(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(jean())
	h := mountDashboard(t, gateway, module.Dependencies{})
	for _, action := range []string{"email", "revoke", "delete"} {
		serve(h, http.MethodPost, "/dashboard/main/"+jeanID+"/"+action)
	}
	if len(gateway.calls) != 3 {
		t.Fatalf("calls = %v, want 3", gateway.calls)
	}
	if gateway.unbounded != 0 {
		t.Fatalf("unbounded = %d, want 0", gateway.unbounded)
	}
}

func TestEditFormAndUpdate(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(jean())
	h := mountDashboard(t, gateway, module.Dependencies{})

	rr := serve(h, http.MethodGet, "/dashboard/main/"+jeanID+"/edit")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `value="Institut Pasteur"`) {
		t.Fatalf("edit form status = %d body = %q", rr.Code, rr.Body.String())
	}

	form := "first_name=Jeanne&last_name=Dupont&email=jeanne%40example.com&country=France&type=press"
	req := httptest.NewRequest(http.MethodPost, "/dashboard/main/"+jeanID+"/edit", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if gateway.lastUpdate.FirstName != "Jeanne" || gateway.lastUpdate.Type != participant.TypePress {
		t.Fatalf("update = %+v", gateway.lastUpdate)
	}
}

func TestEditRejectsInvalidEmail(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway(jean())
	h := mountDashboard(t, gateway, module.Dependencies{})
	form := "first_name=Jean&last_name=Dupont&email=not-an-email&country=France&type=speaker"
	req := httptest.NewRequest(http.MethodPost, "/dashboard/main/"+jeanID+"/edit", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="edit-error"`) || !strings.Contains(body, `value="not-an-email"`) {
		t.Fatalf("body = %q, want inline error with entered value", body)
	}
	if len(gateway.calls) != 0 {
		t.Fatalf("calls = %v, want none", gateway.calls)
	}
}

func TestUnavailableGatewayRendersServiceError(t *testing.T) {
	t.Parallel()

	mount, err := New().Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if rr := serve(mount.Handler, http.MethodGet, "/dashboard/main/"+jeanID); rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestUnknownDashboardPathIsNotFound(t *testing.T) {
	t.Parallel()

	h := mountDashboard(t, newFakeGateway(jean()), module.Dependencies{})
	if rr := serve(h, http.MethodGet, "/dashboard/main/"+jeanID+"/unknown"); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestRouteNavigator(t *testing.T) {
	t.Parallel()

	nav := RouteNavigator{Slug: "congres"}
	if got := nav.Back(); got != "/dashboard?slug=congres" {
		t.Fatalf("Back() = %q", got)
	}
	p := jean()
	if got := nav.RevokeOrDelete(p); got != "/dashboard/congres/"+jeanID+"/revoke" {
		t.Fatalf("RevokeOrDelete(approved) = %q", got)
	}
	p.Status = participant.StatusRejected
	if got := nav.RevokeOrDelete(p); got != "/dashboard/congres/"+jeanID+"/delete" {
		t.Fatalf("RevokeOrDelete(rejected) = %q", got)
	}
	if got := nav.SendEmail("x"); got != "/dashboard/congres/x/email" {
		t.Fatalf("SendEmail() = %q", got)
	}
	if got := nav.Edit("x"); got != "/dashboard/congres/x/edit" {
		t.Fatalf("Edit() = %q", got)
	}
}

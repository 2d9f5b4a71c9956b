package registration

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/registration"
	"github.com/louisbranch/galien/internal/registration/drafttoken"
	"github.com/louisbranch/galien/internal/registration/terms"
	"github.com/louisbranch/galien/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/galien/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/galien/internal/services/web/templates"
)

// DraftCookieName carries the signed draft id.
const DraftCookieName = "galien_registration"

type service struct {
	workflow Workflow
	tokens   *drafttoken.Codec
}

func newService(workflow Workflow, tokens *drafttoken.Codec) service {
	return service{workflow: workflow, tokens: tokens}
}

// resume loads the draft named by the request cookie. A missing, forged or
// expired cookie starts a new draft.
func (s service) resume(ctx context.Context, r *http.Request) (registration.Draft, error) {
	draftID := ""
	if cookie, err := r.Cookie(DraftCookieName); err == nil {
		if id, err := s.tokens.Verify(cookie.Value); err == nil {
			draftID = id
		}
	}
	return s.workflow.LoadOrStart(ctx, draftID)
}

func (s service) writeDraftCookie(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, draftID string) error {
	token, err := s.tokens.Sign(draftID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     DraftCookieName,
		Value:    token,
		Path:     routepath.Register,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.tokens.TTL() / time.Second),
	})
	return nil
}

func clearDraftCookie(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	http.SetCookie(w, &http.Cookie{
		Name:     DraftCookieName,
		Value:    "",
		Path:     routepath.Register,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// formView maps a draft onto the form template state.
func (s service) formView(draft registration.Draft, loc i18n.Locale) (webtemplates.RegistrationView, error) {
	flow := s.workflow.Flow(draft)
	view := webtemplates.RegistrationView{
		Action:      routepath.Register,
		Step:        flow.Step(),
		StepCount:   flow.MaxSteps(),
		Application: draft.Application,
		CanRetreat:  flow.CanRetreat(),
		Primary:     registration.PrimaryActionFor(flow, s.workflow.IsSubmitting(draft.ID)),
	}
	if flow.Step() == registration.StepTerms {
		html, err := terms.HTML(loc)
		if err != nil {
			return view, err
		}
		view.TermsHTML = html
	}
	return view, nil
}

// completeURL returns the confirmation page for participantID.
func completeURL(participantID string) string {
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return routepath.RegisterComplete
	}
	return routepath.RegisterComplete + "?" + url.Values{"ref": {participantID}}.Encode()
}

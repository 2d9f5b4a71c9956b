package registration

import (
	"errors"
	"net/http"
	"strings"

	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/registration"
	module "github.com/louisbranch/galien/internal/services/web/module"
	apperrors "github.com/louisbranch/galien/internal/services/web/platform/errors"
	"github.com/louisbranch/galien/internal/services/web/platform/httpx"
	"github.com/louisbranch/galien/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/galien/internal/services/web/platform/weberror"
	"github.com/louisbranch/galien/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/galien/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.resume(r.Context(), r)
	if err != nil {
		h.WriteError(w, r, unavailable(err))
		return
	}
	if err := h.service.writeDraftCookie(w, r, h.Dependencies().RequestMeta, draft.ID); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderForm(w, r, draft, http.StatusOK, nil)
}

func (h handlers) handleFormPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.web.message.invalid_form", "parse registration form"))
		return
	}
	intent, ok := parseIntent(r.PostForm)
	if !ok {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.web.message.invalid_form", "unknown registration intent"))
		return
	}
	draft, err := h.service.resume(r.Context(), r)
	if err != nil {
		h.WriteError(w, r, unavailable(err))
		return
	}
	if err := h.service.writeDraftCookie(w, r, h.Dependencies().RequestMeta, draft.ID); err != nil {
		h.WriteError(w, r, err)
		return
	}
	// A form rendered for another step (back button, second tab) must not
	// overwrite the fields of the current one.
	if step, ok := parseStep(r.PostForm); !ok || step != draft.Step {
		httpx.WriteRedirect(w, r, routepath.Register)
		return
	}
	input := parseApplication(r.PostForm)

	switch intent {
	case intentPrevious:
		if _, err := h.service.workflow.Previous(r.Context(), draft, input); err != nil {
			h.WriteError(w, r, unavailable(err))
			return
		}
		httpx.WriteRedirect(w, r, routepath.Register)
	case intentNext:
		next, err := h.service.workflow.Next(r.Context(), draft, input)
		if err != nil {
			h.renderFailure(w, r, next, err)
			return
		}
		httpx.WriteRedirect(w, r, routepath.Register)
	case intentSubmit:
		participantID, next, err := h.service.workflow.Submit(r.Context(), draft, input)
		if errors.Is(err, registration.ErrAlreadySubmitted) {
			// Another request from this browser completed the draft.
			clearDraftCookie(w, r, h.Dependencies().RequestMeta)
			httpx.WriteRedirect(w, r, completeURL(""))
			return
		}
		if err != nil {
			h.renderFailure(w, r, next, err)
			return
		}
		clearDraftCookie(w, r, h.Dependencies().RequestMeta)
		httpx.WriteRedirect(w, r, completeURL(participantID))
	}
}

func (h handlers) handleComplete(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(w, r)
	reference := strings.TrimSpace(r.URL.Query().Get("ref"))
	h.WritePage(w, r, loc, loc.T("registration.complete.title"), http.StatusOK, webtemplates.RegistrationCompletePage(reference, loc))
}

// renderFailure re-renders the form with the entered data and an inline
// message for validation and submission errors. Other errors use the
// shared error page.
func (h handlers) renderFailure(w http.ResponseWriter, r *http.Request, draft registration.Draft, err error) {
	var validation *registration.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, registration.ErrSubmissionInFlight),
		errors.Is(err, registration.ErrSubmissionFailed):
		h.renderForm(w, r, draft, apperrors.HTTPStatus(apperrors.FromDomain(err)), err)
	default:
		h.WriteError(w, r, unavailable(err))
	}
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, draft registration.Draft, statusCode int, failure error) {
	loc := h.PageLocalizer(w, r)
	view, err := h.service.formView(draft, loc.Locale())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	view.CSRFField = h.CSRFField()
	view.CSRFToken = h.CSRFToken(r, routepath.Register)
	if failure != nil {
		view.Error = weberror.PublicMessage(loc, apperrors.FromDomain(failure))
		var validation *registration.ValidationError
		if errors.As(failure, &validation) {
			view.ErrorField = validation.Field
		}
	}
	h.WritePage(w, r, loc, pageTitle(loc), statusCode, webtemplates.RegistrationPage(view, loc))
}

func pageTitle(loc i18n.Localizer) string {
	return loc.T("registration.title")
}

// unavailable maps store failures onto the unavailable page while keeping
// typed errors as they are.
func unavailable(err error) error {
	mapped := apperrors.FromDomain(err)
	if apperrors.KindOf(mapped) != apperrors.KindUnknown {
		return mapped
	}
	return apperrors.Wrap(apperrors.KindUnavailable, "error.web.message.service_unavailable", err)
}

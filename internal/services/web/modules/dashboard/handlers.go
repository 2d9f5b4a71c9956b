package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/participant/filter"
	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/platform/timeouts"
	module "github.com/louisbranch/galien/internal/services/web/module"
	apperrors "github.com/louisbranch/galien/internal/services/web/platform/errors"
	"github.com/louisbranch/galien/internal/services/web/platform/flash"
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

// target is the participant addressed by a /dashboard/<slug>/<id> path.
type target struct {
	nav RouteNavigator
	id  string
}

func resolveTarget(r *http.Request) target {
	segments := routepath.Parse(r.URL.Path)
	return target{nav: RouteNavigator{Slug: segments.Slug()}, id: segments.ParticipantID()}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(w, r)
	req := parseListRequest(r.URL.Query())
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.StoreQuery)
	defer cancel()
	view, err := h.service.list(ctx, req)
	statusCode := http.StatusOK
	if err != nil {
		if !errors.Is(err, filter.ErrInvalid) {
			h.WriteError(w, r, unavailable(err))
			return
		}
		statusCode = http.StatusBadRequest
		view.Error = weberror.PublicMessage(loc, apperrors.FromDomain(err))
	}
	h.WritePage(w, r, loc, loc.T("participant.list.title"), statusCode, webtemplates.ParticipantListPage(view, loc))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(w, r)
	t := resolveTarget(r)
	p, ok := h.loadParticipant(w, r, loc, t)
	if !ok {
		return
	}
	view := detailView(p, t.nav, strings.TrimSpace(r.URL.Query().Get("tab")), loc.Locale())
	view.TabURL = func(tab string) string {
		return t.nav.detail(p.ID) + "?tab=" + tab
	}
	view.CSRFField = h.CSRFField()
	view.EmailToken = h.CSRFToken(r, view.EmailURL)
	view.RemovalToken = h.CSRFToken(r, view.RemovalURL)
	h.WritePage(w, r, loc, p.FullName(), http.StatusOK, webtemplates.ParticipantDetailPage(view, loc))
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(w, r)
	t := resolveTarget(r)
	p, ok := h.loadParticipant(w, r, loc, t)
	if !ok {
		return
	}
	h.renderEdit(w, r, loc, t, p, http.StatusOK, "")
}

func (h handlers) handleEditPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.web.message.invalid_form", "parse participant form"))
		return
	}
	loc := h.PageLocalizer(w, r)
	t := resolveTarget(r)
	update, err := parseUpdate(r.PostForm)
	if err != nil {
		p, ok := h.loadParticipant(w, r, loc, t)
		if !ok {
			return
		}
		h.renderEdit(w, r, loc, t, applyUpdate(p, update), http.StatusBadRequest, weberror.PublicMessage(loc, apperrors.FromDomain(err)))
		return
	}
	h.runAction(w, r, loc, t, "update", func(ctx context.Context) error {
		return h.service.gateway.UpdateParticipant(ctx, t.id, update)
	}, "web.notice.participant_updated", t.nav.detail(t.id))
}

func (h handlers) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(w, r)
	t := resolveTarget(r)
	h.runAction(w, r, loc, t, "email", func(ctx context.Context) error {
		return h.service.gateway.QueueEmail(ctx, t.id)
	}, "web.notice.email_queued", t.nav.detail(t.id))
}

func (h handlers) handleRevoke(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(w, r)
	t := resolveTarget(r)
	h.runAction(w, r, loc, t, string(participant.RemovalRevoke), func(ctx context.Context) error {
		return h.service.gateway.RevokeApproval(ctx, t.id)
	}, "web.notice.approval_revoked", t.nav.detail(t.id))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(w, r)
	t := resolveTarget(r)
	h.runAction(w, r, loc, t, string(participant.RemovalDelete), func(ctx context.Context) error {
		return h.service.gateway.DeleteParticipant(ctx, t.id)
	}, "web.notice.participant_deleted", t.nav.Back())
}

// runAction applies an organizer action and redirects with a notice. A
// missing participant renders the not-found state; other failures return to
// the detail page with an error notice.
func (h handlers) runAction(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, t target, name string, action func(context.Context) error, noticeKey string, next string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.StoreQuery)
	err := action(ctx)
	cancel()
	h.Dependencies().Metrics.ParticipantAction(name, err)
	switch {
	case err == nil:
		h.Notify(w, r, flash.NoticeSuccess(noticeKey))
		httpx.WriteRedirect(w, r, next)
	case errors.Is(err, participant.ErrNotFound):
		h.writeParticipantNotFound(w, r, loc, t)
	default:
		key := apperrors.LocalizationKey(err)
		if key == "" {
			key = "error.web.message.service_unavailable"
		}
		h.Notify(w, r, flash.NoticeError(key))
		httpx.WriteRedirect(w, r, t.nav.detail(t.id))
	}
}

func (h handlers) loadParticipant(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, t target) (participant.Participant, bool) {
	if t.id == "" {
		h.writeParticipantNotFound(w, r, loc, t)
		return participant.Participant{}, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.StoreQuery)
	defer cancel()
	p, err := h.service.gateway.GetParticipant(ctx, t.id)
	switch {
	case err == nil:
		return p, true
	case errors.Is(err, participant.ErrNotFound):
		h.writeParticipantNotFound(w, r, loc, t)
	default:
		h.WriteError(w, r, unavailable(err))
	}
	return participant.Participant{}, false
}

func (h handlers) writeParticipantNotFound(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, t target) {
	h.WritePage(w, r, loc, loc.T("participant.not_found.title"), http.StatusNotFound, webtemplates.ParticipantNotFound(t.nav.Back(), loc))
}

func (h handlers) renderEdit(w http.ResponseWriter, r *http.Request, loc i18n.Localizer, t target, p participant.Participant, statusCode int, message string) {
	action := t.nav.Edit(p.ID)
	view := webtemplates.ParticipantEditView{
		Action:      action,
		BackURL:     t.nav.detail(p.ID),
		CSRFField:   h.CSRFField(),
		CSRFToken:   h.CSRFToken(r, action),
		Participant: p,
		Error:       message,
	}
	h.WritePage(w, r, loc, loc.T("participant.edit.title"), statusCode, webtemplates.ParticipantEditPage(view, loc))
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

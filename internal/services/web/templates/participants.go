package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/galien/internal/participant"
)

// ParticipantRow is one line of the participant list.
type ParticipantRow struct {
	Name         string
	Email        string
	Organization string
	Status       participant.StatusClass
	URL          string
}

// ParticipantListView is the dashboard list page state.
type ParticipantListView struct {
	Action string
	Slug   string
	Filter string
	Error  string
	Rows   []ParticipantRow
}

// ParticipantListPage renders the dashboard participant list.
func ParticipantListPage(view ParticipantListView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section id="participant-list"><h1>`)
		h.text(T(loc, "participant.list.title"))
		h.raw(`</h1><form method="get" class="filter"`)
		h.attr("action", view.Action)
		h.raw(`>`)
		hidden(h, "slug", view.Slug)
		h.raw(`<label for="filter">`)
		h.text(T(loc, "participant.list.filter_label"))
		h.raw(`</label><input type="search" id="filter" name="filter" placeholder="status = &quot;approved&quot;"`)
		h.attr("value", view.Filter)
		if view.Error != "" {
			h.attr("aria-invalid", "true")
		}
		h.raw(`><button type="submit">`)
		h.text(T(loc, "participant.list.filter_apply"))
		h.raw(`</button></form>`)
		if view.Error != "" {
			h.raw(`<div id="filter-error" class="form-error" role="alert">`)
			h.text(view.Error)
			h.raw(`</div>`)
		}
		if len(view.Rows) == 0 {
			h.raw(`<p id="participant-list-empty" class="empty">`)
			h.text(T(loc, "participant.list.empty"))
			h.raw(`</p></section>`)
			return h.err
		}
		h.raw(`<table><thead><tr><th>`)
		h.text(T(loc, "participant.list.name"))
		h.raw(`</th><th>`)
		h.text(T(loc, "participant.field.email"))
		h.raw(`</th><th>`)
		h.text(T(loc, "participant.field.organization"))
		h.raw(`</th><th>`)
		h.text(T(loc, "participant.list.status"))
		h.raw(`</th></tr></thead><tbody>`)
		for _, row := range view.Rows {
			h.raw(`<tr><td><a`)
			h.attr("href", row.URL)
			h.raw(`>`)
			h.text(row.Name)
			h.raw(`</a></td><td>`)
			h.text(row.Email)
			h.raw(`</td><td>`)
			h.text(row.Organization)
			h.raw(`</td><td>`)
			statusBadge(h, row.Status)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
		return h.err
	})
}

// Participant detail tabs.
const (
	TabDetails = "details"
	TabBadge   = "badge"
)

// ParticipantDetailView is the detail page state. Action URLs come from a
// participant.Navigator.
type ParticipantDetailView struct {
	Participant      participant.Participant
	Status           participant.StatusClass
	RegistrationDate string
	Tab              string
	TabURL           func(tab string) string

	BackURL    string
	EditURL    string
	EmailURL   string
	RemovalURL string
	Removal    participant.Removal

	CSRFField    string
	EmailToken   string
	RemovalToken string
}

// ParticipantDetailPage renders one participant with quick actions.
func ParticipantDetailPage(view ParticipantDetailView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		p := view.Participant
		tab := view.Tab
		if tab != TabBadge {
			tab = TabDetails
		}
		h.raw(`<section id="participant-detail"`)
		h.attr("data-participant-id", p.ID)
		h.raw(`><a id="back-link" class="back-link"`)
		h.attr("href", view.BackURL)
		h.raw(`>`)
		h.text(T(loc, "participant.details.back"))
		h.raw(`</a><p class="kicker">`)
		h.text(T(loc, "participant.details.kicker"))
		h.raw(`</p><h1>`)
		h.text(p.FullName())
		h.raw(`</h1>`)
		statusBadge(h, view.Status)

		h.raw(`<nav class="tabs" role="tablist">`)
		for _, name := range []string{TabDetails, TabBadge} {
			h.raw(`<a role="tab"`)
			if view.TabURL != nil {
				h.attr("href", view.TabURL(name))
			}
			h.attr("aria-selected", boolString(name == tab))
			h.attr("class", classes("tab", activeClass(name == tab)))
			h.raw(`>`)
			h.text(T(loc, "participant.tab."+name))
			h.raw(`</a>`)
		}
		h.raw(`</nav><div class="detail-grid">`)

		if tab == TabBadge {
			h.raw(`<article id="participant-badge" class="badge"><h2>`)
			h.text(p.FullName())
			h.raw(`</h2><p class="organization">`)
			h.text(p.Organization)
			h.raw(`</p><p class="type">`)
			h.text(T(loc, "registration.type."+string(p.Type)))
			h.raw(`</p><p class="badge-id">`)
			h.text(p.ID)
			h.raw(`</p></article>`)
		} else {
			h.raw(`<article id="participant-details"><h2>`)
			h.text(T(loc, "participant.details.section"))
			h.raw(`</h2><dl>`)
			detailRow(h, T(loc, "participant.field.name"), p.FullName())
			detailRow(h, T(loc, "participant.field.email"), p.Email)
			detailRow(h, T(loc, "participant.field.phone"), p.Phone)
			detailRow(h, T(loc, "participant.field.organization"), p.Organization)
			detailRow(h, T(loc, "participant.field.country"), p.Country)
			detailRow(h, T(loc, "participant.field.registration_date"), view.RegistrationDate)
			detailRow(h, T(loc, "participant.field.type"), T(loc, "registration.type."+string(p.Type)))
			detailRow(h, T(loc, "participant.field.id"), p.ID)
			h.raw(`</dl></article>`)
		}

		h.raw(`<aside><div id="quick-actions" class="card"><h2>`)
		h.text(T(loc, "participant.actions.title"))
		h.raw(`</h2>`)
		postButton(h, view.EmailURL, view.CSRFField, view.EmailToken, "send-email", T(loc, "participant.actions.send_email"))
		h.raw(`<a id="edit-participant" class="button"`)
		h.attr("href", view.EditURL)
		h.raw(`>`)
		h.text(T(loc, "participant.actions.edit"))
		h.raw(`</a>`)
		removalLabel := T(loc, "participant.actions.delete")
		if view.Removal == participant.RemovalRevoke {
			removalLabel = T(loc, "participant.actions.revoke")
		}
		postButton(h, view.RemovalURL, view.CSRFField, view.RemovalToken, "remove-participant", removalLabel)
		h.raw(`</div>`)

		attendance(h, loc, view.Status)
		h.raw(`</aside></div></section>`)
		return h.err
	})
}

// ParticipantNotFound renders the empty state for an unknown participant.
func ParticipantNotFound(backURL string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section id="participant-not-found" class="empty-state"><h1>`)
		h.text(T(loc, "participant.not_found.title"))
		h.raw(`</h1><p>`)
		h.text(T(loc, "participant.not_found.message"))
		h.raw(`</p><a id="back-link"`)
		h.attr("href", backURL)
		h.raw(`>`)
		h.text(T(loc, "participant.details.back"))
		h.raw(`</a></section>`)
		return h.err
	})
}

// ParticipantEditView is the edit form state.
type ParticipantEditView struct {
	Action      string
	BackURL     string
	CSRFField   string
	CSRFToken   string
	Participant participant.Participant
	Error       string
}

// ParticipantEditPage renders the participant edit form.
func ParticipantEditPage(view ParticipantEditView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		p := view.Participant
		h.raw(`<section id="participant-edit"><a class="back-link"`)
		h.attr("href", view.BackURL)
		h.raw(`>`)
		h.text(T(loc, "participant.details.back"))
		h.raw(`</a><h1>`)
		h.text(T(loc, "participant.edit.title"))
		h.raw(`</h1>`)
		if view.Error != "" {
			h.raw(`<div id="edit-error" class="form-error" role="alert">`)
			h.text(view.Error)
			h.raw(`</div>`)
		}
		h.raw(`<form method="post"`)
		h.attr("action", view.Action)
		h.raw(`>`)
		if view.CSRFToken != "" {
			hidden(h, view.CSRFField, view.CSRFToken)
		}
		form := RegistrationView{}
		textInput(h, loc, form, FieldFirstName, "text", p.FirstName, true)
		textInput(h, loc, form, FieldLastName, "text", p.LastName, true)
		textInput(h, loc, form, FieldEmail, "email", p.Email, true)
		textInput(h, loc, form, FieldPhone, "tel", p.Phone, false)
		textInput(h, loc, form, FieldOrg, "text", p.Organization, false)
		textInput(h, loc, form, FieldCountry, "text", p.Country, true)
		typeSelect(h, loc, form, p.Type)
		h.raw(`<button type="submit" class="button primary">`)
		h.text(T(loc, "participant.actions.save"))
		h.raw(`</button></form></section>`)
		return h.err
	})
}

func statusBadge(h *htmlWriter, status participant.StatusClass) {
	h.raw(`<span`)
	h.attr("class", "status-badge status-"+string(status.Category))
	h.attr("data-category", string(status.Category))
	h.raw(`>`)
	h.text(status.Label)
	h.raw(`</span>`)
}

func detailRow(h *htmlWriter, label string, value string) {
	h.raw(`<dt>`)
	h.text(label)
	h.raw(`</dt><dd>`)
	h.text(value)
	h.raw(`</dd>`)
}

func postButton(h *htmlWriter, action string, field string, token string, id string, label string) {
	h.raw(`<form method="post" class="inline-action"`)
	h.attr("action", action)
	h.raw(`>`)
	if token != "" {
		hidden(h, field, token)
	}
	h.raw(`<button type="submit"`)
	h.attr("id", id)
	h.raw(`>`)
	h.text(label)
	h.raw(`</button></form>`)
}

func attendance(h *htmlWriter, loc Localizer, status participant.StatusClass) {
	key := "participant.attendance.pending"
	switch status.Category {
	case participant.CategoryPositive:
		key = "participant.attendance.confirmed"
	case participant.CategoryNegative:
		key = "participant.attendance.rejected"
	}
	h.raw(`<div id="attendance" class="card"`)
	h.attr("data-category", string(status.Category))
	h.raw(`><h2>`)
	h.text(T(loc, "participant.attendance.title"))
	h.raw(`</h2><p class="attendance-status">`)
	h.text(T(loc, key))
	h.raw(`</p><p>`)
	h.text(T(loc, key+"_detail"))
	h.raw(`</p></div>`)
}

func boolString(value bool) string {
	if value {
		return "true"
	}
	return "false"
}

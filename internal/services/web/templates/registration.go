package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/registration"
	"github.com/louisbranch/galien/internal/services/web/routepath"
)

// Registration form field names.
const (
	FieldIntent      = "intent"
	FieldStep        = "step"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldOrg         = "organization"
	FieldCountry     = "country"
	FieldType        = "type"
	FieldAcceptTerms = "accept_terms"
)

// RegistrationView is the state of the registration form for one render.
type RegistrationView struct {
	Action      string
	CSRFField   string
	CSRFToken   string
	Step        int
	StepCount   int
	Application registration.Application
	CanRetreat  bool
	Primary     registration.PrimaryAction
	// ErrorField names the input the error belongs to, if any.
	ErrorField string
	Error      string
	TermsHTML  string
}

// RegistrationPage renders the multi-step registration form.
func RegistrationPage(view RegistrationView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		action := view.Action
		if action == "" {
			action = routepath.Register
		}
		h.raw(`<section id="registration" class="registration"><h1>`)
		h.text(T(loc, "registration.title"))
		h.raw(`</h1><p id="step-indicator" class="step-indicator">`)
		h.text(T(loc, "registration.step_indicator", view.Step, view.StepCount))
		h.raw(`</p><ol class="steps">`)
		for _, info := range registration.Steps() {
			state := ""
			switch {
			case info.Number == view.Step:
				state = "current"
			case info.Number < view.Step:
				state = "done"
			}
			h.raw(`<li`)
			h.attr("class", classes("step", state))
			h.attr("data-step", info.Key)
			if state == "current" {
				h.attr("aria-current", "step")
			}
			h.raw(`>`)
			h.text(T(loc, info.TitleKey))
			h.raw(`</li>`)
		}
		h.raw(`</ol>`)
		if view.Error != "" {
			h.raw(`<div id="registration-error" class="form-error" role="alert">`)
			h.text(view.Error)
			h.raw(`</div>`)
		}
		h.raw(`<form method="post"`)
		h.attr("action", action)
		h.raw(`>`)
		if view.CSRFToken != "" {
			hidden(h, view.CSRFField, view.CSRFToken)
		}
		hidden(h, FieldStep, strconv.Itoa(view.Step))
		h.raw(`<fieldset>`)
		if info, ok := registration.StepAt(view.Step); ok {
			h.raw(`<legend>`)
			h.text(T(loc, info.TitleKey))
			h.raw(`</legend>`)
		}
		app := view.Application
		switch view.Step {
		case registration.StepIdentity:
			textInput(h, loc, view, FieldFirstName, "text", app.FirstName, true)
			textInput(h, loc, view, FieldLastName, "text", app.LastName, true)
			textInput(h, loc, view, FieldEmail, "email", app.Email, true)
			textInput(h, loc, view, FieldPhone, "tel", app.Phone, false)
		case registration.StepAffiliation:
			textInput(h, loc, view, FieldOrg, "text", app.Organization, false)
			textInput(h, loc, view, FieldCountry, "text", app.Country, true)
			typeSelect(h, loc, view, app.Type)
		case registration.StepTerms:
			h.raw(`<div id="terms" class="terms">`)
			h.component(ctx, templ.Raw(view.TermsHTML))
			h.raw(`</div><label class="checkbox"><input type="checkbox" value="on"`)
			h.attr("name", FieldAcceptTerms)
			h.attr("id", FieldAcceptTerms)
			h.boolAttr("checked", app.AcceptedTerms)
			h.boolAttr("required", true)
			if view.ErrorField == FieldAcceptTerms {
				h.attr("aria-invalid", "true")
			}
			h.raw(`> `)
			h.text(T(loc, "registration.field.accept_terms"))
			h.raw(`</label>`)
		}
		h.raw(`</fieldset><div class="form-actions">`)
		if view.CanRetreat {
			h.raw(`<button type="submit" class="button secondary" formnovalidate`)
			h.attr("name", FieldIntent)
			h.attr("value", "previous")
			h.boolAttr("disabled", view.Primary.Disabled)
			h.raw(`>`)
			h.text(T(loc, "registration.action.previous"))
			h.raw(`</button>`)
		}
		h.raw(`<button type="submit" id="primary-action" class="button primary"`)
		h.attr("name", FieldIntent)
		h.attr("value", view.Primary.Name)
		h.boolAttr("disabled", view.Primary.Disabled)
		if view.Primary.Disabled {
			h.attr("aria-busy", "true")
		} else if view.Primary.Name == "submit" {
			h.attr("data-processing-label", T(loc, "registration.action.processing"))
		}
		h.raw(`>`)
		h.text(T(loc, view.Primary.LabelKey))
		h.raw(`</button></div></form></section>`)
		return h.err
	})
}

// RegistrationCompletePage confirms a submitted application.
func RegistrationCompletePage(reference string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := newHTMLWriter(w)
		h.raw(`<section id="registration-complete" class="registration-complete"><h1>`)
		h.text(T(loc, "registration.complete.title"))
		h.raw(`</h1><p>`)
		h.text(T(loc, "registration.complete.message"))
		h.raw(`</p>`)
		if reference != "" {
			h.raw(`<p class="reference">`)
			h.text(T(loc, "registration.complete.reference", reference))
			h.raw(`</p>`)
		}
		h.raw(`<a`)
		h.attr("href", routepath.Root)
		h.raw(`>`)
		h.text(T(loc, "nav.home"))
		h.raw(`</a></section>`)
		return h.err
	})
}

func hidden(h *htmlWriter, name string, value string) {
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(`>`)
}

func textInput(h *htmlWriter, loc Localizer, view RegistrationView, name string, kind string, value string, required bool) {
	h.raw(`<label`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(T(loc, "registration.field."+name))
	h.raw(`</label><input`)
	h.attr("type", kind)
	h.attr("id", name)
	h.attr("name", name)
	h.attr("value", value)
	h.boolAttr("required", required)
	if view.ErrorField == name {
		h.attr("aria-invalid", "true")
		h.attr("aria-describedby", "registration-error")
	}
	h.raw(`>`)
}

func typeSelect(h *htmlWriter, loc Localizer, view RegistrationView, selected participant.Type) {
	if selected == "" {
		selected = participant.TypeParticipant
	}
	h.raw(`<label`)
	h.attr("for", FieldType)
	h.raw(`>`)
	h.text(T(loc, "registration.field.type"))
	h.raw(`</label><select`)
	h.attr("id", FieldType)
	h.attr("name", FieldType)
	if view.ErrorField == FieldType {
		h.attr("aria-invalid", "true")
	}
	h.raw(`>`)
	for _, kind := range participant.Types() {
		h.raw(`<option`)
		h.attr("value", string(kind))
		h.boolAttr("selected", kind == selected)
		h.raw(`>`)
		h.text(T(loc, "registration.type."+string(kind)))
		h.raw(`</option>`)
	}
	h.raw(`</select>`)
}

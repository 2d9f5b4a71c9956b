package dashboard

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/platform/i18n"
	"github.com/louisbranch/galien/internal/registration"
	"github.com/louisbranch/galien/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/galien/internal/services/web/templates"
)

type service struct {
	gateway Gateway
}

func newService(gateway Gateway) service {
	return service{gateway: gateway}
}

// listRequest is the parsed participant list query.
type listRequest struct {
	Slug     string
	Filter   string
	PageSize int
}

func parseListRequest(query url.Values) listRequest {
	slug := strings.TrimSpace(query.Get(routepath.SlugParam))
	if slug == "" {
		slug = routepath.DefaultSlug
	}
	size, _ := strconv.Atoi(strings.TrimSpace(query.Get("page_size")))
	return listRequest{
		Slug:     slug,
		Filter:   strings.TrimSpace(query.Get(routepath.FilterParam)),
		PageSize: participant.ClampPageSize(size),
	}
}

func (s service) list(ctx context.Context, req listRequest) (webtemplates.ParticipantListView, error) {
	view := webtemplates.ParticipantListView{
		Action: routepath.Dashboard,
		Slug:   req.Slug,
		Filter: req.Filter,
	}
	participants, err := s.gateway.ListParticipants(ctx, participant.Query{Filter: req.Filter, PageSize: req.PageSize})
	if err != nil {
		return view, err
	}
	nav := RouteNavigator{Slug: req.Slug}
	view.Rows = make([]webtemplates.ParticipantRow, 0, len(participants))
	for _, p := range participants {
		view.Rows = append(view.Rows, webtemplates.ParticipantRow{
			Name:         p.FullName(),
			Email:        p.Email,
			Organization: p.Organization,
			Status:       participant.ClassifyStatus(p.Status),
			URL:          nav.detail(p.ID),
		})
	}
	return view, nil
}

// detailView maps a participant onto the detail page through nav.
func detailView(p participant.Participant, nav participant.Navigator, tab string, locale i18n.Locale) webtemplates.ParticipantDetailView {
	if tab != webtemplates.TabBadge {
		tab = webtemplates.TabDetails
	}
	return webtemplates.ParticipantDetailView{
		Participant:      p,
		Status:           participant.ClassifyStatus(p.Status),
		RegistrationDate: participant.FormatTimestamp(p.RegistrationDate, locale),
		Tab:              tab,
		BackURL:          nav.Back(),
		EditURL:          nav.Edit(p.ID),
		EmailURL:         nav.SendEmail(p.ID),
		RemovalURL:       nav.RevokeOrDelete(p),
		Removal:          participant.RemovalAction(p.Status),
	}
}

// parseUpdate reads the edit form and validates it with the registration
// rules for the same fields.
func parseUpdate(form url.Values) (participant.Update, error) {
	kind, ok := participant.ParseType(form.Get(webtemplates.FieldType))
	if !ok {
		kind = participant.Type(strings.TrimSpace(form.Get(webtemplates.FieldType)))
	}
	var application registration.Application
	application = application.Merge(registration.StepIdentity, registration.Application{
		FirstName: form.Get(webtemplates.FieldFirstName),
		LastName:  form.Get(webtemplates.FieldLastName),
		Email:     form.Get(webtemplates.FieldEmail),
		Phone:     form.Get(webtemplates.FieldPhone),
	})
	application = application.Merge(registration.StepAffiliation, registration.Application{
		Organization: form.Get(webtemplates.FieldOrg),
		Country:      form.Get(webtemplates.FieldCountry),
		Type:         kind,
	})
	update := participant.Update{
		FirstName:    application.FirstName,
		LastName:     application.LastName,
		Email:        application.Email,
		Phone:        application.Phone,
		Organization: application.Organization,
		Country:      application.Country,
		Type:         application.Type,
	}
	for _, step := range []int{registration.StepIdentity, registration.StepAffiliation} {
		if err := application.ValidateStep(step); err != nil {
			return update, err
		}
	}
	return update, nil
}

// applyUpdate copies update onto p for re-rendering a rejected form.
func applyUpdate(p participant.Participant, update participant.Update) participant.Participant {
	p.FirstName = update.FirstName
	p.LastName = update.LastName
	p.Email = update.Email
	p.Phone = update.Phone
	p.Organization = update.Organization
	p.Country = update.Country
	p.Type = update.Type
	return p
}

package dashboard

import (
	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/services/web/routepath"
)

// RouteNavigator resolves detail page intents to dashboard routes of one
// event.
type RouteNavigator struct {
	Slug string
}

func (n RouteNavigator) Back() string {
	return routepath.DashboardList(n.Slug)
}

func (n RouteNavigator) Edit(id string) string {
	return routepath.ParticipantEdit(n.Slug, id)
}

func (n RouteNavigator) RevokeOrDelete(p participant.Participant) string {
	if participant.RemovalAction(p.Status) == participant.RemovalRevoke {
		return routepath.ParticipantRevoke(n.Slug, p.ID)
	}
	return routepath.ParticipantDelete(n.Slug, p.ID)
}

func (n RouteNavigator) SendEmail(id string) string {
	return routepath.ParticipantEmail(n.Slug, id)
}

// detail returns the participant page this navigator's actions return to.
func (n RouteNavigator) detail(id string) string {
	return routepath.Participant(n.Slug, id)
}

var _ participant.Navigator = RouteNavigator{}

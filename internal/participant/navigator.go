package participant

// Navigator produces the navigation targets behind the detail page actions.
// Implementations decide where each intent leads; the detail view only asks.
type Navigator interface {
	// Back returns the list the detail page was opened from.
	Back() string
	Edit(id string) string
	// RevokeOrDelete returns the endpoint for RemovalAction(p.Status).
	RevokeOrDelete(p Participant) string
	SendEmail(id string) string
}

// Package participant models the registered attendees shown on the organizer
// dashboard and the display rules applied to them.
package participant

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound reports that no participant exists for the requested id.
var ErrNotFound = errors.New("participant not found")

// ErrNotApproved reports that an approval-only action targeted a participant
// in another status.
var ErrNotApproved = errors.New("participant is not approved")

// Status is the review state of a participant's registration.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Type is the registration category chosen by the applicant.
type Type string

const (
	TypeParticipant Type = "participant"
	TypeSpeaker     Type = "speaker"
	TypePress       Type = "press"
	TypeOrganizer   Type = "organizer"
)

// Types returns the selectable registration types in display order.
func Types() []Type {
	return []Type{TypeParticipant, TypeSpeaker, TypePress, TypeOrganizer}
}

// ParseType normalizes a raw type value; blank input selects TypeParticipant.
func ParseType(raw string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TypeParticipant:
		return TypeParticipant, true
	case TypeSpeaker:
		return TypeSpeaker, true
	case TypePress:
		return TypePress, true
	case TypeOrganizer:
		return TypeOrganizer, true
	default:
		return "", false
	}
}

// Participant is a display-only participant record.
type Participant struct {
	ID               string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Organization     string
	Country          string
	Status           Status
	Type             Type
	RegistrationDate string
}

// FullName joins first and last name.
func (p Participant) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// Query selects a page of participants.
type Query struct {
	// Filter is an AIP-160 expression, for example `status = "approved"`.
	Filter   string
	PageSize int
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// ClampPageSize bounds a requested page size into [1, MaxPageSize].
func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Reader loads participants for display.
type Reader interface {
	GetParticipant(ctx context.Context, id string) (Participant, error)
	ListParticipants(ctx context.Context, query Query) ([]Participant, error)
}

// Update holds the editable participant fields.
type Update struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Organization string
	Country      string
	Type         Type
}

// Actions applies organizer actions to participants.
type Actions interface {
	RevokeApproval(ctx context.Context, id string) error
	DeleteParticipant(ctx context.Context, id string) error
	QueueEmail(ctx context.Context, id string) error
	UpdateParticipant(ctx context.Context, id string, update Update) error
}

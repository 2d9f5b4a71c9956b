package storage

import (
	"context"

	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/registration"
)

// Store is the full contract of the web service persistence adapter.
type Store interface {
	registration.DraftStore
	registration.Submitter
	participant.Reader
	participant.Actions
	// PutParticipant inserts or replaces a participant record as given.
	PutParticipant(ctx context.Context, p participant.Participant) error
	Close() error
}

package registration

import (
	"context"
	"errors"
	"time"
)

// ErrDraftNotFound reports an unknown or expired draft id.
var ErrDraftNotFound = errors.New("registration draft not found")

// Draft is an in-progress application and the step the applicant reached.
type Draft struct {
	ID          string
	Step        int
	Application Application
	UpdatedAt   time.Time
}

// DraftStore persists drafts between requests.
type DraftStore interface {
	GetDraft(ctx context.Context, id string) (Draft, error)
	PutDraft(ctx context.Context, draft Draft) error
	DeleteDraft(ctx context.Context, id string) error
}

// Submitter sends a completed application and returns the participant id.
type Submitter interface {
	SubmitRegistration(ctx context.Context, application Application) (string, error)
}

package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Outcome labels a finished submission attempt.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeInFlight  Outcome = "in_flight"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeDuplicate Outcome = "duplicate"
)

// Observer receives registration events, typically for metrics.
type Observer interface {
	StepChanged(from int, to int)
	// SubmissionStarted and SubmissionStopped bracket the submit effect.
	SubmissionStarted()
	SubmissionStopped()
	SubmissionFinished(outcome Outcome, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) StepChanged(int, int) {}

func (noopObserver) SubmissionStarted() {}

func (noopObserver) SubmissionStopped() {}

func (noopObserver) SubmissionFinished(Outcome, time.Duration) {}

// Config wires a Service.
type Config struct {
	Drafts    DraftStore
	Submitter Submitter
	Guards    *Guards
	Observer  Observer
	NewID     func() (string, error)
	Now       func() time.Time
	// SubmitTimeout bounds the submit effect; zero means no extra bound.
	SubmitTimeout time.Duration
}

// Service drives drafts through the step flow and the final submission.
type Service struct {
	drafts        DraftStore
	submitter     Submitter
	guards        *Guards
	observer      Observer
	newID         func() (string, error)
	now           func() time.Time
	submitTimeout time.Duration
	tracer        trace.Tracer
}

// NewService builds a Service. Drafts, Submitter and NewID are required.
func NewService(cfg Config) (*Service, error) {
	if cfg.Drafts == nil {
		return nil, errors.New("registration: draft store is required")
	}
	if cfg.Submitter == nil {
		return nil, errors.New("registration: submitter is required")
	}
	if cfg.NewID == nil {
		return nil, errors.New("registration: id generator is required")
	}
	if cfg.Guards == nil {
		cfg.Guards = NewGuards()
	}
	if cfg.Observer == nil {
		cfg.Observer = noopObserver{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		drafts:        cfg.Drafts,
		submitter:     cfg.Submitter,
		guards:        cfg.Guards,
		observer:      cfg.Observer,
		newID:         cfg.NewID,
		now:           cfg.Now,
		submitTimeout: cfg.SubmitTimeout,
		tracer:        otel.Tracer("galien/registration"),
	}, nil
}

// Flow returns the step flow positioned at the draft's step.
func (s *Service) Flow(draft Draft) *Flow {
	return RestoreFlow(FixedSteps(StepCount), draft.Step)
}

// IsSubmitting reports whether the draft has a submission running.
func (s *Service) IsSubmitting(draftID string) bool {
	return s.guards.IsSubmitting(draftID)
}

// Start creates and stores an empty draft at step 1.
func (s *Service) Start(ctx context.Context) (Draft, error) {
	id, err := s.newID()
	if err != nil {
		return Draft{}, fmt.Errorf("new draft id: %w", err)
	}
	draft := Draft{ID: id, Step: 1, UpdatedAt: s.now().UTC()}
	if err := s.drafts.PutDraft(ctx, draft); err != nil {
		return Draft{}, fmt.Errorf("put draft: %w", err)
	}
	return draft, nil
}

// Load returns a stored draft with its step clamped into range.
func (s *Service) Load(ctx context.Context, id string) (Draft, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Draft{}, ErrDraftNotFound
	}
	draft, err := s.drafts.GetDraft(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	draft.Step = s.Flow(draft).Step()
	return draft, nil
}

// LoadOrStart loads id, starting a fresh draft when it is unknown.
func (s *Service) LoadOrStart(ctx context.Context, id string) (Draft, error) {
	draft, err := s.Load(ctx, id)
	if err == nil {
		return draft, nil
	}
	if !errors.Is(err, ErrDraftNotFound) {
		return Draft{}, err
	}
	return s.Start(ctx)
}

// Next merges the current step input, validates it and advances. On a
// validation error the merged input is still saved and the step is kept.
func (s *Service) Next(ctx context.Context, draft Draft, input Application) (Draft, error) {
	flow := s.Flow(draft)
	step := flow.Step()
	draft.Application = draft.Application.Merge(step, input)

	if err := draft.Application.ValidateStep(step); err != nil {
		if saveErr := s.save(ctx, &draft); saveErr != nil {
			return draft, saveErr
		}
		return draft, err
	}
	if flow.Advance() {
		s.observer.StepChanged(step, flow.Step())
	}
	draft.Step = flow.Step()
	if err := s.save(ctx, &draft); err != nil {
		return draft, err
	}
	return draft, nil
}

// Previous merges the current step input without validating it and
// retreats one step.
func (s *Service) Previous(ctx context.Context, draft Draft, input Application) (Draft, error) {
	flow := s.Flow(draft)
	step := flow.Step()
	draft.Application = draft.Application.Merge(step, input)
	if flow.Retreat() {
		s.observer.StepChanged(step, flow.Step())
	}
	draft.Step = flow.Step()
	if err := s.save(ctx, &draft); err != nil {
		return draft, err
	}
	return draft, nil
}

// Submit validates the whole application and sends it through the draft's
// submission guard. The draft is re-read and deleted while the guard is held,
// so a request holding a stale copy gets ErrAlreadySubmitted instead of
// creating a second participant. The draft is kept on failure.
func (s *Service) Submit(ctx context.Context, draft Draft, input Application) (string, Draft, error) {
	flow := s.Flow(draft)
	if !flow.CanSubmit() {
		return "", draft, invalid(flow.Step(), "", "error.web.message.registration_step_not_available", "submit is only available on the final step")
	}
	draft.Application = draft.Application.Merge(flow.Step(), input)
	if err := draft.Application.Validate(); err != nil {
		s.observer.SubmissionFinished(OutcomeInvalid, 0)
		var validation *ValidationError
		if errors.As(err, &validation) && validation.Step != flow.Step() {
			draft.Step = validation.Step
		}
		if saveErr := s.save(ctx, &draft); saveErr != nil {
			return "", draft, saveErr
		}
		return "", draft, err
	}

	ctx, span := s.tracer.Start(ctx, "registration.submit", trace.WithAttributes(
		attribute.String("registration.draft_id", draft.ID),
		attribute.String("registration.type", string(draft.Application.Type)),
	))
	defer span.End()

	var (
		participantID string
		deleteErr     error
	)
	started := s.now()
	err := s.guards.Run(ctx, draft.ID, func(ctx context.Context) error {
		if _, err := s.drafts.GetDraft(ctx, draft.ID); err != nil {
			if errors.Is(err, ErrDraftNotFound) {
				return ErrAlreadySubmitted
			}
			return fmt.Errorf("reload draft: %w", err)
		}

		s.observer.SubmissionStarted()
		defer s.observer.SubmissionStopped()
		submitCtx := ctx
		if s.submitTimeout > 0 {
			var cancel context.CancelFunc
			submitCtx, cancel = context.WithTimeout(ctx, s.submitTimeout)
			defer cancel()
		}
		id, err := s.submitter.SubmitRegistration(submitCtx, draft.Application)
		if err != nil {
			return err
		}
		participantID = id
		if err := s.drafts.DeleteDraft(context.WithoutCancel(ctx), draft.ID); err != nil && !errors.Is(err, ErrDraftNotFound) {
			deleteErr = fmt.Errorf("delete draft: %w", err)
		}
		return nil
	})
	elapsed := s.now().Sub(started)

	switch {
	case errors.Is(err, ErrSubmissionInFlight):
		s.observer.SubmissionFinished(OutcomeInFlight, elapsed)
		span.SetStatus(codes.Error, err.Error())
		return "", draft, err
	case errors.Is(err, ErrAlreadySubmitted):
		s.observer.SubmissionFinished(OutcomeDuplicate, elapsed)
		span.SetStatus(codes.Error, ErrAlreadySubmitted.Error())
		return "", draft, ErrAlreadySubmitted
	case err != nil:
		s.observer.SubmissionFinished(OutcomeFailed, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, strings.TrimSpace(err.Error()))
		// The next request must see the entered data.
		if saveErr := s.save(context.WithoutCancel(ctx), &draft); saveErr != nil {
			return "", draft, errors.Join(err, saveErr)
		}
		return "", draft, err
	}

	s.observer.SubmissionFinished(OutcomeSucceeded, elapsed)
	span.SetAttributes(attribute.String("registration.participant_id", participantID))
	if deleteErr != nil {
		return participantID, draft, deleteErr
	}
	return participantID, draft, nil
}

func (s *Service) save(ctx context.Context, draft *Draft) error {
	draft.UpdatedAt = s.now().UTC()
	if err := s.drafts.PutDraft(ctx, *draft); err != nil {
		return fmt.Errorf("put draft: %w", err)
	}
	return nil
}

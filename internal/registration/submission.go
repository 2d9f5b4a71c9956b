package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrSubmissionInFlight reports a submit attempt while one is running.
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrSubmissionFailed wraps the error returned by the submit effect.
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrAlreadySubmitted reports a submit for a draft another request has
	// already turned into a participant.
	ErrAlreadySubmitted = errors.New("registration already submitted")
)

// State is the lifecycle state of a Submission.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Submission guards one final submission at a time. The zero value is idle
// and ready to use.
type Submission struct {
	mu    sync.Mutex
	state State
}

// Begin moves Idle to Submitting. It returns false and changes nothing when a
// submission is already running.
func (s *Submission) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting {
		return false
	}
	s.state = StateSubmitting
	return true
}

// End returns the submission to Idle.
func (s *Submission) End() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

func (s *Submission) IsSubmitting() bool {
	return s.State() == StateSubmitting
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Run executes effect between Begin and End. End runs on every exit path,
// including panics inside effect.
func (s *Submission) Run(ctx context.Context, effect func(context.Context) error) error {
	if !s.Begin() {
		return ErrSubmissionInFlight
	}
	return s.runBegun(ctx, effect)
}

func (s *Submission) runBegun(ctx context.Context, effect func(context.Context) error) error {
	defer s.End()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	if err := effect(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}
	return nil
}

// Guards keeps one Submission per draft id, and only while that submission
// is running.
type Guards struct {
	mu      sync.Mutex
	entries map[string]*Submission
}

func NewGuards() *Guards {
	return &Guards{entries: map[string]*Submission{}}
}

// Run executes effect under the guard for key, returning
// ErrSubmissionInFlight when a submission for key is already running. The
// entry is dropped once effect returns.
func (g *Guards) Run(ctx context.Context, key string, effect func(context.Context) error) error {
	g.mu.Lock()
	if g.entries == nil {
		g.entries = map[string]*Submission{}
	}
	sub, ok := g.entries[key]
	if !ok {
		sub = &Submission{}
		g.entries[key] = sub
	}
	if !sub.Begin() {
		g.mu.Unlock()
		return ErrSubmissionInFlight
	}
	g.mu.Unlock()

	defer g.release(key, sub)
	return sub.runBegun(ctx, effect)
}

func (g *Guards) release(key string, sub *Submission) {
	g.mu.Lock()
	defer g.mu.Unlock()
	// Another request may have begun on the same entry after End.
	if g.entries[key] == sub && !sub.IsSubmitting() {
		delete(g.entries, key)
	}
}

// IsSubmitting reports whether a submission for key is running. It never
// creates an entry.
func (g *Guards) IsSubmitting(key string) bool {
	g.mu.Lock()
	sub, ok := g.entries[key]
	g.mu.Unlock()
	return ok && sub.IsSubmitting()
}

// InFlight counts the guards currently submitting.
func (g *Guards) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, sub := range g.entries {
		if sub.IsSubmitting() {
			n++
		}
	}
	return n
}

func (g *Guards) size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

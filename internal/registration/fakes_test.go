package registration

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type fakeDraftStore struct {
	mu      sync.Mutex
	drafts  map[string]Draft
	putErr  error
	deleted []string
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: map[string]Draft{}}
}

func (f *fakeDraftStore) GetDraft(_ context.Context, id string) (Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	draft, ok := f.drafts[id]
	if !ok {
		return Draft{}, ErrDraftNotFound
	}
	return draft, nil
}

func (f *fakeDraftStore) PutDraft(_ context.Context, draft Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.drafts[draft.ID] = draft
	return nil
}

func (f *fakeDraftStore) DeleteDraft(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []Application
	id    string
	err   error
	// block, when set, is waited on before returning.
	block chan struct{}
	// entered is closed once the first call starts.
	entered chan struct{}
}

func (f *fakeSubmitter) SubmitRegistration(ctx context.Context, application Application) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, application)
	entered := f.entered
	f.entered = nil
	f.mu.Unlock()
	if entered != nil {
		close(entered)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingObserver struct {
	mu       sync.Mutex
	steps    [][2]int
	started  int
	stopped  int
	outcomes []Outcome
}

func (r *recordingObserver) StepChanged(from int, to int) {
	r.mu.Lock()
	r.steps = append(r.steps, [2]int{from, to})
	r.mu.Unlock()
}

func (r *recordingObserver) SubmissionStarted() {
	r.mu.Lock()
	r.started++
	r.mu.Unlock()
}

func (r *recordingObserver) SubmissionStopped() {
	r.mu.Lock()
	r.stopped++
	r.mu.Unlock()
}

func (r *recordingObserver) SubmissionFinished(outcome Outcome, _ time.Duration) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, outcome)
	r.mu.Unlock()
}

func sequentialIDs(prefix string) func() (string, error) {
	var mu sync.Mutex
	n := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}

package registration

import (
	"context"
	"strconv"
	"sync"

	"github.com/louisbranch/galien/internal/registration"
)

// memoryDrafts implements registration.DraftStore in memory.
type memoryDrafts struct {
	mu     sync.Mutex
	drafts map[string]registration.Draft
	err    error
	// afterGet runs after each successful read, outside the lock.
	afterGet func(id string)
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: map[string]registration.Draft{}}
}

func (m *memoryDrafts) GetDraft(_ context.Context, id string) (registration.Draft, error) {
	m.mu.Lock()
	if m.err != nil {
		m.mu.Unlock()
		return registration.Draft{}, m.err
	}
	draft, ok := m.drafts[id]
	hook := m.afterGet
	m.mu.Unlock()
	if !ok {
		return registration.Draft{}, registration.ErrDraftNotFound
	}
	if hook != nil {
		hook(id)
	}
	return draft, nil
}

func (m *memoryDrafts) PutDraft(_ context.Context, draft registration.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.drafts[draft.ID] = draft
	return nil
}

func (m *memoryDrafts) DeleteDraft(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, id)
	return nil
}

func (m *memoryDrafts) setAfterGet(hook func(id string)) {
	m.mu.Lock()
	m.afterGet = hook
	m.mu.Unlock()
}

func (m *memoryDrafts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drafts)
}

// stubSubmitter returns err until it is cleared.
type stubSubmitter struct {
	mu    sync.Mutex
	err   error
	calls int
	last  registration.Application
}

func (s *stubSubmitter) SubmitRegistration(_ context.Context, application registration.Application) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = application
	if s.err != nil {
		return "", s.err
	}
	return "participant-" + strconv.Itoa(s.calls), nil
}

func (s *stubSubmitter) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func sequentialIDs() func() (string, error) {
	var mu sync.Mutex
	next := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		next++
		return "draft-" + strconv.Itoa(next), nil
	}
}

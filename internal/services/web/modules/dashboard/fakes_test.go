package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/louisbranch/galien/internal/participant"
	"github.com/louisbranch/galien/internal/participant/filter"
)

// fakeGateway implements Gateway for tests with configurable return values
// and call tracking.
type fakeGateway struct {
	mu           sync.Mutex
	participants map[string]participant.Participant
	listErr      error
	actionErr    error
	lastQuery    participant.Query
	calls        []string
	lastUpdate   participant.Update
	// unbounded counts actions called with a context that has no deadline.
	unbounded    int
}

func newFakeGateway(participants ...participant.Participant) *fakeGateway {
	g := &fakeGateway{participants: map[string]participant.Participant{}}
	for _, p := range participants {
		g.participants[p.ID] = p
	}
	return g
}

func (g *fakeGateway) GetParticipant(_ context.Context, id string) (participant.Participant, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.participants[id]
	if !ok {
		return participant.Participant{}, participant.ErrNotFound
	}
	return p, nil
}

func (g *fakeGateway) ListParticipants(_ context.Context, query participant.Query) ([]participant.Participant, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastQuery = query
	if g.listErr != nil {
		return nil, g.listErr
	}
	if query.Filter != "" {
		if _, err := filter.Parse(query.Filter); err != nil {
			return nil, err
		}
	}
	out := make([]participant.Participant, 0, len(g.participants))
	for _, p := range g.participants {
		out = append(out, p)
	}
	return out, nil
}

func (g *fakeGateway) act(ctx context.Context, name string, id string) error {
	g.calls = append(g.calls, name+":"+id)
	if _, ok := ctx.Deadline(); !ok {
		g.unbounded++
	}
	if g.actionErr != nil {
		return g.actionErr
	}
	if _, ok := g.participants[id]; !ok {
		return participant.ErrNotFound
	}
	return nil
}

func (g *fakeGateway) RevokeApproval(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.act(ctx, "revoke", id); err != nil {
		return err
	}
	p := g.participants[id]
	if p.Status != participant.StatusApproved {
		return participant.ErrNotApproved
	}
	p.Status = participant.StatusPending
	g.participants[id] = p
	return nil
}

func (g *fakeGateway) DeleteParticipant(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.act(ctx, "delete", id); err != nil {
		return err
	}
	delete(g.participants, id)
	return nil
}

func (g *fakeGateway) QueueEmail(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.act(ctx, "email", id)
}

func (g *fakeGateway) UpdateParticipant(ctx context.Context, id string, update participant.Update) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.act(ctx, "update", id); err != nil {
		return err
	}
	g.lastUpdate = update
	return nil
}

var errStoreDown = errors.New("store down")

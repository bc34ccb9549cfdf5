package board

import (
	"context"
	"sort"
	"sync"

	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/models"
)

var testStages = []models.Stage{
	{Value: "opportunity", Label: "Opportunity"},
	{Value: "won", Label: "Won"},
	{Value: "lost", Label: "Lost"},
}

// seed builds n dense deals in stage with ids starting at firstID
func seed(stage string, firstID, n int) []*models.Deal {
	out := make([]*models.Deal, n)
	for i := range out {
		out[i] = &models.Deal{ID: firstID + i, Name: stage, Stage: stage, Index: i}
	}
	return out
}

func ids(column []*models.Deal) []int {
	out := make([]int, len(column))
	for i, d := range column {
		out[i] = d.ID
	}
	return out
}

// memStore is a concurrency-safe in-memory deal store
type memStore struct {
	mu      sync.Mutex
	deals   map[int]*models.Deal
	lists   int
	updates int
	listErr error
}

func newMemStore(deals ...*models.Deal) *memStore {
	s := &memStore{deals: map[int]*models.Deal{}}
	for _, d := range deals {
		s.deals[d.ID] = d.Clone()
	}
	return s
}

func (s *memStore) List(_ context.Context, params models.ListParams) ([]*models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}

	var out []*models.Deal
	for _, d := range s.deals {
		if params.Filter.Stage == "" || d.Stage == params.Filter.Stage {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memStore) Update(_ context.Context, params models.UpdateParams) (*models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	d, ok := s.deals[params.ID]
	if !ok {
		return nil, models.ErrDealNotFound
	}
	if params.Data.Index != nil {
		d.Index = *params.Data.Index
	}
	if params.Data.Stage != nil {
		d.Stage = *params.Data.Stage
	}
	return d.Clone(), nil
}

// all is a RefetchFunc over the store
func (s *memStore) all(ctx context.Context) ([]*models.Deal, error) {
	return s.List(ctx, models.ListParams{})
}

func (s *memStore) counts() (lists, updates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists, s.updates
}

// recordingPublisher captures sent events
type recordingPublisher struct {
	mu   sync.Mutex
	sent []events.Event
}

func (p *recordingPublisher) Connect(context.Context) error { return nil }

func (p *recordingPublisher) SendEvent(e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, e)
	return nil
}

func (p *recordingPublisher) Listen(context.Context) (<-chan events.Event, error) { return nil, nil }
func (p *recordingPublisher) Close() error                                        { return nil }

func (p *recordingPublisher) events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.sent...)
}

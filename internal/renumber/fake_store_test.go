package renumber

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/thenoetrevino/dealflow/internal/models"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore is an in-memory Store that records every call
type fakeStore struct {
	mu    sync.Mutex
	deals map[int]*models.Deal

	listCalls   []models.ListParams
	updateCalls []models.UpdateParams

	failList   map[string]error
	failUpdate map[int]error

	// inFlight counts List calls currently blocked on listGate
	listGate chan struct{}
	inFlight int
	maxList  int
}

func newFakeStore(deals ...*models.Deal) *fakeStore {
	s := &fakeStore{
		deals:      make(map[int]*models.Deal, len(deals)),
		failList:   map[string]error{},
		failUpdate: map[int]error{},
	}
	for _, d := range deals {
		s.deals[d.ID] = d.Clone()
	}
	return s
}

// column seeds n deals into stage with ids starting at firstID
func column(stage string, firstID, n int) []*models.Deal {
	out := make([]*models.Deal, n)
	for i := range out {
		out[i] = &models.Deal{ID: firstID + i, Name: stage, Stage: stage, Index: i}
	}
	return out
}

func (s *fakeStore) List(ctx context.Context, params models.ListParams) ([]*models.Deal, error) {
	s.mu.Lock()
	s.listCalls = append(s.listCalls, params)
	s.inFlight++
	s.maxList = max(s.maxList, s.inFlight)
	gate := s.listGate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--

	if err := s.failList[params.Filter.Stage]; err != nil {
		return nil, err
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
	if params.Pagination.PerPage > 0 && len(out) > params.Pagination.PerPage {
		out = out[:params.Pagination.PerPage]
	}
	return out, nil
}

func (s *fakeStore) Update(_ context.Context, params models.UpdateParams) (*models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls = append(s.updateCalls, params)

	if err := s.failUpdate[params.ID]; err != nil {
		return nil, err
	}
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

func (s *fakeStore) deal(id int) *models.Deal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deals[id].Clone()
}

// indices returns id -> index for every deal in stage
func (s *fakeStore) indices(stage string) map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[int]int{}
	for _, d := range s.deals {
		if d.Stage == stage {
			out[d.ID] = d.Index
		}
	}
	return out
}

func (s *fakeStore) calls() (lists, updates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listCalls), len(s.updateCalls)
}

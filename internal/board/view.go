package board

import (
	"sync"

	"github.com/google/go-cmp/cmp"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// View owns the current grouped view of the board.
// Sync only replaces it when the regrouped deals differ structurally, so
// subscribers are not woken for refetches that changed nothing.
type View struct {
	mu       sync.RWMutex
	stages   []models.Stage
	current  DealsByStage
	revision int
}

// NewView creates an empty view with one column per stage
func NewView(stages []models.Stage) *View {
	return &View{
		stages:  stages,
		current: GroupByStage(nil, stages),
	}
}

// Stages returns the configured stages in display order
func (v *View) Stages() []models.Stage {
	return v.stages
}

// Sync regroups deals and commits the result if it differs from the current view.
// It reports whether the view changed.
func (v *View) Sync(deals []*models.Deal) bool {
	next := GroupByStage(deals, v.stages)

	v.mu.Lock()
	defer v.mu.Unlock()

	if cmp.Equal(next, v.current) {
		return false
	}
	v.current = next
	v.revision++
	return true
}

// Snapshot returns a copy of the current view that callers may modify
func (v *View) Snapshot() DealsByStage {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current.Clone()
}

// Revision counts committed changes; it only grows
func (v *View) Revision() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.revision
}

// Package renumber computes and applies the index shifts that keep each
// stage's deal indices dense after a deal is moved.
package renumber

import (
	"fmt"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// AppendPolicy decides which index a deal gets when it is dropped with no
// explicit destination index.
type AppendPolicy string

const (
	// AppendPastEnd uses len(column)+1, one past the slot a dense column would use.
	// Stages written this way need a Compact pass to become dense again.
	AppendPastEnd AppendPolicy = "past_end"

	// AppendDense uses the first free slot, keeping indices contiguous.
	AppendDense AppendPolicy = "dense"
)

// ParseAppendPolicy validates a policy name from configuration
func ParseAppendPolicy(s string) (AppendPolicy, error) {
	switch AppendPolicy(s) {
	case AppendPastEnd, AppendDense:
		return AppendPolicy(s), nil
	case "":
		return AppendPastEnd, nil
	default:
		return "", fmt.Errorf("invalid append policy %q: must be %q or %q", s, AppendPastEnd, AppendDense)
	}
}

// Write is a single partial update of one deal.
// Stage is empty when the deal stays in its stage.
type Write struct {
	ID       int
	Index    int
	Stage    string
	Previous *models.Deal
}

// Params converts the write into store update parameters
func (w Write) Params() models.UpdateParams {
	index := w.Index
	patch := models.DealPatch{Index: &index}
	if w.Stage != "" {
		stage := w.Stage
		patch.Stage = &stage
	}
	return models.UpdateParams{ID: w.ID, Data: patch, PreviousData: w.Previous}
}

// WriteSet is the full list of writes for one move
type WriteSet []Write

// Snapshot is the store's view of the stages a move touches, each sorted by index.
// Destination is only used for cross-stage moves.
type Snapshot struct {
	Source      []*models.Deal
	Destination []*models.Deal
}

// DestinationIndex resolves dest.Index, applying the append policy when it is nil
func DestinationIndex(source *models.Deal, dest models.Destination, snap Snapshot, policy AppendPolicy) int {
	if dest.Index != nil {
		return *dest.Index
	}

	sameStage := source.Stage == dest.Stage
	column := snap.Destination
	if sameStage {
		column = snap.Source
	}

	if policy == AppendDense {
		if sameStage {
			return max(len(column)-1, 0)
		}
		return len(column)
	}
	return len(column) + 1
}

// Plan returns the writes that move source to dest given the fetched snapshot.
// It is pure: the same inputs always produce the same writes in the same order.
func Plan(snap Snapshot, source *models.Deal, dest models.Destination, policy AppendPolicy) WriteSet {
	destIndex := DestinationIndex(source, dest, snap, policy)

	if source.Stage == dest.Stage {
		return planSameStage(snap.Source, source, destIndex)
	}
	return planCrossStage(snap, source, dest.Stage, destIndex)
}

func planSameStage(column []*models.Deal, source *models.Deal, destIndex int) WriteSet {
	writes := make(WriteSet, 0, len(column))

	if source.Index > destIndex {
		// moving up: open the slot by pushing [destIndex, source) down
		for _, d := range column {
			if d.Index >= destIndex && d.Index < source.Index {
				writes = append(writes, Write{ID: d.ID, Index: d.Index + 1, Previous: d})
			}
		}
	} else {
		// moving down (or onto itself): pull (source, destIndex] up
		for _, d := range column {
			if d.Index <= destIndex && d.Index > source.Index {
				writes = append(writes, Write{ID: d.ID, Index: d.Index - 1, Previous: d})
			}
		}
	}

	return append(writes, Write{ID: source.ID, Index: destIndex, Previous: source})
}

func planCrossStage(snap Snapshot, source *models.Deal, destStage string, destIndex int) WriteSet {
	writes := make(WriteSet, 0, len(snap.Source)+len(snap.Destination)+1)

	for _, d := range snap.Source {
		if d.Index > source.Index {
			writes = append(writes, Write{ID: d.ID, Index: d.Index - 1, Previous: d})
		}
	}

	for _, d := range snap.Destination {
		if d.Index >= destIndex {
			writes = append(writes, Write{ID: d.ID, Index: d.Index + 1, Previous: d})
		}
	}

	return append(writes, Write{ID: source.ID, Index: destIndex, Stage: destStage, Previous: source})
}

// PlanCompact returns writes that make a stage's indices match positions again
func PlanCompact(column []*models.Deal) WriteSet {
	var writes WriteSet
	for pos, d := range column {
		if d.Index != pos {
			writes = append(writes, Write{ID: d.ID, Index: pos, Previous: d})
		}
	}
	return writes
}

// PlanRemoval returns writes that close the gap left by a deal leaving its stage
func PlanRemoval(column []*models.Deal, removed *models.Deal) WriteSet {
	var writes WriteSet
	for _, d := range column {
		if d.ID != removed.ID && d.Index > removed.Index {
			writes = append(writes, Write{ID: d.ID, Index: d.Index - 1, Previous: d})
		}
	}
	return writes
}

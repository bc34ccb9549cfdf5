// Package board holds the in-memory, grouped view of the pipeline and the
// logic that keeps it responsive while deals are dragged around.
package board

import (
	"fmt"
	"sort"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// DealsByStage maps a stage value to the deals in that stage, ordered by index
type DealsByStage map[string][]*models.Deal

// GroupByStage partitions a flat deal list into the given stages.
// Every stage gets an entry (possibly empty); deals in unknown stages are dropped.
func GroupByStage(deals []*models.Deal, stages []models.Stage) DealsByStage {
	grouped := make(DealsByStage, len(stages))
	for _, s := range stages {
		grouped[s.Value] = []*models.Deal{}
	}

	for _, d := range deals {
		if d == nil {
			continue
		}
		column, ok := grouped[d.Stage]
		if !ok {
			continue
		}
		grouped[d.Stage] = append(column, d)
	}

	for stage, column := range grouped {
		sort.SliceStable(column, func(i, j int) bool {
			if column[i].Index != column[j].Index {
				return column[i].Index < column[j].Index
			}
			return column[i].ID < column[j].ID
		})
		grouped[stage] = column
	}

	return grouped
}

// Clone returns a copy whose columns can be modified without touching the original
func (g DealsByStage) Clone() DealsByStage {
	out := make(DealsByStage, len(g))
	for stage, column := range g {
		out[stage] = append([]*models.Deal(nil), column...)
	}
	return out
}

// At returns the deal occupying a slot, or nil when the slot is empty
func (g DealsByStage) At(loc models.Location) *models.Deal {
	column := g[loc.Stage]
	if loc.Index < 0 || loc.Index >= len(column) {
		return nil
	}
	return column[loc.Index]
}

// Count returns the total number of deals in the view
func (g DealsByStage) Count() int {
	n := 0
	for _, column := range g {
		n += len(column)
	}
	return n
}

// Column is one stage's ordered deal sequence.
// Position in the slice is the deal's true place; Index is what the store holds.
type Column struct {
	Stage string
	Deals []*models.Deal
}

// ColumnOf returns the column for a stage
func (g DealsByStage) ColumnOf(stage string) Column {
	return Column{Stage: stage, Deals: g[stage]}
}

// Len returns the number of deals in the column
func (c Column) Len() int {
	return len(c.Deals)
}

// Validate checks that the stored indices are exactly 0..Len()-1 in order
func (c Column) Validate() error {
	for pos, d := range c.Deals {
		if d.Stage != c.Stage {
			return fmt.Errorf("deal %d in column %q has stage %q", d.ID, c.Stage, d.Stage)
		}
		if d.Index != pos {
			return fmt.Errorf("deal %d in column %q has index %d at position %d", d.ID, c.Stage, d.Index, pos)
		}
	}
	return nil
}

// Positions maps deal IDs to their position in the column
func (c Column) Positions() map[int]int {
	positions := make(map[int]int, len(c.Deals))
	for pos, d := range c.Deals {
		positions[d.ID] = pos
	}
	return positions
}

// Validate checks every column of the view
func (g DealsByStage) Validate() error {
	for stage := range g {
		if err := g.ColumnOf(stage).Validate(); err != nil {
			return err
		}
	}
	return nil
}

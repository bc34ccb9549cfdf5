package board

import "github.com/thenoetrevino/dealflow/internal/models"

// ReorderLocal relocates moved from source to dest and returns the new view.
//
// The source slot is removed first, then moved is inserted at dest.Index in the
// resulting column (append when nil or past the end). Index fields are left
// alone: the slice order is the new visual truth until the next refetch.
// Only the touched columns are copied; the rest are shared with view.
func ReorderLocal(moved *models.Deal, source models.Location, dest models.Destination, view DealsByStage) DealsByStage {
	next := make(DealsByStage, len(view))
	for stage, column := range view {
		next[stage] = column
	}

	sourceColumn := removeAt(view[source.Stage], source.Index)

	if source.Stage == dest.Stage {
		next[source.Stage] = insertAt(sourceColumn, dest.Index, moved)
		return next
	}

	next[source.Stage] = sourceColumn
	next[dest.Stage] = insertAt(append([]*models.Deal(nil), view[dest.Stage]...), dest.Index, moved)
	return next
}

// removeAt returns a fresh slice without the element at i
func removeAt(column []*models.Deal, i int) []*models.Deal {
	out := make([]*models.Deal, 0, len(column))
	for pos, d := range column {
		if pos == i {
			continue
		}
		out = append(out, d)
	}
	return out
}

// insertAt inserts d at index (clamped to the end); column is modified in place
func insertAt(column []*models.Deal, index *int, d *models.Deal) []*models.Deal {
	at := len(column)
	if index != nil && *index >= 0 && *index < len(column) {
		at = *index
	}
	column = append(column, nil)
	copy(column[at+1:], column[at:])
	column[at] = d
	return column
}

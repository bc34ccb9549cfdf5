package models

// SortOrder is the direction of a list sort
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// Sort selects the field and direction used to order a deal list
type Sort struct {
	Field string
	Order SortOrder
}

// Pagination is 1-based: Page 1 is the first page
type Pagination struct {
	Page    int
	PerPage int
}

// DealFilter restricts a list to matching deals. Zero values match everything.
type DealFilter struct {
	Stage string
}

// ListParams are the parameters of a deal list query
type ListParams struct {
	Sort       Sort
	Pagination Pagination
	Filter     DealFilter
}

// DealPatch is a partial update. Nil fields are left unchanged.
type DealPatch struct {
	Name  *string
	Stage *string
	Index *int
}

// IsEmpty reports whether the patch changes nothing
func (p DealPatch) IsEmpty() bool {
	return p.Name == nil && p.Stage == nil && p.Index == nil
}

// UpdateParams identify a deal and the fields to change on it.
// PreviousData is the caller's last known copy of the deal.
type UpdateParams struct {
	ID           int
	Data         DealPatch
	PreviousData *Deal
}

package models

// Location is a concrete slot on the board: a stage and a position in it.
type Location struct {
	Stage string `json:"stage"`
	Index int    `json:"index"`
}

// Destination is where a deal should end up.
// A nil Index means "append to the end of the stage".
type Destination struct {
	Stage string `json:"stage"`
	Index *int   `json:"index,omitempty"`
}

// DestinationAt builds a destination for an explicit slot
func DestinationAt(stage string, index int) Destination {
	return Destination{Stage: stage, Index: &index}
}

// AppendTo builds a destination that appends to the end of a stage
func AppendTo(stage string) Destination {
	return Destination{Stage: stage}
}

// DragResult is what a drag gesture reports when the card is released.
// Destination is nil when the card was dropped outside of any stage.
type DragResult struct {
	DealID      int       `json:"deal_id"`
	Source      Location  `json:"source"`
	Destination *Location `json:"destination,omitempty"`
}

// IsNoop reports whether the drop leaves the board unchanged
func (r DragResult) IsNoop() bool {
	if r.Destination == nil {
		return true
	}
	return r.Destination.Stage == r.Source.Stage && r.Destination.Index == r.Source.Index
}

package models

import "time"

// Deal is a single card on the pipeline board.
// Index is the deal's ordinal within its stage: unique and contiguous (0..N-1)
// across the deals sharing a Stage when the board is at rest.
type Deal struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Amount      int64     `json:"amount"`
	Stage       string    `json:"stage"`
	Index       int       `json:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetID returns the deal ID (used by quiet CLI output)
func (d *Deal) GetID() int {
	return d.ID
}

// Clone returns a copy of the deal
func (d *Deal) Clone() *Deal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

package events

import "time"

// ProtocolVersion is bumped whenever Message changes incompatibly
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventDealsChanged EventType = "deals_changed"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Event is a board change notification. Receivers refetch the stages listed
// in Stages, or the whole board when Stages is empty.
type Event struct {
	Type       EventType
	DealID     int       `json:",omitempty"`
	MoveID     string    `json:",omitempty"` // correlates with the mover's log lines
	Stages     []string  `json:",omitempty"`
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing sequence number for ordering
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Version int    `json:",omitempty"`
	Type    string // "event", "ping", "pong"
	Event   *Event `json:",omitempty"`
}

// mergeStages returns the union of a and b, keeping first-seen order.
// An empty side means "every stage" and wins.
func mergeStages(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

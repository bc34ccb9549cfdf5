package models

import (
	"errors"
	"testing"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Messages(t *testing.T) {
	tests := []struct {
		err             error
		expectedMessage string
	}{
		{ErrDealNotFound, "deal not found"},
		{ErrUnknownStage, "unknown stage"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.expectedMessage {
			t.Errorf("Expected error message '%s', got '%s'", tt.expectedMessage, tt.err.Error())
		}
	}
}

func TestErrors_Unique(t *testing.T) {
	if errors.Is(ErrDealNotFound, ErrUnknownStage) {
		t.Error("ErrDealNotFound should not equal ErrUnknownStage")
	}
}

// ============================================================================
// Drag Result Tests
// ============================================================================

func TestDragResult_IsNoop(t *testing.T) {
	tests := []struct {
		name   string
		result DragResult
		want   bool
	}{
		{
			name:   "dropped outside any stage",
			result: DragResult{Source: Location{Stage: "won", Index: 1}},
			want:   true,
		},
		{
			name: "dropped on the same slot",
			result: DragResult{
				Source:      Location{Stage: "won", Index: 1},
				Destination: &Location{Stage: "won", Index: 1},
			},
			want: true,
		},
		{
			name: "same stage different index",
			result: DragResult{
				Source:      Location{Stage: "won", Index: 1},
				Destination: &Location{Stage: "won", Index: 2},
			},
			want: false,
		},
		{
			name: "same index different stage",
			result: DragResult{
				Source:      Location{Stage: "won", Index: 1},
				Destination: &Location{Stage: "lost", Index: 1},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.IsNoop(); got != tt.want {
				t.Errorf("IsNoop() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Destination / Stage helpers
// ============================================================================

func TestDestinationHelpers(t *testing.T) {
	d := DestinationAt("won", 2)
	if d.Index == nil || *d.Index != 2 || d.Stage != "won" {
		t.Errorf("DestinationAt produced %+v", d)
	}

	a := AppendTo("lost")
	if a.Index != nil || a.Stage != "lost" {
		t.Errorf("AppendTo produced %+v", a)
	}
}

func TestFindStage(t *testing.T) {
	s, ok := FindStage(DefaultStages, "won")
	if !ok || s.Label != "Won" {
		t.Errorf("expected to find won stage, got %+v (ok=%v)", s, ok)
	}

	if _, ok := FindStage(DefaultStages, "archived"); ok {
		t.Error("did not expect to find archived stage")
	}

	values := StageValues(DefaultStages)
	if len(values) != len(DefaultStages) || values[0] != "opportunity" {
		t.Errorf("unexpected stage values %v", values)
	}
}

func TestDeal_Clone(t *testing.T) {
	var nilDeal *Deal
	if nilDeal.Clone() != nil {
		t.Error("cloning nil deal should return nil")
	}

	d := &Deal{ID: 1, Name: "Acme", Stage: "won", Index: 3}
	c := d.Clone()
	c.Index = 0
	if d.Index != 3 {
		t.Error("clone should not share state with the original")
	}
}

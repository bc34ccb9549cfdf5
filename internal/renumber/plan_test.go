package renumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// writeMap flattens a write set to id -> index for order-independent checks
func writeMap(ws WriteSet) map[int]int {
	out := make(map[int]int, len(ws))
	for _, w := range ws {
		out[w.ID] = w.Index
	}
	return out
}

func TestPlan_SameStageMoveUp(t *testing.T) {
	won := column("won", 1, 4)

	writes := Plan(Snapshot{Source: won}, won[3], models.DestinationAt("won", 1), AppendPastEnd)

	assert.Equal(t, map[int]int{2: 2, 3: 3, 4: 1}, writeMap(writes))
	assert.Equal(t, 4, writes[len(writes)-1].ID, "moved deal is written last")
	for _, w := range writes {
		assert.Empty(t, w.Stage, "same-stage moves never change stage")
	}
}

func TestPlan_SameStageMoveDown(t *testing.T) {
	col := column("proposal-sent", 10, 4)

	writes := Plan(Snapshot{Source: col}, col[1], models.DestinationAt("proposal-sent", 3), AppendPastEnd)

	assert.Equal(t, map[int]int{12: 1, 13: 2, 11: 3}, writeMap(writes))
}

func TestPlan_CrossStageAppendPastEnd(t *testing.T) {
	opportunity := column("opportunity", 1, 5)
	won := column("won", 100, 2)

	writes := Plan(Snapshot{Source: opportunity, Destination: won}, opportunity[2], models.AppendTo("won"), AppendPastEnd)

	assert.Equal(t, map[int]int{4: 2, 5: 3, 3: 3}, writeMap(writes))

	moved := writes[len(writes)-1]
	assert.Equal(t, 3, moved.ID)
	assert.Equal(t, "won", moved.Stage)
	for _, w := range writes[:len(writes)-1] {
		assert.Empty(t, w.Stage)
		assert.Less(t, w.ID, 100, "no destination deal shifts")
	}
}

func TestPlan_CrossStageInsert(t *testing.T) {
	lost := column("lost", 1, 3)
	delayed := column("delayed", 10, 3)

	writes := Plan(Snapshot{Source: lost, Destination: delayed}, lost[0], models.DestinationAt("delayed", 1), AppendPastEnd)

	assert.Equal(t, map[int]int{
		2: 0, 3: 1, // source closes the gap
		11: 2, 12: 3, // destination opens the slot
		1: 1,
	}, writeMap(writes))
}

func TestPlan_CrossStageIntoEmptyStage(t *testing.T) {
	won := column("won", 1, 2)

	dense := Plan(Snapshot{Source: won}, won[0], models.AppendTo("lost"), AppendDense)
	assert.Equal(t, map[int]int{2: 0, 1: 0}, writeMap(dense))

	pastEnd := Plan(Snapshot{Source: won}, won[0], models.AppendTo("lost"), AppendPastEnd)
	assert.Equal(t, map[int]int{2: 0, 1: 1}, writeMap(pastEnd))
}

func TestPlan_EqualIndexWritesSourceOnly(t *testing.T) {
	won := column("won", 1, 4)

	writes := Plan(Snapshot{Source: won}, won[2], models.DestinationAt("won", 2), AppendPastEnd)

	require.Len(t, writes, 1)
	assert.Equal(t, Write{ID: 3, Index: 2, Previous: won[2]}, writes[0])
}

func TestPlan_IsDeterministic(t *testing.T) {
	opportunity := column("opportunity", 1, 6)
	won := column("won", 50, 4)
	snap := Snapshot{Source: opportunity, Destination: won}
	dest := models.DestinationAt("won", 2)

	first := Plan(snap, opportunity[1], dest, AppendPastEnd)
	for range 10 {
		assert.Equal(t, first, Plan(snap, opportunity[1], dest, AppendPastEnd))
	}
}

func TestDestinationIndex(t *testing.T) {
	won := column("won", 1, 3)
	lost := column("lost", 10, 2)
	snap := Snapshot{Source: won, Destination: lost}

	tests := []struct {
		name   string
		dest   models.Destination
		policy AppendPolicy
		want   int
	}{
		{"explicit index", models.DestinationAt("lost", 1), AppendPastEnd, 1},
		{"cross stage past end", models.AppendTo("lost"), AppendPastEnd, 3},
		{"cross stage dense", models.AppendTo("lost"), AppendDense, 2},
		{"same stage past end", models.AppendTo("won"), AppendPastEnd, 4},
		{"same stage dense", models.AppendTo("won"), AppendDense, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DestinationIndex(won[0], tt.dest, snap, tt.policy))
		})
	}
}

func TestPlanCompact(t *testing.T) {
	col := []*models.Deal{
		{ID: 1, Stage: "won", Index: 0},
		{ID: 2, Stage: "won", Index: 2},
		{ID: 3, Stage: "won", Index: 5},
	}

	assert.Equal(t, map[int]int{2: 1, 3: 2}, writeMap(PlanCompact(col)))
	assert.Empty(t, PlanCompact(column("won", 1, 3)))
}

func TestPlanRemoval(t *testing.T) {
	col := column("won", 1, 4)

	assert.Equal(t, map[int]int{3: 1, 4: 2}, writeMap(PlanRemoval(col, col[1])))
	assert.Empty(t, PlanRemoval(col, col[3]))
}

func TestWrite_Params(t *testing.T) {
	prev := &models.Deal{ID: 7, Stage: "won", Index: 4}

	p := Write{ID: 7, Index: 2, Previous: prev}.Params()
	require.NotNil(t, p.Data.Index)
	assert.Equal(t, 2, *p.Data.Index)
	assert.Nil(t, p.Data.Stage)
	assert.Same(t, prev, p.PreviousData)

	p = Write{ID: 7, Index: 0, Stage: "lost"}.Params()
	require.NotNil(t, p.Data.Stage)
	assert.Equal(t, "lost", *p.Data.Stage)
}

func TestParseAppendPolicy(t *testing.T) {
	p, err := ParseAppendPolicy("")
	require.NoError(t, err)
	assert.Equal(t, AppendPastEnd, p)

	p, err = ParseAppendPolicy("dense")
	require.NoError(t, err)
	assert.Equal(t, AppendDense, p)

	_, err = ParseAppendPolicy("sparse")
	assert.Error(t, err)
}

package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/dealflow/internal/models"
)

func TestView_SyncMemoizesOnStructure(t *testing.T) {
	v := NewView(testStages)
	assert.Equal(t, 0, v.Revision())
	assert.Len(t, v.Snapshot(), len(testStages))

	deals := seed("won", 1, 3)
	assert.True(t, v.Sync(deals))
	assert.Equal(t, 1, v.Revision())

	// fresh pointers, same content
	assert.False(t, v.Sync(seed("won", 1, 3)), "structurally equal refetch is ignored")
	assert.Equal(t, 1, v.Revision())

	changed := seed("won", 1, 3)
	changed[2].Name = "renamed"
	assert.True(t, v.Sync(changed))
	assert.Equal(t, 2, v.Revision())
}

func TestView_SnapshotIsACopy(t *testing.T) {
	v := NewView(testStages)
	v.Sync(seed("won", 1, 2))

	snap := v.Snapshot()
	snap["won"] = snap["won"][:1]

	assert.Len(t, v.Snapshot()["won"], 2)
}

func TestView_Stages(t *testing.T) {
	v := NewView(testStages)
	assert.Equal(t, []models.Stage(testStages), v.Stages())
}

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealflow/internal/config"
	"github.com/thenoetrevino/dealflow/internal/database"
	"github.com/thenoetrevino/dealflow/internal/models"
	"github.com/thenoetrevino/dealflow/internal/renumber"
	dealservice "github.com/thenoetrevino/dealflow/internal/services/deal"
)

func setupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return database.NewRepository(db)
}

func TestNew(t *testing.T) {
	app := New(setupTestRepo(t), nil)

	require.NotNil(t, app)
	assert.NotNil(t, app.DealService)
	assert.NotNil(t, app.Engine)
	assert.NotNil(t, app.Repo())
	assert.Nil(t, app.EventClient())
	assert.Equal(t, models.DefaultStages, app.Config.Stages)
	assert.Equal(t, renumber.AppendPastEnd, app.Engine.Policy())
}

func TestNew_UsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Renumber.AppendPolicy = "dense"

	app := New(setupTestRepo(t), cfg, WithLogger(nil))
	assert.Equal(t, renumber.AppendDense, app.Engine.Policy())
}

func TestNewBoardController_DragsThroughTheStore(t *testing.T) {
	ctx := context.Background()
	app := New(setupTestRepo(t), nil)

	for _, name := range []string{"a", "b", "c"} {
		_, err := app.DealService.CreateDeal(ctx, dealservice.CreateDealRequest{Name: name, Stage: "won"})
		require.NoError(t, err)
	}

	c := app.NewBoardController()
	require.NoError(t, c.Refresh(ctx))

	require.NoError(t, c.OnDragEnd(ctx, models.DragResult{
		Source:      models.Location{Stage: "won", Index: 2},
		Destination: &models.Location{Stage: "won", Index: 0},
	}))
	c.Wait()

	won := c.View().Snapshot()["won"]
	require.Len(t, won, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{won[0].Name, won[1].Name, won[2].Name})
	assert.NoError(t, c.View().Snapshot().Validate())
}

func TestClose(t *testing.T) {
	app := New(setupTestRepo(t), nil)
	assert.NoError(t, app.Close())
}

package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/dealflow/internal/models"
)

func TestDealRepo_CreateAndGet(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Deal{
		Name:        "Acme renewal",
		Description: "three year term",
		Category:    "renewal",
		Amount:      120000,
		Stage:       "opportunity",
		Index:       0,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme renewal", got.Name)
	assert.Equal(t, "three year term", got.Description)
	assert.Equal(t, "renewal", got.Category)
	assert.Equal(t, int64(120000), got.Amount)
	assert.Equal(t, "opportunity", got.Stage)
	assert.Equal(t, 0, got.Index)
}

func TestDealRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, models.ErrDealNotFound)
}

func TestDealRepo_Append(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	for i, name := range []string{"a", "b", "c"} {
		d, err := repo.Append(ctx, &models.Deal{Name: name, Stage: "won"})
		require.NoError(t, err)
		assert.Equal(t, i, d.Index)
	}

	other, err := repo.Append(ctx, &models.Deal{Name: "x", Stage: "lost"})
	require.NoError(t, err)
	assert.Equal(t, 0, other.Index, "each stage counts on its own")

	count, err := repo.CountByStage(ctx, "won")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestDealRepo_List(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	createTestDeal(t, repo, "won-2", "won", 2)
	createTestDeal(t, repo, "won-0", "won", 0)
	createTestDeal(t, repo, "won-1", "won", 1)
	createTestDeal(t, repo, "lost-0", "lost", 0)

	names := func(deals []*models.Deal) []string {
		out := make([]string, len(deals))
		for i, d := range deals {
			out[i] = d.Name
		}
		return out
	}

	tests := []struct {
		name   string
		params models.ListParams
		want   []string
	}{
		{
			name: "filter by stage sorted by index",
			params: models.ListParams{
				Sort:   models.Sort{Field: "index", Order: models.SortAsc},
				Filter: models.DealFilter{Stage: "won"},
			},
			want: []string{"won-0", "won-1", "won-2"},
		},
		{
			name: "descending",
			params: models.ListParams{
				Sort:   models.Sort{Field: "index", Order: models.SortDesc},
				Filter: models.DealFilter{Stage: "won"},
			},
			want: []string{"won-2", "won-1", "won-0"},
		},
		{
			name: "lowercase order is accepted",
			params: models.ListParams{
				Sort:   models.Sort{Field: "name", Order: "desc"},
				Filter: models.DealFilter{Stage: "won"},
			},
			want: []string{"won-2", "won-1", "won-0"},
		},
		{
			name: "pagination",
			params: models.ListParams{
				Sort:       models.Sort{Field: "index"},
				Pagination: models.Pagination{Page: 2, PerPage: 2},
				Filter:     models.DealFilter{Stage: "won"},
			},
			want: []string{"won-2"},
		},
		{
			name: "page past the end",
			params: models.ListParams{
				Pagination: models.Pagination{Page: 5, PerPage: 2},
				Filter:     models.DealFilter{Stage: "won"},
			},
			want: []string{},
		},
		{
			name:   "no filter returns every deal, ties broken by id",
			params: models.ListParams{Sort: models.Sort{Field: "index"}},
			want:   []string{"won-0", "lost-0", "won-1", "won-2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deals, err := repo.List(ctx, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(deals))
		})
	}
}

func TestDealRepo_List_InvalidSort(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.List(ctx, models.ListParams{Sort: models.Sort{Field: "id; DROP TABLE deals"}})
	assert.ErrorIs(t, err, ErrInvalidSort)

	_, err = repo.List(ctx, models.ListParams{Sort: models.Sort{Field: "index", Order: "sideways"}})
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func TestDealRepo_Update(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	d := createTestDeal(t, repo, "deal", "opportunity", 3)

	index := 1
	stage := "won"
	updated, err := repo.Update(ctx, models.UpdateParams{
		ID:           d.ID,
		Data:         models.DealPatch{Index: &index, Stage: &stage},
		PreviousData: d,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Index)
	assert.Equal(t, "won", updated.Stage)
	assert.Equal(t, "deal", updated.Name, "fields outside the patch are untouched")

	name := "renamed"
	updated, err = repo.Update(ctx, models.UpdateParams{ID: d.ID, Data: models.DealPatch{Name: &name}})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, 1, updated.Index)

	same, err := repo.Update(ctx, models.UpdateParams{ID: d.ID})
	require.NoError(t, err)
	assert.Equal(t, updated.Name, same.Name, "an empty patch is a read")
}

func TestDealRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))

	index := 0
	_, err := repo.Update(context.Background(), models.UpdateParams{ID: 99, Data: models.DealPatch{Index: &index}})
	assert.True(t, errors.Is(err, models.ErrDealNotFound))
}

func TestDealRepo_Delete(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	d := createTestDeal(t, repo, "gone", "won", 0)
	createTestDeal(t, repo, "stays", "won", 1)

	removed, err := repo.Delete(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "gone", removed.Name)
	assert.Equal(t, map[string]int{"stays": 1}, stageIndices(t, repo, "won"))

	_, err = repo.Delete(ctx, d.ID)
	assert.ErrorIs(t, err, models.ErrDealNotFound)
}

func TestInitDB_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "deals.db")

	db, err := InitDB(ctx, path)
	require.NoError(t, err)
	_, err = NewRepository(db).Append(ctx, &models.Deal{Name: "kept", Stage: "won"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	db, err = InitDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, map[string]int{"kept": 0}, stageIndices(t, NewRepository(db), "won"))
}

package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/dealflow/internal/database"
	"github.com/thenoetrevino/dealflow/internal/models"
)

// SetupTestDB creates an in-memory database with the full schema.
// It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestDeal inserts a deal at an explicit stage and index and returns its ID
func CreateTestDeal(t *testing.T, db *sql.DB, name, stage string, index int) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO deals (name, stage, stage_index) VALUES (?, ?, ?)", name, stage, index)
	if err != nil {
		t.Fatalf("Failed to create test deal %q: %v", name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read test deal id: %v", err)
	}
	return int(id)
}

// SeedStage inserts one deal per name into stage at indices 0..len(names)-1
// and returns their IDs in order
func SeedStage(t *testing.T, db *sql.DB, stage string, names ...string) []int {
	t.Helper()
	ids := make([]int, len(names))
	for i, name := range names {
		ids[i] = CreateTestDeal(t, db, name, stage, i)
	}
	return ids
}

// StageOrder returns the names of a stage's deals ordered by index
func StageOrder(t *testing.T, db *sql.DB, stage string) []string {
	t.Helper()
	deals := StageDeals(t, db, stage)
	names := make([]string, len(deals))
	for i, d := range deals {
		names[i] = d.Name
	}
	return names
}

// StageDeals returns a stage's deals ordered by index
func StageDeals(t *testing.T, db *sql.DB, stage string) []*models.Deal {
	t.Helper()
	deals, err := database.NewRepository(db).List(context.Background(), models.ListParams{
		Filter: models.DealFilter{Stage: stage},
	})
	if err != nil {
		t.Fatalf("Failed to list stage %q: %v", stage, err)
	}
	return deals
}

// AssertStageDense fails the test unless the stage's indices are exactly 0..N-1
func AssertStageDense(t *testing.T, db *sql.DB, stage string) {
	t.Helper()
	for pos, d := range StageDeals(t, db, stage) {
		if d.Index != pos {
			t.Errorf("stage %q: deal %d (%s) has index %d at position %d", stage, d.ID, d.Name, d.Index, pos)
		}
	}
}

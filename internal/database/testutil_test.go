package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// createTestDeal inserts a deal directly at the given stage and index
func createTestDeal(t *testing.T, repo *Repository, name, stage string, index int) *models.Deal {
	t.Helper()
	d, err := repo.Create(context.Background(), &models.Deal{Name: name, Stage: stage, Index: index})
	if err != nil {
		t.Fatalf("Failed to create deal %q: %v", name, err)
	}
	return d
}

// stageIndices returns deal names of a stage ordered by index, with their indices
func stageIndices(t *testing.T, repo *Repository, stage string) map[string]int {
	t.Helper()
	deals, err := repo.List(context.Background(), models.ListParams{Filter: models.DealFilter{Stage: stage}})
	if err != nil {
		t.Fatalf("Failed to list stage %q: %v", stage, err)
	}
	out := make(map[string]int, len(deals))
	for _, d := range deals {
		out[d.Name] = d.Index
	}
	return out
}

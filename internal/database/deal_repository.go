package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/dealflow/internal/models"
)

// ErrInvalidSort is returned for sort fields or orders the store does not know
var ErrInvalidSort = errors.New("invalid sort")

// sortColumns maps public sort fields to table columns
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"amount":     "amount",
	"stage":      "stage",
	"index":      "stage_index",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

const dealColumns = `id, name, description, category, amount, stage, stage_index, created_at, updated_at`

// DealRepo handles pure data access for deals
// No business logic, no events, no validation - just database operations
type DealRepo struct {
	db *sql.DB
}

// NewDealRepo creates a deal repository over db
func NewDealRepo(db *sql.DB) *DealRepo {
	return &DealRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (*models.Deal, error) {
	var description, category sql.NullString
	d := &models.Deal{}
	if err := row.Scan(
		&d.ID, &d.Name, &description, &category, &d.Amount,
		&d.Stage, &d.Index, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.Description = NullStringToString(description)
	d.Category = NullStringToString(category)
	return d, nil
}

// ============================================================================
// READS
// ============================================================================

// List returns deals matching params.Filter, sorted and paginated.
// Ties on the sort field are broken by id so pages are stable.
func (r *DealRepo) List(ctx context.Context, params models.ListParams) ([]*models.Deal, error) {
	query, args, err := buildListQuery(params)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer rows.Close()

	deals := []*models.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, d)
	}

	return deals, rows.Err()
}

func buildListQuery(params models.ListParams) (string, []any, error) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT " + dealColumns + " FROM deals")

	if params.Filter.Stage != "" {
		b.WriteString(" WHERE stage = ?")
		args = append(args, params.Filter.Stage)
	}

	field := params.Sort.Field
	if field == "" {
		field = models.SortFieldIndex
	}
	column, ok := sortColumns[field]
	if !ok {
		return "", nil, fmt.Errorf("%w field %q", ErrInvalidSort, field)
	}

	order := strings.ToUpper(string(params.Sort.Order))
	switch models.SortOrder(order) {
	case "":
		order = string(models.SortAsc)
	case models.SortAsc, models.SortDesc:
	default:
		return "", nil, fmt.Errorf("%w order %q", ErrInvalidSort, params.Sort.Order)
	}

	fmt.Fprintf(&b, " ORDER BY %s %s, id %s", column, order, order)

	if params.Pagination.PerPage > 0 {
		page := max(params.Pagination.Page, 1)
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, params.Pagination.PerPage, (page-1)*params.Pagination.PerPage)
	}

	return b.String(), args, nil
}

// GetByID retrieves a single deal
func (r *DealRepo) GetByID(ctx context.Context, id int) (*models.Deal, error) {
	d, err := scanDeal(r.db.QueryRowContext(ctx,
		"SELECT "+dealColumns+" FROM deals WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("deal %d: %w", id, models.ErrDealNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deal %d: %w", id, err)
	}
	return d, nil
}

// CountByStage returns the number of deals in a stage
func (r *DealRepo) CountByStage(ctx context.Context, stage string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM deals WHERE stage = ?", stage).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count deals in stage %q: %w", stage, err)
	}
	return count, nil
}

// ============================================================================
// WRITES
// ============================================================================

// Create inserts a deal. Its Stage and Index are stored as given.
func (r *DealRepo) Create(ctx context.Context, d *models.Deal) (*models.Deal, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO deals (name, description, category, amount, stage, stage_index)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.Name, nullString(d.Description), nullString(d.Category), d.Amount, d.Stage, d.Index,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new deal id: %w", err)
	}

	return r.GetByID(ctx, int(id))
}

// Append inserts a deal at the end of its stage, reading the stage size and
// inserting in one transaction.
func (r *DealRepo) Append(ctx context.Context, d *models.Deal) (*models.Deal, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM deals WHERE stage = ?", d.Stage).Scan(&count); err != nil {
			return fmt.Errorf("failed to count stage %q: %w", d.Stage, err)
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO deals (name, description, category, amount, stage, stage_index)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			d.Name, nullString(d.Description), nullString(d.Category), d.Amount, d.Stage, count,
		)
		if err != nil {
			return fmt.Errorf("failed to create deal: %w", err)
		}

		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, int(id))
}

// Update applies a partial update and returns the stored deal.
// PreviousData is accepted for callers that track it; the store does not use it.
func (r *DealRepo) Update(ctx context.Context, params models.UpdateParams) (*models.Deal, error) {
	patch := params.Data
	if patch.IsEmpty() {
		return r.GetByID(ctx, params.ID)
	}

	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Stage != nil {
		sets = append(sets, "stage = ?")
		args = append(args, *patch.Stage)
	}
	if patch.Index != nil {
		sets = append(sets, "stage_index = ?")
		args = append(args, *patch.Index)
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, params.ID)

	result, err := r.db.ExecContext(ctx,
		"UPDATE deals SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update deal %d: %w", params.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update deal %d: %w", params.ID, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("deal %d: %w", params.ID, models.ErrDealNotFound)
	}

	return r.GetByID(ctx, params.ID)
}

// Delete removes a deal and returns it as it was before removal
func (r *DealRepo) Delete(ctx context.Context, id int) (*models.Deal, error) {
	var removed *models.Deal
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		d, err := scanDeal(tx.QueryRowContext(ctx,
			"SELECT "+dealColumns+" FROM deals WHERE id = ?", id))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("deal %d: %w", id, models.ErrDealNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get deal %d: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM deals WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete deal %d: %w", id, err)
		}
		removed = d
		return nil
	})
	return removed, err
}

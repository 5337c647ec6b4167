package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) adjustment.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

// tableNames returns the assignment table, catalog table and id column for
// the given kind. Incomes and outcomes share one schema shape.
func tableNames(kind adjustment.Kind) (assignments, catalog, idColumn string) {
	if kind == adjustment.KindOutcome {
		return "outcomes_users", "outcomes", "outcome_id"
	}
	return "incomes_users", "incomes", "income_id"
}

func (r *adjustmentRepository) ListForUser(ctx context.Context, kind adjustment.Kind, userID int64, adjustmentIDs []int64) ([]adjustment.UserAdjustment, error) {
	q := GetQuerier(ctx, r.db)
	assignments, catalog, idColumn := tableNames(kind)

	args := []any{userID}
	query := fmt.Sprintf(`
		SELECT au.user_id, au.%s, au.counter, au.amount, c.name, c.automatic
		FROM %s au
		JOIN %s c ON c.id = au.%s AND c.active = true AND c.deleted_at IS NULL
		WHERE au.user_id = $1 AND au.deleted_at IS NULL
	`, idColumn, assignments, catalog, idColumn)

	if len(adjustmentIDs) > 0 {
		args = append(args, adjustmentIDs)
		query += fmt.Sprintf(" AND au.%s = ANY($2)", idColumn)
	}
	query += fmt.Sprintf(" ORDER BY au.%s ASC", idColumn)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss for user: %w", kind, err)
	}
	defer rows.Close()

	var result []adjustment.UserAdjustment
	for rows.Next() {
		var a adjustment.UserAdjustment
		if err := rows.Scan(&a.UserID, &a.AdjustmentID, &a.Counter, &a.Amount, &a.Name, &a.Automatic); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

func (r *adjustmentRepository) ListByUserIDs(ctx context.Context, kind adjustment.Kind, userIDs []int64) ([]adjustment.UserAdjustment, error) {
	q := GetQuerier(ctx, r.db)
	assignments, catalog, idColumn := tableNames(kind)

	query := fmt.Sprintf(`
		SELECT au.user_id, au.%s, au.counter, au.amount, c.name, c.automatic
		FROM %s au
		JOIN %s c ON c.id = au.%s AND c.active = true AND c.deleted_at IS NULL
		WHERE au.user_id = ANY($1) AND au.deleted_at IS NULL
		ORDER BY au.user_id ASC, au.%s ASC
	`, idColumn, assignments, catalog, idColumn, idColumn)

	rows, err := q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss by users: %w", kind, err)
	}
	defer rows.Close()

	var result []adjustment.UserAdjustment
	for rows.Next() {
		var a adjustment.UserAdjustment
		if err := rows.Scan(&a.UserID, &a.AdjustmentID, &a.Counter, &a.Amount, &a.Name, &a.Automatic); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", kind, err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

func (r *adjustmentRepository) ListCatalog(ctx context.Context, kind adjustment.Kind) ([]adjustment.Adjustment, error) {
	q := GetQuerier(ctx, r.db)
	_, catalog, _ := tableNames(kind)

	query := fmt.Sprintf(`
		SELECT id, name, automatic, created_at
		FROM %s
		WHERE active = true AND deleted_at IS NULL
		ORDER BY id ASC
	`, catalog)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s catalog: %w", kind, err)
	}
	defer rows.Close()

	var result []adjustment.Adjustment
	for rows.Next() {
		var a adjustment.Adjustment
		if err := rows.Scan(&a.ID, &a.Name, &a.Automatic, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s catalog entry: %w", kind, err)
		}
		result = append(result, a)
	}

	return result, rows.Err()
}

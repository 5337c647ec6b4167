package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) GetCurrentByUserID(ctx context.Context, userID int64) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, salary, created_at, deleted_at
		FROM salaries
		WHERE user_id = $1 AND deleted_at IS NULL
	`

	var s salary.Salary
	err := q.QueryRow(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.Salary, &s.CreatedAt, &s.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get current salary: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id int64) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, salary, created_at, deleted_at
		FROM salaries
		WHERE id = $1
	`

	var s salary.Salary
	err := q.QueryRow(ctx, query, id).Scan(&s.ID, &s.UserID, &s.Salary, &s.CreatedAt, &s.DeletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) Create(ctx context.Context, userID int64, amount decimal.Decimal) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salaries (user_id, salary)
		VALUES ($1, $2)
		RETURNING id, user_id, salary, created_at, deleted_at
	`

	var s salary.Salary
	err := q.QueryRow(ctx, query, userID, amount).Scan(&s.ID, &s.UserID, &s.Salary, &s.CreatedAt, &s.DeletedAt)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to create salary: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) SoftDeleteCurrent(ctx context.Context, userID int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE salaries SET deleted_at = NOW() WHERE user_id = $1 AND deleted_at IS NULL`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to retire current salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryNotFound
	}

	return nil
}

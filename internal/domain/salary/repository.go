package salary

import (
	"context"

	"github.com/shopspring/decimal"
)

type SalaryRepository interface {
	GetCurrentByUserID(ctx context.Context, userID int64) (Salary, error)
	GetByID(ctx context.Context, id int64) (Salary, error)
	Create(ctx context.Context, userID int64, amount decimal.Decimal) (Salary, error)
	// SoftDeleteCurrent retires the user's current salary row. Returns
	// ErrSalaryNotFound when the user has none, which is fine on first
	// assignment.
	SoftDeleteCurrent(ctx context.Context, userID int64) error
}

package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is one salary assignment for a user. At most one row per user is
// current (deleted_at IS NULL); changing a salary soft-deletes the old row
// and inserts a new one so history is preserved.
type Salary struct {
	ID        int64
	UserID    int64
	Salary    decimal.Decimal
	CreatedAt time.Time
	DeletedAt *time.Time
}

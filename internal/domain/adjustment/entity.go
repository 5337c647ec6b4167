package adjustment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes the two adjustment catalogs. Incomes add to the payroll
// total, outcomes subtract from it.
type Kind string

const (
	KindIncome  Kind = "income"
	KindOutcome Kind = "outcome"
)

// Adjustment is one catalog entry (bonus, commission, tax withholding, ...).
type Adjustment struct {
	ID        int64
	Name      string
	Automatic bool
	CreatedAt time.Time
}

// UserAdjustment is an adjustment assigned to a user. A row only counts
// toward payroll when Counter is non-zero and Amount is non-zero; rows with
// either field unset are dormant and skipped.
type UserAdjustment struct {
	UserID       int64
	AdjustmentID int64
	Counter      int
	Amount       decimal.Decimal

	// Joined from the catalog
	Name      string
	Automatic bool
}

// Counted reports whether the row participates in payroll totals. The
// counter acts as a gate, not a multiplier; a counted row contributes its
// amount exactly once.
func (a UserAdjustment) Counted() bool {
	return a.Counter != 0 && !a.Amount.IsZero()
}

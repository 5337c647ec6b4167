package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

// Totals is the result of one payroll calculation:
// payroll = salary + counted incomes - counted outcomes.
type Totals struct {
	PayrollTotal  decimal.Decimal `json:"payroll_total"`
	IncomesTotal  decimal.Decimal `json:"incomes_total"`
	OutcomesTotal decimal.Decimal `json:"outcomes_total"`
}

// UnitTotals accumulates the payrolls attributed to one business unit.
type UnitTotals struct {
	PayrollTotal  decimal.Decimal `json:"payroll_total"`
	SalariesTotal decimal.Decimal `json:"salaries_total"`
	IncomesTotal  decimal.Decimal `json:"incomes_total"`
	OutcomesTotal decimal.Decimal `json:"outcomes_total"`
}

// EmployeePayroll is one roster entry folded into the batch run, carrying
// everything the staging tables need.
type EmployeePayroll struct {
	UserID          int64
	SalaryID        int64
	PaymentPeriodID int64
	PayrollSchemaID int64
	BusinessUnit    user.BusinessUnit
	IncomeIDs       []int64
	OutcomeIDs      []int64
	Totals          Totals
}

// Aggregate is the fold of a whole batch run. Global is the sum of every
// employee total; BusinessUnits breaks the same money down by the unit each
// employee was attributed to.
type Aggregate struct {
	Global        decimal.Decimal
	BusinessUnits map[int64]UnitTotals
}

// BatchFailure records an employee that could not be calculated. The batch
// keeps going past failures; they are reported, never silently dropped.
type BatchFailure struct {
	UserID int64
	Err    error
}

// PrePayment is one staged per-employee payroll draft. Drafts live in their
// own table until a push promotes them to the payments ledger.
type PrePayment struct {
	ID              int64
	UserID          int64
	SalaryID        int64
	PaymentPeriodID int64
	PayrollSchemaID int64
	BusinessUnit    user.BusinessUnit
	IncomeIDs       []int64
	OutcomeIDs      []int64
	TotalIncomes    decimal.Decimal
	TotalOutcomes   decimal.Decimal
	TotalAmount     decimal.Decimal
	PaymentDate     time.Time
	CreatedAt       time.Time

	// Joined fields
	Salary            *decimal.Decimal
	PaymentPeriodName *string
}

// PrePayrollAggregate is one staged aggregate row. The global row carries a
// NULL business unit; per-unit rows carry the unit they summarize.
type PrePayrollAggregate struct {
	ID              int64
	PaymentDate     time.Time
	PaymentPeriodID int64
	BusinessUnitID  *int64
	TotalAmount     decimal.Decimal
	CreatedAt       time.Time
}

// Payment is a promoted draft in the permanent ledger. Same shape as
// PrePayment on purpose; promotion copies rows without reshaping them.
type Payment struct {
	ID              int64
	UserID          int64
	SalaryID        int64
	PaymentPeriodID int64
	PayrollSchemaID int64
	BusinessUnit    user.BusinessUnit
	IncomeIDs       []int64
	OutcomeIDs      []int64
	TotalIncomes    decimal.Decimal
	TotalOutcomes   decimal.Decimal
	TotalAmount     decimal.Decimal
	PaymentDate     time.Time
	CreatedAt       time.Time
}

package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type EstimateRequest struct {
	UserID     int64   `json:"user_id"`
	IncomeIDs  []int64 `json:"income_ids,omitempty"`
	OutcomeIDs []int64 `json:"outcome_ids,omitempty"`
}

func (r *EstimateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EstimateResponse struct {
	UserID       int64  `json:"user_id"`
	PayrollTotal Totals `json:"payroll_total"`
}

type StageRequest struct {
	PaymentPeriodID int64 `json:"payment_period_id"`
}

func (r *StageRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PaymentPeriodID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "payment_period_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchFailureResponse struct {
	UserID int64  `json:"user_id"`
	Error  string `json:"error"`
}

type StageResponse struct {
	Staged       int                    `json:"staged"`
	GlobalTotal  decimal.Decimal        `json:"global_total"`
	BusinessUnit map[int64]UnitTotals   `json:"business_unit"`
	Failures     []BatchFailureResponse `json:"failures,omitempty"`
}

// AdjustmentLine is one income or outcome shown in a staged payroll view.
type AdjustmentLine struct {
	AdjustmentID int64           `json:"adjustment_id"`
	Name         string          `json:"name"`
	Counter      int             `json:"counter"`
	Amount       decimal.Decimal `json:"amount"`
}

func NewAdjustmentLine(a adjustment.UserAdjustment) AdjustmentLine {
	return AdjustmentLine{
		AdjustmentID: a.AdjustmentID,
		Name:         a.Name,
		Counter:      a.Counter,
		Amount:       a.Amount,
	}
}

// StagedPayrollResponse is the presentation shape of one draft: the stored
// totals plus the income and outcome line items resolved back to their
// catalog names.
type StagedPayrollResponse struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"user_id"`
	PaymentPeriod *string          `json:"payment_period,omitempty"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	Incomes       []AdjustmentLine `json:"incomes"`
	Outcomes      []AdjustmentLine `json:"outcomes"`
	PayrollTotal  Totals           `json:"payroll_total"`
}

// ListMeta is the paging bookkeeping for staged payroll listings. InRange is
// the index of the last row on the page, Showing how many rows the page
// actually holds once clamped to the total.
type ListMeta struct {
	Total   int64 `json:"total"`
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
	InRange int64 `json:"in_range"`
	Showing int64 `json:"showing"`
}

func NewListMeta(offset, limit int, total int64) ListMeta {
	meta := ListMeta{Total: total, Offset: offset, Limit: limit}

	end := int64(offset + limit)
	if end > total {
		meta.InRange = total
		meta.Showing = total - int64(offset)
	} else {
		meta.InRange = end
		meta.Showing = int64(limit)
	}
	if meta.Showing < 0 {
		meta.Showing = 0
	}

	return meta
}

type StagedListResponse struct {
	Payrolls []StagedPayrollResponse `json:"payrolls"`
	Meta     ListMeta                `json:"meta"`
}

type PushResponse struct {
	Promoted      int64 `json:"promoted"`
	TotalPayments int64 `json:"total_payments"`
}

package salary

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SetSalaryRequest struct {
	UserID int64  `json:"-"`
	Salary string `json:"salary"`
}

// Amount parses the salary string. Amounts arrive as JSON text so decimal
// precision survives the wire.
func (r *SetSalaryRequest) Amount() (decimal.Decimal, bool) {
	return validator.ParseAmount(r.Salary)
}

func (r *SetSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	amount, ok := r.Amount()
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be a decimal number"})
	} else if amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryResponse struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	Salary decimal.Decimal `json:"salary"`
}

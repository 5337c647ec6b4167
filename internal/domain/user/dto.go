package user

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateUserRequest struct {
	FirstName       string  `json:"first_name"`
	SecondName      *string `json:"second_name,omitempty"`
	LastName        string  `json:"last_name"`
	SecondLastName  *string `json:"second_last_name,omitempty"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Role            string  `json:"role,omitempty"`
	PaymentPeriodID int64   `json:"payment_period_id"`
	PayrollSchemaID int64   `json:"payroll_schema_id"`
	BusinessUnitID  int64   `json:"business_unit"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if r.Role != "" && !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleManager), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin, manager or employee"})
	}
	if r.PaymentPeriodID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "payment_period_id", Message: "is required"})
	}
	if r.PayrollSchemaID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "payroll_schema_id", Message: "is required"})
	}
	if r.BusinessUnitID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "business_unit", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID              int64   `json:"-"`
	FirstName       *string `json:"first_name,omitempty"`
	SecondName      *string `json:"second_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	SecondLastName  *string `json:"second_last_name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Role            *string `json:"role,omitempty"`
	OnLeave         *bool   `json:"on_leave,omitempty"`
	PaymentPeriodID *int64  `json:"payment_period_id,omitempty"`
	PayrollSchemaID *int64  `json:"payroll_schema_id,omitempty"`
	BusinessUnitID  *int64  `json:"business_unit,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{string(RoleAdmin), string(RoleManager), string(RoleEmployee)}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin, manager or employee"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Order string // "name" or "salary"
	By    string // "asc" or "desc"
	Units *UnitFilter
}

type UserResponse struct {
	ID            int64            `json:"id"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	PaymentPeriod *int64           `json:"payment_period,omitempty"`
	BusinessUnits []int64          `json:"business_units"`
	OnLeave       bool             `json:"on_leave"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
}

type UserDetailsResponse struct {
	ID             int64            `json:"id"`
	FirstName      string           `json:"first_name"`
	SecondName     *string          `json:"second_name,omitempty"`
	LastName       string           `json:"last_name"`
	SecondLastName *string          `json:"second_last_name,omitempty"`
	Email          string           `json:"email"`
	Role           string           `json:"role"`
	PaymentPeriod  *int64           `json:"payment_period,omitempty"`
	BusinessUnits  []int64          `json:"business_units"`
	OnLeave        bool             `json:"on_leave"`
	Active         bool             `json:"active"`
	Salary         *decimal.Decimal `json:"salary,omitempty"`
}

type PaymentPeriodResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

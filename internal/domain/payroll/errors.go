package payroll

import "errors"

var (
	ErrNoStagedPayrolls  = errors.New("no payrolls found")
	ErrMissingParameters = errors.New("missing one or more parameters: id, payroll_schema, payment_period, salary")
)

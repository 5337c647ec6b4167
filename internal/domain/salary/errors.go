package salary

import "errors"

var (
	ErrSalaryNotFound = errors.New("salary not found")
	ErrNegativeSalary = errors.New("salary must be non-negative")
)

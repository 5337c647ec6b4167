package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found, may be inactive or invalid user")
	ErrEmailExists  = errors.New("email already registered")
	ErrReservedUser = errors.New("reserved system account cannot be modified")
	ErrEmptyRoster  = errors.New("no active employees eligible for payroll")

	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)

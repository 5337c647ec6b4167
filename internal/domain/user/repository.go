package user

import "context"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	// GetDetails returns one user with the current salary joined, optionally
	// restricted to a business-unit filter.
	GetDetails(ctx context.Context, id int64, units *UnitFilter) (User, error)
	List(ctx context.Context, filter ListFilter) ([]User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	// Deactivate marks the user inactive; rows are never hard-deleted.
	Deactivate(ctx context.Context, id int64, units *UnitFilter) error
	SetSalaryRef(ctx context.Context, userID int64, salaryID int64) error

	// GetPayrollRoster returns all active users except the reserved system
	// account, with the current salary joined, ordered by id.
	GetPayrollRoster(ctx context.Context) ([]RosterEntry, error)
	ListPaymentPeriods(ctx context.Context) ([]PaymentPeriod, error)
}

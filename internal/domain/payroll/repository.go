package payroll

import "context"

type PayrollRepository interface {
	CreatePrePayment(ctx context.Context, draft PrePayment) error
	CreatePrePayrollAggregate(ctx context.Context, aggregate PrePayrollAggregate) error

	// ListPrePayments returns drafts ordered by user_id with the current
	// salary and payment period name joined.
	ListPrePayments(ctx context.Context, offset, limit int) ([]PrePayment, error)
	CountPrePayments(ctx context.Context) (int64, error)
	CountPayments(ctx context.Context) (int64, error)

	// PromoteAll copies every draft into payments in draft id order, then
	// clears both staging tables. Must run inside a transaction; it takes an
	// advisory lock so concurrent pushes serialize instead of double-paying.
	PromoteAll(ctx context.Context) (int64, error)
}

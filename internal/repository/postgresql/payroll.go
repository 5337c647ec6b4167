package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

// payrollPushLockID keys the advisory lock that serializes pushes. Any
// session promoting drafts takes it first, so two concurrent pushes cannot
// both copy the same rows.
const payrollPushLockID int64 = 774201

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) CreatePrePayment(ctx context.Context, draft payroll.PrePayment) error {
	q := GetQuerier(ctx, r.db)

	businessUnit, err := json.Marshal(draft.BusinessUnit)
	if err != nil {
		return fmt.Errorf("failed to encode business unit: %w", err)
	}
	incomeIDs, err := json.Marshal(idsOrEmpty(draft.IncomeIDs))
	if err != nil {
		return fmt.Errorf("failed to encode income ids: %w", err)
	}
	outcomeIDs, err := json.Marshal(idsOrEmpty(draft.OutcomeIDs))
	if err != nil {
		return fmt.Errorf("failed to encode outcome ids: %w", err)
	}

	query := `
		INSERT INTO pre_payments (
			user_id, salary_id, payment_period_id, payroll_schema_id,
			business_unit, incomes, outcomes,
			total_incomes, total_outcomes, total_amount, payment_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = q.Exec(ctx, query,
		draft.UserID, draft.SalaryID, draft.PaymentPeriodID, draft.PayrollSchemaID,
		businessUnit, incomeIDs, outcomeIDs,
		draft.TotalIncomes, draft.TotalOutcomes, draft.TotalAmount, draft.PaymentDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create pre payment: %w", err)
	}

	return nil
}

func (r *payrollRepository) CreatePrePayrollAggregate(ctx context.Context, aggregate payroll.PrePayrollAggregate) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pre_payrolls (payment_date, payment_period_id, business_unit_id, total_amount)
		VALUES ($1, $2, $3, $4)
	`

	_, err := q.Exec(ctx, query,
		aggregate.PaymentDate, aggregate.PaymentPeriodID, aggregate.BusinessUnitID, aggregate.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to create pre payroll aggregate: %w", err)
	}

	return nil
}

func (r *payrollRepository) ListPrePayments(ctx context.Context, offset, limit int) ([]payroll.PrePayment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pp.id, pp.user_id, pp.salary_id, pp.payment_period_id, pp.payroll_schema_id,
			   pp.business_unit, pp.incomes, pp.outcomes,
			   pp.total_incomes, pp.total_outcomes, pp.total_amount,
			   pp.payment_date, pp.created_at,
			   s.salary, per.name
		FROM pre_payments pp
		LEFT JOIN salaries s ON s.id = pp.salary_id
		LEFT JOIN payments_periods per ON per.id = pp.payment_period_id
		ORDER BY pp.user_id ASC
		OFFSET $1 LIMIT $2
	`

	rows, err := q.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pre payments: %w", err)
	}
	defer rows.Close()

	var drafts []payroll.PrePayment
	for rows.Next() {
		var d payroll.PrePayment
		var businessUnit, incomeIDs, outcomeIDs []byte

		err := rows.Scan(
			&d.ID, &d.UserID, &d.SalaryID, &d.PaymentPeriodID, &d.PayrollSchemaID,
			&businessUnit, &incomeIDs, &outcomeIDs,
			&d.TotalIncomes, &d.TotalOutcomes, &d.TotalAmount,
			&d.PaymentDate, &d.CreatedAt,
			&d.Salary, &d.PaymentPeriodName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pre payment: %w", err)
		}

		if err := json.Unmarshal(businessUnit, &d.BusinessUnit); err != nil {
			return nil, fmt.Errorf("failed to decode business unit: %w", err)
		}
		if err := json.Unmarshal(incomeIDs, &d.IncomeIDs); err != nil {
			return nil, fmt.Errorf("failed to decode income ids: %w", err)
		}
		if err := json.Unmarshal(outcomeIDs, &d.OutcomeIDs); err != nil {
			return nil, fmt.Errorf("failed to decode outcome ids: %w", err)
		}

		drafts = append(drafts, d)
	}

	return drafts, rows.Err()
}

func (r *payrollRepository) CountPrePayments(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM pre_payments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pre payments: %w", err)
	}

	return count, nil
}

func (r *payrollRepository) CountPayments(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return count, nil
}

func (r *payrollRepository) PromoteAll(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, payrollPushLockID); err != nil {
		return 0, fmt.Errorf("failed to acquire push lock: %w", err)
	}

	copyQuery := `
		INSERT INTO payments (
			user_id, salary_id, payment_period_id, payroll_schema_id,
			business_unit, incomes, outcomes,
			total_incomes, total_outcomes, total_amount, payment_date
		)
		SELECT user_id, salary_id, payment_period_id, payroll_schema_id,
			   business_unit, incomes, outcomes,
			   total_incomes, total_outcomes, total_amount, payment_date
		FROM pre_payments
		ORDER BY id ASC
	`

	tag, err := q.Exec(ctx, copyQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to copy drafts into payments: %w", err)
	}
	promoted := tag.RowsAffected()

	if _, err := q.Exec(ctx, `DELETE FROM pre_payments`); err != nil {
		return 0, fmt.Errorf("failed to clear pre payments: %w", err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM pre_payrolls`); err != nil {
		return 0, fmt.Errorf("failed to clear pre payrolls: %w", err)
	}

	return promoted, nil
}

func idsOrEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

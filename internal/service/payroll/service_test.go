package payroll

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
)

var testPayrollDB *database.DB

// payrollTestInit connects to the test database. Tests are skipped entirely
// when TEST_DATABASE_URL is not set; the schema is expected to be migrated.
func payrollTestInit(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	if testPayrollDB != nil {
		return
	}

	var err error
	testPayrollDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func newPayrollTestService() *Service {
	return NewService(
		testPayrollDB,
		postgresql.NewUserRepository(testPayrollDB),
		postgresql.NewSalaryRepository(testPayrollDB),
		postgresql.NewAdjustmentRepository(testPayrollDB),
		postgresql.NewPayrollRepository(testPayrollDB),
	)
}

func cleanPayrollTables(t *testing.T, ctx context.Context) {
	t.Helper()

	statements := []string{
		"DELETE FROM pre_payments",
		"DELETE FROM pre_payrolls",
		"DELETE FROM payments",
		"DELETE FROM incomes_users",
		"DELETE FROM outcomes_users",
		"DELETE FROM incomes",
		"DELETE FROM outcomes",
		"UPDATE users SET salary_id = NULL WHERE id <> 1",
		"DELETE FROM salaries",
		"DELETE FROM users WHERE id <> 1",
	}
	for _, statement := range statements {
		_, err := testPayrollDB.Exec(ctx, statement)
		require.NoError(t, err, statement)
	}
}

func seedPeriodAndSchema(t *testing.T, ctx context.Context) (periodID, schemaID int64) {
	t.Helper()

	err := testPayrollDB.QueryRow(ctx, `SELECT id FROM payments_periods ORDER BY id LIMIT 1`).Scan(&periodID)
	require.NoError(t, err)
	err = testPayrollDB.QueryRow(ctx, `SELECT id FROM payroll_schemas ORDER BY id LIMIT 1`).Scan(&schemaID)
	require.NoError(t, err)
	return periodID, schemaID
}

func seedEmployee(t *testing.T, ctx context.Context, email string, salary string, periodID, schemaID int64, unitIDs string) int64 {
	t.Helper()

	var userID int64
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, role, active, payment_period_id, payroll_schema_id, business_unit)
		VALUES ('Test', 'Employee', $1, 'employee', true, $2, $3, $4)
		RETURNING id
	`, email, periodID, schemaID, fmt.Sprintf(`{"business_unit_ids": %s}`, unitIDs)).Scan(&userID)
	require.NoError(t, err)

	var salaryID int64
	err = testPayrollDB.QueryRow(ctx, `
		INSERT INTO salaries (user_id, salary) VALUES ($1, $2) RETURNING id
	`, userID, salary).Scan(&salaryID)
	require.NoError(t, err)

	_, err = testPayrollDB.Exec(ctx, `UPDATE users SET salary_id = $1 WHERE id = $2`, salaryID, userID)
	require.NoError(t, err)

	return userID
}

func seedIncome(t *testing.T, ctx context.Context, userID int64, name string, counter int, amount string) int64 {
	t.Helper()

	var incomeID int64
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO incomes (name, automatic, active) VALUES ($1, false, true) RETURNING id
	`, name).Scan(&incomeID)
	require.NoError(t, err)

	_, err = testPayrollDB.Exec(ctx, `
		INSERT INTO incomes_users (user_id, income_id, counter, amount) VALUES ($1, $2, $3, $4)
	`, userID, incomeID, counter, amount)
	require.NoError(t, err)

	return incomeID
}

func seedOutcome(t *testing.T, ctx context.Context, userID int64, name string, counter int, amount string) int64 {
	t.Helper()

	var outcomeID int64
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO outcomes (name, automatic, active) VALUES ($1, false, true) RETURNING id
	`, name).Scan(&outcomeID)
	require.NoError(t, err)

	_, err = testPayrollDB.Exec(ctx, `
		INSERT INTO outcomes_users (user_id, outcome_id, counter, amount) VALUES ($1, $2, $3, $4)
	`, userID, outcomeID, counter, amount)
	require.NoError(t, err)

	return outcomeID
}

func TestStageAndPush(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	cleanPayrollTables(t, ctx)

	periodID, schemaID := seedPeriodAndSchema(t, ctx)

	employeeA := seedEmployee(t, ctx, "a@example.com", "1000", periodID, schemaID, "[5]")
	employeeB := seedEmployee(t, ctx, "b@example.com", "2000", periodID, schemaID, "[5, 9]")

	seedIncome(t, ctx, employeeA, "Bonus", 1, "100")
	seedIncome(t, ctx, employeeA, "Dormant bonus", 0, "900")
	seedOutcome(t, ctx, employeeB, "Tax", 1, "50")

	svc := newPayrollTestService()

	staged, err := svc.Stage(ctx, payroll.StageRequest{PaymentPeriodID: periodID})
	require.NoError(t, err)

	assert.Equal(t, 2, staged.Staged)
	assert.Empty(t, staged.Failures)
	assert.True(t, staged.GlobalTotal.Equal(dec("3050")), staged.GlobalTotal.String())

	// Employee B belongs to units 5 and 9 but only unit 5, the first one,
	// receives the attribution.
	require.Contains(t, staged.BusinessUnit, int64(5))
	assert.NotContains(t, staged.BusinessUnit, int64(9))
	assert.True(t, staged.BusinessUnit[5].PayrollTotal.Equal(dec("3050")))
	assert.True(t, staged.BusinessUnit[5].SalariesTotal.Equal(dec("3000")))

	// One global aggregate row plus one per business unit.
	var aggregateRows, globalRows int64
	require.NoError(t, testPayrollDB.QueryRow(ctx, `SELECT COUNT(*) FROM pre_payrolls`).Scan(&aggregateRows))
	require.NoError(t, testPayrollDB.QueryRow(ctx, `SELECT COUNT(*) FROM pre_payrolls WHERE business_unit_id IS NULL`).Scan(&globalRows))
	assert.Equal(t, int64(2), aggregateRows)
	assert.Equal(t, int64(1), globalRows)

	listing, err := svc.Staged(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, listing.Payrolls, 2)
	assert.Equal(t, int64(2), listing.Meta.Total)
	assert.Equal(t, int64(2), listing.Meta.Showing)

	first := listing.Payrolls[0]
	assert.Equal(t, employeeA, first.UserID)
	require.Len(t, first.Incomes, 1)
	assert.Equal(t, "Bonus", first.Incomes[0].Name)

	pushed, err := svc.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pushed.Promoted)
	assert.Equal(t, int64(2), pushed.TotalPayments)

	// Drafts are gone after the push; listing them reports not found.
	_, err = svc.Staged(ctx, 0, 20)
	assert.ErrorIs(t, err, payroll.ErrNoStagedPayrolls)

	// Pushing again is a no-op.
	pushed, err = svc.Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pushed.Promoted)
	assert.Equal(t, int64(2), pushed.TotalPayments)
}

func TestStageReportsBrokenEntries(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	cleanPayrollTables(t, ctx)

	periodID, schemaID := seedPeriodAndSchema(t, ctx)

	seedEmployee(t, ctx, "ok@example.com", "1000", periodID, schemaID, "[5]")

	// Employee without a salary row or business unit assignment.
	var brokenID int64
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, role, active, payment_period_id, payroll_schema_id)
		VALUES ('Broken', 'Employee', 'broken@example.com', 'employee', true, $1, $2)
		RETURNING id
	`, periodID, schemaID).Scan(&brokenID)
	require.NoError(t, err)

	svc := newPayrollTestService()

	staged, err := svc.Stage(ctx, payroll.StageRequest{PaymentPeriodID: periodID})
	require.NoError(t, err)

	assert.Equal(t, 1, staged.Staged)
	require.Len(t, staged.Failures, 1)
	assert.Equal(t, brokenID, staged.Failures[0].UserID)

	// Only the healthy employee was drafted.
	var draftCount int64
	require.NoError(t, testPayrollDB.QueryRow(ctx, `SELECT COUNT(*) FROM pre_payments`).Scan(&draftCount))
	assert.Equal(t, int64(1), draftCount)
}

func TestEstimate(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	cleanPayrollTables(t, ctx)

	periodID, schemaID := seedPeriodAndSchema(t, ctx)
	employeeID := seedEmployee(t, ctx, "estimate@example.com", "1500", periodID, schemaID, "[3]")
	bonusID := seedIncome(t, ctx, employeeID, "Bonus", 1, "250")
	seedIncome(t, ctx, employeeID, "Commission", 1, "100")
	seedOutcome(t, ctx, employeeID, "Tax", 1, "75")

	svc := newPayrollTestService()

	estimate, err := svc.Estimate(ctx, payroll.EstimateRequest{UserID: employeeID})
	require.NoError(t, err)
	assert.True(t, estimate.PayrollTotal.PayrollTotal.Equal(dec("1775")), estimate.PayrollTotal.PayrollTotal.String())

	// Narrowed to a single income the commission drops out.
	estimate, err = svc.Estimate(ctx, payroll.EstimateRequest{
		UserID:    employeeID,
		IncomeIDs: []int64{bonusID},
	})
	require.NoError(t, err)
	assert.True(t, estimate.PayrollTotal.PayrollTotal.Equal(dec("1675")), estimate.PayrollTotal.PayrollTotal.String())
}

package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func income(userID, adjustmentID int64, counter int, amount string) adjustment.UserAdjustment {
	return adjustment.UserAdjustment{
		UserID:       userID,
		AdjustmentID: adjustmentID,
		Counter:      counter,
		Amount:       dec(amount),
	}
}

func TestCalculateTotals(t *testing.T) {
	t.Run("salary plus incomes minus outcomes", func(t *testing.T) {
		incomes := []adjustment.UserAdjustment{
			income(7, 1, 1, "150"),
			income(7, 2, 2, "50"),
		}
		outcomes := []adjustment.UserAdjustment{
			income(7, 1, 1, "75"),
		}

		totals := CalculateTotals(dec("1000"), incomes, outcomes)

		assert.True(t, totals.IncomesTotal.Equal(dec("200")), totals.IncomesTotal.String())
		assert.True(t, totals.OutcomesTotal.Equal(dec("75")), totals.OutcomesTotal.String())
		assert.True(t, totals.PayrollTotal.Equal(dec("1125")), totals.PayrollTotal.String())
	})

	t.Run("rows with zero counter or zero amount are skipped", func(t *testing.T) {
		incomes := []adjustment.UserAdjustment{
			income(7, 1, 0, "150"), // dormant: counter unset
			income(7, 2, 3, "0"),   // dormant: amount unset
			income(7, 3, 1, "100"),
		}
		outcomes := []adjustment.UserAdjustment{
			income(7, 1, 0, "500"),
		}

		totals := CalculateTotals(dec("1000"), incomes, outcomes)

		assert.True(t, totals.IncomesTotal.Equal(dec("100")))
		assert.True(t, totals.OutcomesTotal.IsZero())
		assert.True(t, totals.PayrollTotal.Equal(dec("1100")))
	})

	t.Run("no adjustments means payroll equals salary", func(t *testing.T) {
		totals := CalculateTotals(dec("2500.50"), nil, nil)

		assert.True(t, totals.PayrollTotal.Equal(dec("2500.50")))
		assert.True(t, totals.IncomesTotal.IsZero())
		assert.True(t, totals.OutcomesTotal.IsZero())
	})

	t.Run("mixed counted and dormant rows", func(t *testing.T) {
		incomes := []adjustment.UserAdjustment{
			income(7, 1, 1, "150"),
			income(7, 2, 0, "500"),
		}
		outcomes := []adjustment.UserAdjustment{
			income(7, 1, 1, "50"),
		}

		totals := CalculateTotals(dec("1000"), incomes, outcomes)

		assert.True(t, totals.PayrollTotal.Equal(dec("1100")))
		assert.True(t, totals.IncomesTotal.Equal(dec("150")))
		assert.True(t, totals.OutcomesTotal.Equal(dec("50")))
	})

	t.Run("outcomes can push the total negative", func(t *testing.T) {
		outcomes := []adjustment.UserAdjustment{
			income(7, 1, 1, "1500"),
		}

		totals := CalculateTotals(dec("1000"), nil, outcomes)

		assert.True(t, totals.PayrollTotal.Equal(dec("-500")))
	})
}

func rosterEntry(id, salaryID, periodID, schemaID int64, salary string, unitIDs ...int64) user.RosterEntry {
	amount := dec(salary)
	return user.RosterEntry{
		ID:              id,
		SalaryID:        &salaryID,
		PaymentPeriodID: &periodID,
		PayrollSchemaID: &schemaID,
		BusinessUnit:    user.BusinessUnit{BusinessUnitIDs: unitIDs},
		Salary:          &amount,
	}
}

func TestCalculateBatch(t *testing.T) {
	t.Run("global total is the sum of employee totals", func(t *testing.T) {
		roster := []user.RosterEntry{
			rosterEntry(2, 10, 1, 1, "1000", 5),
			rosterEntry(3, 11, 1, 1, "2000", 5),
		}
		incomes := []adjustment.UserAdjustment{
			income(2, 1, 1, "100"),
		}
		outcomes := []adjustment.UserAdjustment{
			income(3, 1, 2, "50"),
		}

		employees, aggregate, failures := CalculateBatch(roster, incomes, outcomes)

		require.Len(t, employees, 2)
		assert.Empty(t, failures)
		assert.True(t, aggregate.Global.Equal(dec("3050")), aggregate.Global.String())

		unit := aggregate.BusinessUnits[5]
		assert.True(t, unit.PayrollTotal.Equal(dec("3050")))
		assert.True(t, unit.SalariesTotal.Equal(dec("3000")))
		assert.True(t, unit.IncomesTotal.Equal(dec("100")))
		assert.True(t, unit.OutcomesTotal.Equal(dec("50")))
	})

	t.Run("multi unit employees are attributed to the first unit whole", func(t *testing.T) {
		roster := []user.RosterEntry{
			rosterEntry(2, 10, 1, 1, "1000", 5, 9),
			rosterEntry(3, 11, 1, 1, "500", 9),
		}

		_, aggregate, failures := CalculateBatch(roster, nil, nil)

		assert.Empty(t, failures)
		require.Contains(t, aggregate.BusinessUnits, int64(5))
		require.Contains(t, aggregate.BusinessUnits, int64(9))
		assert.True(t, aggregate.BusinessUnits[5].PayrollTotal.Equal(dec("1000")))
		assert.True(t, aggregate.BusinessUnits[9].PayrollTotal.Equal(dec("500")))

		// Unit totals sum to the global total, nothing double counted.
		assert.True(t, aggregate.Global.Equal(dec("1500")))
	})

	t.Run("entries with missing references fail without aborting the batch", func(t *testing.T) {
		broken := rosterEntry(4, 12, 1, 1, "800", 5)
		broken.SalaryID = nil

		noUnit := rosterEntry(5, 13, 1, 1, "900")

		roster := []user.RosterEntry{
			rosterEntry(2, 10, 1, 1, "1000", 5),
			broken,
			noUnit,
		}

		employees, aggregate, failures := CalculateBatch(roster, nil, nil)

		require.Len(t, employees, 1)
		assert.Equal(t, int64(2), employees[0].UserID)
		require.Len(t, failures, 2)
		assert.Equal(t, int64(4), failures[0].UserID)
		assert.ErrorIs(t, failures[0].Err, payroll.ErrMissingParameters)
		assert.Equal(t, int64(5), failures[1].UserID)

		// Failed entries contribute nothing.
		assert.True(t, aggregate.Global.Equal(dec("1000")))
	})

	t.Run("only counted adjustment ids are carried into the draft", func(t *testing.T) {
		roster := []user.RosterEntry{
			rosterEntry(2, 10, 1, 1, "1000", 5),
		}
		incomes := []adjustment.UserAdjustment{
			income(2, 1, 1, "100"),
			income(2, 2, 0, "900"), // dormant
		}

		employees, aggregate, _ := CalculateBatch(roster, incomes, nil)

		require.Len(t, employees, 1)
		assert.Equal(t, []int64{1}, employees[0].IncomeIDs)
		assert.Empty(t, employees[0].OutcomeIDs)
		assert.True(t, aggregate.Global.Equal(dec("1100")))
	})

	t.Run("single employee with no adjustments", func(t *testing.T) {
		roster := []user.RosterEntry{
			rosterEntry(2, 10, 1, 1, "1000", 1),
		}

		employees, aggregate, failures := CalculateBatch(roster, nil, nil)

		require.Len(t, employees, 1)
		assert.Empty(t, failures)
		assert.True(t, aggregate.Global.Equal(dec("1000")))

		unit := aggregate.BusinessUnits[1]
		assert.True(t, unit.PayrollTotal.Equal(dec("1000")))
		assert.True(t, unit.SalariesTotal.Equal(dec("1000")))
		assert.True(t, unit.IncomesTotal.IsZero())
		assert.True(t, unit.OutcomesTotal.IsZero())
	})

	t.Run("single and batch paths agree", func(t *testing.T) {
		incomes := []adjustment.UserAdjustment{
			income(2, 1, 1, "150"),
			income(2, 2, 0, "500"),
		}
		outcomes := []adjustment.UserAdjustment{
			income(2, 1, 1, "50"),
		}
		roster := []user.RosterEntry{
			rosterEntry(2, 10, 1, 1, "1000", 1),
		}

		single := CalculateTotals(dec("1000"), incomes, outcomes)
		employees, _, _ := CalculateBatch(roster, incomes, outcomes)

		require.Len(t, employees, 1)
		assert.True(t, employees[0].Totals.PayrollTotal.Equal(single.PayrollTotal))
		assert.True(t, employees[0].Totals.IncomesTotal.Equal(single.IncomesTotal))
		assert.True(t, employees[0].Totals.OutcomesTotal.Equal(single.OutcomesTotal))
	})

	t.Run("empty roster yields empty aggregate", func(t *testing.T) {
		employees, aggregate, failures := CalculateBatch(nil, nil, nil)

		assert.Empty(t, employees)
		assert.Empty(t, failures)
		assert.True(t, aggregate.Global.IsZero())
		assert.Empty(t, aggregate.BusinessUnits)
	})
}

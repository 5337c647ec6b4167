package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

// CalculateTotals computes one employee's payroll from a salary and their
// adjustment rows. Only counted rows participate; dormant rows (zero counter
// or zero amount) are skipped on both sides.
func CalculateTotals(salary decimal.Decimal, incomes, outcomes []adjustment.UserAdjustment) payroll.Totals {
	totals := payroll.Totals{PayrollTotal: salary}

	for _, income := range incomes {
		if !income.Counted() {
			continue
		}
		totals.IncomesTotal = totals.IncomesTotal.Add(income.Amount)
		totals.PayrollTotal = totals.PayrollTotal.Add(income.Amount)
	}

	for _, outcome := range outcomes {
		if !outcome.Counted() {
			continue
		}
		totals.OutcomesTotal = totals.OutcomesTotal.Add(outcome.Amount)
		totals.PayrollTotal = totals.PayrollTotal.Sub(outcome.Amount)
	}

	return totals
}

// CalculateBatch folds a whole roster into per-employee payrolls and one
// aggregate. An entry missing its salary, payment period, payroll schema or
// business unit becomes a failure and the fold moves on; one bad row never
// aborts the run. Employees in several business units are attributed to the
// first unit in their set, whole, never split.
func CalculateBatch(roster []user.RosterEntry, incomes, outcomes []adjustment.UserAdjustment) ([]payroll.EmployeePayroll, payroll.Aggregate, []payroll.BatchFailure) {
	incomesByUser := groupByUser(incomes)
	outcomesByUser := groupByUser(outcomes)

	aggregate := payroll.Aggregate{
		Global:        decimal.Zero,
		BusinessUnits: make(map[int64]payroll.UnitTotals),
	}

	var employees []payroll.EmployeePayroll
	var failures []payroll.BatchFailure

	for _, entry := range roster {
		unitID, hasUnit := entry.BusinessUnit.First()
		if entry.SalaryID == nil || entry.PaymentPeriodID == nil || entry.PayrollSchemaID == nil ||
			entry.Salary == nil || !hasUnit {
			failures = append(failures, payroll.BatchFailure{UserID: entry.ID, Err: payroll.ErrMissingParameters})
			continue
		}

		userIncomes := incomesByUser[entry.ID]
		userOutcomes := outcomesByUser[entry.ID]
		totals := CalculateTotals(*entry.Salary, userIncomes, userOutcomes)

		employees = append(employees, payroll.EmployeePayroll{
			UserID:          entry.ID,
			SalaryID:        *entry.SalaryID,
			PaymentPeriodID: *entry.PaymentPeriodID,
			PayrollSchemaID: *entry.PayrollSchemaID,
			BusinessUnit:    entry.BusinessUnit,
			IncomeIDs:       countedIDs(userIncomes),
			OutcomeIDs:      countedIDs(userOutcomes),
			Totals:          totals,
		})

		aggregate.Global = aggregate.Global.Add(totals.PayrollTotal)

		unit := aggregate.BusinessUnits[unitID]
		unit.PayrollTotal = unit.PayrollTotal.Add(totals.PayrollTotal)
		unit.SalariesTotal = unit.SalariesTotal.Add(*entry.Salary)
		unit.IncomesTotal = unit.IncomesTotal.Add(totals.IncomesTotal)
		unit.OutcomesTotal = unit.OutcomesTotal.Add(totals.OutcomesTotal)
		aggregate.BusinessUnits[unitID] = unit
	}

	return employees, aggregate, failures
}

func groupByUser(rows []adjustment.UserAdjustment) map[int64][]adjustment.UserAdjustment {
	grouped := make(map[int64][]adjustment.UserAdjustment)
	for _, row := range rows {
		grouped[row.UserID] = append(grouped[row.UserID], row)
	}
	return grouped
}

func countedIDs(rows []adjustment.UserAdjustment) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		if row.Counted() {
			ids = append(ids, row.AdjustmentID)
		}
	}
	return ids
}

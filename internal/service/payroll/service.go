package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
)

type Service struct {
	db             *database.DB
	userRepo       user.UserRepository
	salaryRepo     salary.SalaryRepository
	adjustmentRepo adjustment.AdjustmentRepository
	payrollRepo    payroll.PayrollRepository
}

func NewService(
	db *database.DB,
	userRepo user.UserRepository,
	salaryRepo salary.SalaryRepository,
	adjustmentRepo adjustment.AdjustmentRepository,
	payrollRepo payroll.PayrollRepository,
) *Service {
	return &Service{
		db:             db,
		userRepo:       userRepo,
		salaryRepo:     salaryRepo,
		adjustmentRepo: adjustmentRepo,
		payrollRepo:    payrollRepo,
	}
}

// Estimate calculates one employee's payroll without staging anything.
// Income and outcome id filters narrow the calculation to a subset of the
// employee's adjustments; empty filters mean all of them.
func (s *Service) Estimate(ctx context.Context, req payroll.EstimateRequest) (payroll.EstimateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EstimateResponse{}, err
	}
	if req.UserID == user.ReservedUserID {
		return payroll.EstimateResponse{}, user.ErrUserNotFound
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return payroll.EstimateResponse{}, err
	}

	current, err := s.salaryRepo.GetCurrentByUserID(ctx, req.UserID)
	if err != nil {
		return payroll.EstimateResponse{}, err
	}

	incomes, err := s.adjustmentRepo.ListForUser(ctx, adjustment.KindIncome, req.UserID, req.IncomeIDs)
	if err != nil {
		return payroll.EstimateResponse{}, err
	}
	outcomes, err := s.adjustmentRepo.ListForUser(ctx, adjustment.KindOutcome, req.UserID, req.OutcomeIDs)
	if err != nil {
		return payroll.EstimateResponse{}, err
	}

	return payroll.EstimateResponse{
		UserID:       req.UserID,
		PayrollTotal: CalculateTotals(current.Salary, incomes, outcomes),
	}, nil
}

// Stage runs payroll for the whole roster and writes the drafts: one
// pre_payments row per employee, one global pre_payrolls row and one per
// business unit. All rows land in one transaction; a failed insert leaves
// the staging tables untouched.
func (s *Service) Stage(ctx context.Context, req payroll.StageRequest) (payroll.StageResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.StageResponse{}, err
	}

	roster, err := s.userRepo.GetPayrollRoster(ctx)
	if err != nil {
		return payroll.StageResponse{}, err
	}
	if len(roster) == 0 {
		return payroll.StageResponse{}, user.ErrEmptyRoster
	}

	userIDs := make([]int64, 0, len(roster))
	for _, entry := range roster {
		userIDs = append(userIDs, entry.ID)
	}

	incomes, err := s.adjustmentRepo.ListByUserIDs(ctx, adjustment.KindIncome, userIDs)
	if err != nil {
		return payroll.StageResponse{}, err
	}
	outcomes, err := s.adjustmentRepo.ListByUserIDs(ctx, adjustment.KindOutcome, userIDs)
	if err != nil {
		return payroll.StageResponse{}, err
	}

	employees, aggregate, failures := CalculateBatch(roster, incomes, outcomes)

	paymentDate := time.Now()
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		for _, employee := range employees {
			draft := payroll.PrePayment{
				UserID:          employee.UserID,
				SalaryID:        employee.SalaryID,
				PaymentPeriodID: employee.PaymentPeriodID,
				PayrollSchemaID: employee.PayrollSchemaID,
				BusinessUnit:    employee.BusinessUnit,
				IncomeIDs:       employee.IncomeIDs,
				OutcomeIDs:      employee.OutcomeIDs,
				TotalIncomes:    employee.Totals.IncomesTotal,
				TotalOutcomes:   employee.Totals.OutcomesTotal,
				TotalAmount:     employee.Totals.PayrollTotal,
				PaymentDate:     paymentDate,
			}
			if err := s.payrollRepo.CreatePrePayment(txCtx, draft); err != nil {
				return err
			}
		}

		// Global aggregate first, business units after. The global row is
		// the one with no business unit attached.
		global := payroll.PrePayrollAggregate{
			PaymentDate:     paymentDate,
			PaymentPeriodID: req.PaymentPeriodID,
			TotalAmount:     aggregate.Global,
		}
		if err := s.payrollRepo.CreatePrePayrollAggregate(txCtx, global); err != nil {
			return err
		}

		for unitID, totals := range aggregate.BusinessUnits {
			unitRow := payroll.PrePayrollAggregate{
				PaymentDate:     paymentDate,
				PaymentPeriodID: req.PaymentPeriodID,
				BusinessUnitID:  &unitID,
				TotalAmount:     totals.PayrollTotal,
			}
			if err := s.payrollRepo.CreatePrePayrollAggregate(txCtx, unitRow); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return payroll.StageResponse{}, err
	}

	failureResponses := make([]payroll.BatchFailureResponse, 0, len(failures))
	for _, failure := range failures {
		failureResponses = append(failureResponses, payroll.BatchFailureResponse{
			UserID: failure.UserID,
			Error:  failure.Err.Error(),
		})
	}

	slog.Info("payroll staged",
		"staged", len(employees),
		"failures", len(failures),
		"global_total", aggregate.Global,
		"payment_period_id", req.PaymentPeriodID,
	)

	return payroll.StageResponse{
		Staged:       len(employees),
		GlobalTotal:  aggregate.Global,
		BusinessUnit: aggregate.BusinessUnits,
		Failures:     failureResponses,
	}, nil
}

// Staged lists the current drafts with their income and outcome line items
// resolved back to catalog names.
func (s *Service) Staged(ctx context.Context, offset, limit int) (payroll.StagedListResponse, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	total, err := s.payrollRepo.CountPrePayments(ctx)
	if err != nil {
		return payroll.StagedListResponse{}, err
	}
	if total == 0 {
		return payroll.StagedListResponse{}, payroll.ErrNoStagedPayrolls
	}

	drafts, err := s.payrollRepo.ListPrePayments(ctx, offset, limit)
	if err != nil {
		return payroll.StagedListResponse{}, err
	}

	payrolls := make([]payroll.StagedPayrollResponse, 0, len(drafts))
	for _, draft := range drafts {
		incomes, err := s.adjustmentLines(ctx, adjustment.KindIncome, draft.UserID, draft.IncomeIDs)
		if err != nil {
			return payroll.StagedListResponse{}, err
		}
		outcomes, err := s.adjustmentLines(ctx, adjustment.KindOutcome, draft.UserID, draft.OutcomeIDs)
		if err != nil {
			return payroll.StagedListResponse{}, err
		}

		payrolls = append(payrolls, payroll.StagedPayrollResponse{
			ID:            draft.ID,
			UserID:        draft.UserID,
			PaymentPeriod: draft.PaymentPeriodName,
			Salary:        draft.Salary,
			Incomes:       incomes,
			Outcomes:      outcomes,
			PayrollTotal: payroll.Totals{
				PayrollTotal:  draft.TotalAmount,
				IncomesTotal:  draft.TotalIncomes,
				OutcomesTotal: draft.TotalOutcomes,
			},
		})
	}

	return payroll.StagedListResponse{
		Payrolls: payrolls,
		Meta:     payroll.NewListMeta(offset, limit, total),
	}, nil
}

func (s *Service) adjustmentLines(ctx context.Context, kind adjustment.Kind, userID int64, ids []int64) ([]payroll.AdjustmentLine, error) {
	lines := make([]payroll.AdjustmentLine, 0, len(ids))
	if len(ids) == 0 {
		return lines, nil
	}

	rows, err := s.adjustmentRepo.ListForUser(ctx, kind, userID, ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		lines = append(lines, payroll.NewAdjustmentLine(row))
	}
	return lines, nil
}

// Push promotes every draft into the payments ledger and clears the staging
// tables, all in one transaction. Pushing with nothing staged is a no-op.
func (s *Service) Push(ctx context.Context) (payroll.PushResponse, error) {
	var promoted int64
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		promoted, err = s.payrollRepo.PromoteAll(txCtx)
		return err
	})
	if err != nil {
		return payroll.PushResponse{}, err
	}

	totalPayments, err := s.payrollRepo.CountPayments(ctx)
	if err != nil {
		return payroll.PushResponse{}, err
	}

	slog.Info("payroll pushed", "promoted", promoted, "total_payments", totalPayments)

	return payroll.PushResponse{Promoted: promoted, TotalPayments: totalPayments}, nil
}

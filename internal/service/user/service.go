package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
)

type Service struct {
	db         *database.DB
	userRepo   user.UserRepository
	salaryRepo salary.SalaryRepository
}

func NewService(db *database.DB, userRepo user.UserRepository, salaryRepo salary.SalaryRepository) *Service {
	return &Service{
		db:         db,
		userRepo:   userRepo,
		salaryRepo: salaryRepo,
	}
}

func (s *Service) List(ctx context.Context, filter user.ListFilter) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, user.UserResponse{
			ID:            u.ID,
			FirstName:     u.FirstName,
			LastName:      u.LastName,
			PaymentPeriod: u.PaymentPeriodID,
			BusinessUnits: u.BusinessUnit.BusinessUnitIDs,
			OnLeave:       u.OnLeave,
			Salary:        u.Salary,
		})
	}

	return result, nil
}

func (s *Service) Details(ctx context.Context, id int64, units *user.UnitFilter) (user.UserDetailsResponse, error) {
	if id == user.ReservedUserID {
		return user.UserDetailsResponse{}, user.ErrUserNotFound
	}

	u, err := s.userRepo.GetDetails(ctx, id, units)
	if err != nil {
		return user.UserDetailsResponse{}, err
	}

	return user.UserDetailsResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		SecondName:     u.SecondName,
		LastName:       u.LastName,
		SecondLastName: u.SecondLastName,
		Email:          u.Email,
		Role:           string(u.Role),
		PaymentPeriod:  u.PaymentPeriodID,
		BusinessUnits:  u.BusinessUnit.BusinessUnitIDs,
		OnLeave:        u.OnLeave,
		Active:         u.Active,
		Salary:         u.Salary,
	}, nil
}

func (s *Service) Create(ctx context.Context, req user.CreateUserRequest) (user.UserDetailsResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserDetailsResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserDetailsResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashString := string(hash)

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	newUser := user.User{
		FirstName:       req.FirstName,
		SecondName:      req.SecondName,
		LastName:        req.LastName,
		SecondLastName:  req.SecondLastName,
		Email:           req.Email,
		PasswordHash:    &hashString,
		Role:            role,
		PaymentPeriodID: &req.PaymentPeriodID,
		PayrollSchemaID: &req.PayrollSchemaID,
		BusinessUnit:    user.BusinessUnit{BusinessUnitIDs: []int64{req.BusinessUnitID}},
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return user.UserDetailsResponse{}, err
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role)

	return user.UserDetailsResponse{
		ID:             created.ID,
		FirstName:      created.FirstName,
		SecondName:     created.SecondName,
		LastName:       created.LastName,
		SecondLastName: created.SecondLastName,
		Email:          created.Email,
		Role:           string(created.Role),
		PaymentPeriod:  created.PaymentPeriodID,
		BusinessUnits:  created.BusinessUnit.BusinessUnitIDs,
		OnLeave:        created.OnLeave,
		Active:         true,
	}, nil
}

func (s *Service) Update(ctx context.Context, req user.UpdateUserRequest) error {
	if req.ID == user.ReservedUserID {
		return user.ErrReservedUser
	}
	if err := req.Validate(); err != nil {
		return err
	}

	return s.userRepo.Update(ctx, req)
}

func (s *Service) Deactivate(ctx context.Context, id int64, units *user.UnitFilter) error {
	if id == user.ReservedUserID {
		return user.ErrReservedUser
	}

	return s.userRepo.Deactivate(ctx, id, units)
}

// SetSalary assigns a new salary to the user: the current salary row is
// soft-deleted, a fresh row inserted and the user's salary reference moved,
// all in one transaction so a failure leaves the old salary in place.
func (s *Service) SetSalary(ctx context.Context, req salary.SetSalaryRequest) (salary.SalaryResponse, error) {
	if req.UserID == user.ReservedUserID {
		return salary.SalaryResponse{}, user.ErrReservedUser
	}
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}
	amount, _ := req.Amount()

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return salary.SalaryResponse{}, err
	}

	var created salary.Salary
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.salaryRepo.SoftDeleteCurrent(txCtx, req.UserID); err != nil {
			if !errors.Is(err, salary.ErrSalaryNotFound) {
				return err
			}
		}

		var err error
		created, err = s.salaryRepo.Create(txCtx, req.UserID, amount)
		if err != nil {
			return err
		}

		return s.userRepo.SetSalaryRef(txCtx, req.UserID, created.ID)
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	slog.Info("salary updated", "user_id", req.UserID, "salary_id", created.ID)

	return salary.SalaryResponse{
		ID:     created.ID,
		UserID: created.UserID,
		Salary: created.Salary,
	}, nil
}

func (s *Service) ListPaymentPeriods(ctx context.Context) ([]user.PaymentPeriodResponse, error) {
	periods, err := s.userRepo.ListPaymentPeriods(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]user.PaymentPeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, user.PaymentPeriodResponse{ID: p.ID, Name: p.Name})
	}

	return result, nil
}

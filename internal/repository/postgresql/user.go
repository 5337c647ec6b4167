package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `u.id, u.first_name, u.second_name, u.last_name, u.second_last_name,
	   u.email, u.password_hash, u.role, u.active, u.on_leave,
	   u.salary_id, u.payment_period_id, u.payroll_schema_id, u.business_unit,
	   u.created_at, u.updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var businessUnit []byte

	err := row.Scan(
		&u.ID, &u.FirstName, &u.SecondName, &u.LastName, &u.SecondLastName,
		&u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.OnLeave,
		&u.SalaryID, &u.PaymentPeriodID, &u.PayrollSchemaID, &businessUnit,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}

	if len(businessUnit) > 0 {
		if err := json.Unmarshal(businessUnit, &u.BusinessUnit); err != nil {
			return user.User{}, fmt.Errorf("failed to decode business unit: %w", err)
		}
	}

	return u, nil
}

// unitFilterCondition appends a business-unit predicate to args and returns
// the SQL fragment. Member mode matches the unit anywhere in the user's set,
// exact mode requires the set to be exactly that one unit.
func unitFilterCondition(filter *user.UnitFilter, args *[]any) string {
	if filter == nil || len(filter.UnitIDs) == 0 {
		return ""
	}

	conditions := make([]string, 0, len(filter.UnitIDs))
	for _, unitID := range filter.UnitIDs {
		*args = append(*args, fmt.Sprintf("[%d]", unitID))
		placeholder := fmt.Sprintf("$%d", len(*args))

		if filter.Mode == user.UnitFilterExact {
			conditions = append(conditions, fmt.Sprintf("u.business_unit -> 'business_unit_ids' = %s::jsonb", placeholder))
		} else {
			conditions = append(conditions, fmt.Sprintf("u.business_unit -> 'business_unit_ids' @> %s::jsonb", placeholder))
		}
	}

	return "(" + strings.Join(conditions, " OR ") + ")"
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.email = $1 AND u.active = true
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		WHERE u.id = $1 AND u.active = true
	`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

func (r *userRepository) GetDetails(ctx context.Context, id int64, units *user.UnitFilter) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	args := []any{id}
	query := `
		SELECT ` + userColumns + `, s.salary
		FROM users u
		LEFT JOIN salaries s ON s.id = u.salary_id AND s.deleted_at IS NULL
		WHERE u.id = $1 AND u.active = true AND u.id <> ` + fmt.Sprint(user.ReservedUserID)

	if cond := unitFilterCondition(units, &args); cond != "" {
		query += " AND " + cond
	}

	var u user.User
	var businessUnit []byte

	err := q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.FirstName, &u.SecondName, &u.LastName, &u.SecondLastName,
		&u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.OnLeave,
		&u.SalaryID, &u.PaymentPeriodID, &u.PayrollSchemaID, &businessUnit,
		&u.CreatedAt, &u.UpdatedAt, &u.Salary,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user details: %w", err)
	}

	if len(businessUnit) > 0 {
		if err := json.Unmarshal(businessUnit, &u.BusinessUnit); err != nil {
			return user.User{}, fmt.Errorf("failed to decode business unit: %w", err)
		}
	}

	return u, nil
}

func (r *userRepository) List(ctx context.Context, filter user.ListFilter) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	var args []any
	query := `
		SELECT ` + userColumns + `, s.salary
		FROM users u
		LEFT JOIN salaries s ON s.id = u.salary_id AND s.deleted_at IS NULL
		WHERE u.active = true AND u.id <> ` + fmt.Sprint(user.ReservedUserID)

	if cond := unitFilterCondition(filter.Units, &args); cond != "" {
		query += " AND " + cond
	}

	direction := "ASC"
	if strings.EqualFold(filter.By, "desc") {
		direction = "DESC"
	}

	switch filter.Order {
	case "salary":
		query += fmt.Sprintf(" ORDER BY s.salary %s NULLS LAST, u.id ASC", direction)
	case "name":
		query += fmt.Sprintf(" ORDER BY u.first_name %s, u.last_name %s", direction, direction)
	default:
		query += " ORDER BY u.id ASC"
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var result []user.User
	for rows.Next() {
		var u user.User
		var businessUnit []byte

		err := rows.Scan(
			&u.ID, &u.FirstName, &u.SecondName, &u.LastName, &u.SecondLastName,
			&u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.OnLeave,
			&u.SalaryID, &u.PaymentPeriodID, &u.PayrollSchemaID, &businessUnit,
			&u.CreatedAt, &u.UpdatedAt, &u.Salary,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		if len(businessUnit) > 0 {
			if err := json.Unmarshal(businessUnit, &u.BusinessUnit); err != nil {
				return nil, fmt.Errorf("failed to decode business unit: %w", err)
			}
		}

		result = append(result, u)
	}

	return result, rows.Err()
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	businessUnit, err := json.Marshal(newUser.BusinessUnit)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to encode business unit: %w", err)
	}

	query := `
		INSERT INTO users (
			first_name, second_name, last_name, second_last_name,
			email, password_hash, role, active, on_leave,
			payment_period_id, payroll_schema_id, business_unit
		) VALUES ($1, $2, $3, $4, $5, $6, $7, true, false, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		newUser.FirstName, newUser.SecondName, newUser.LastName, newUser.SecondLastName,
		newUser.Email, newUser.PasswordHash, newUser.Role,
		newUser.PaymentPeriodID, newUser.PayrollSchemaID, businessUnit,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

func (r *userRepository) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	sets := []string{"updated_at = NOW()"}
	var args []any

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.FirstName != nil {
		addSet("first_name", *req.FirstName)
	}
	if req.SecondName != nil {
		addSet("second_name", *req.SecondName)
	}
	if req.LastName != nil {
		addSet("last_name", *req.LastName)
	}
	if req.SecondLastName != nil {
		addSet("second_last_name", *req.SecondLastName)
	}
	if req.Email != nil {
		addSet("email", *req.Email)
	}
	if req.Role != nil {
		addSet("role", *req.Role)
	}
	if req.OnLeave != nil {
		addSet("on_leave", *req.OnLeave)
	}
	if req.PaymentPeriodID != nil {
		addSet("payment_period_id", *req.PaymentPeriodID)
	}
	if req.PayrollSchemaID != nil {
		addSet("payroll_schema_id", *req.PayrollSchemaID)
	}
	if req.BusinessUnitID != nil {
		businessUnit, err := json.Marshal(user.BusinessUnit{BusinessUnitIDs: []int64{*req.BusinessUnitID}})
		if err != nil {
			return fmt.Errorf("failed to encode business unit: %w", err)
		}
		addSet("business_unit", businessUnit)
	}

	args = append(args, req.ID)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d AND active = true",
		strings.Join(sets, ", "), len(args),
	)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, id int64, units *user.UnitFilter) error {
	q := GetQuerier(ctx, r.db)

	args := []any{id}
	query := `UPDATE users AS u SET active = false, updated_at = NOW() WHERE u.id = $1 AND u.active = true`

	if cond := unitFilterCondition(units, &args); cond != "" {
		query += " AND " + cond
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) SetSalaryRef(ctx context.Context, userID int64, salaryID int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE users SET salary_id = $1, updated_at = NOW() WHERE id = $2 AND active = true`,
		salaryID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set salary reference: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) GetPayrollRoster(ctx context.Context) ([]user.RosterEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.salary_id, u.payment_period_id, u.payroll_schema_id,
			   u.business_unit, s.salary
		FROM users u
		LEFT JOIN salaries s ON s.id = u.salary_id AND s.deleted_at IS NULL
		WHERE u.active = true AND u.id <> $1
		ORDER BY u.id ASC
	`

	rows, err := q.Query(ctx, query, user.ReservedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll roster: %w", err)
	}
	defer rows.Close()

	var roster []user.RosterEntry
	for rows.Next() {
		var entry user.RosterEntry
		var businessUnit []byte

		err := rows.Scan(
			&entry.ID, &entry.SalaryID, &entry.PaymentPeriodID, &entry.PayrollSchemaID,
			&businessUnit, &entry.Salary,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}

		if len(businessUnit) > 0 {
			if err := json.Unmarshal(businessUnit, &entry.BusinessUnit); err != nil {
				return nil, fmt.Errorf("failed to decode business unit: %w", err)
			}
		}

		roster = append(roster, entry)
	}

	return roster, rows.Err()
}

func (r *userRepository) ListPaymentPeriods(ctx context.Context) ([]user.PaymentPeriod, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM payments_periods ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment periods: %w", err)
	}
	defer rows.Close()

	var periods []user.PaymentPeriod
	for rows.Next() {
		var p user.PaymentPeriod
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan payment period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, rows.Err()
}

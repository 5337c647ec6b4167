package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, can run payroll
	RoleManager  Role = "manager"  // Can browse roster and payroll views
	RoleEmployee Role = "employee" // Regular employee
)

// ReservedUserID is the system account. It is never part of payroll
// processing and never returned by roster queries.
const ReservedUserID int64 = 1

// BusinessUnit holds the set of business units a user belongs to.
// Stored as JSONB; a user may belong to several units.
type BusinessUnit struct {
	BusinessUnitIDs []int64 `json:"business_unit_ids"`
}

// First returns the unit that receives payroll attribution and whether the
// set is non-empty. When a user belongs to several units only the first one
// is attributed, never a split.
func (b BusinessUnit) First() (int64, bool) {
	if len(b.BusinessUnitIDs) == 0 {
		return 0, false
	}
	return b.BusinessUnitIDs[0], true
}

type User struct {
	ID              int64
	FirstName       string
	SecondName      *string
	LastName        string
	SecondLastName  *string
	Email           string
	PasswordHash    *string
	Role            Role
	Active          bool
	OnLeave         bool
	SalaryID        *int64
	PaymentPeriodID *int64
	PayrollSchemaID *int64
	BusinessUnit    BusinessUnit
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	Salary *decimal.Decimal
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RosterEntry is one active, non-reserved employee with the references the
// payroll aggregator needs. Nullable fields stay nullable so the aggregator
// can report malformed entries instead of dropping them silently.
type RosterEntry struct {
	ID              int64
	SalaryID        *int64
	PaymentPeriodID *int64
	PayrollSchemaID *int64
	BusinessUnit    BusinessUnit
	Salary          *decimal.Decimal
}

// PaymentPeriod is a catalog entry (weekly, biweekly, monthly, ...).
type PaymentPeriod struct {
	ID   int64
	Name string
}

// UnitFilterMode selects how a business-unit filter matches a user.
type UnitFilterMode string

const (
	// UnitFilterMember matches when the unit id appears anywhere in the
	// user's business-unit set.
	UnitFilterMember UnitFilterMode = "member"
	// UnitFilterExact matches only users whose set is exactly one unit.
	UnitFilterExact UnitFilterMode = "exact"
)

type UnitFilter struct {
	UnitIDs []int64
	Mode    UnitFilterMode
}

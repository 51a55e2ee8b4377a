package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

type Worker struct {
	ID                    string
	FullName              string
	ContractedWeeklyHours decimal.Decimal
	CategoryID            *string
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// Joined fields
	Category   Category
	Agreements []IndividualAgreement
}

// Category holds the collective-agreement pay terms shared by a group of workers.
// Missing values are zero.
type Category struct {
	ID                    string
	Name                  string
	BaseHourlyPrice       decimal.Decimal
	BaseMonthlySalary     decimal.Decimal
	TransportPlus         decimal.Decimal
	HazardPlus            decimal.Decimal
	NightSurchargePct     decimal.Decimal
	HolidaySurchargePct   decimal.Decimal
	OvertimeSurchargePct  decimal.Decimal
	OvertimeSurchargePct2 decimal.Decimal
}

type AgreementType string

const (
	AgreementTypeHourlyPrice AgreementType = "hourly_price"
	AgreementTypeMonthlyPlus AgreementType = "monthly_plus"
	AgreementTypeBaseSalary  AgreementType = "base_salary"
)

var AgreementTypeValues = []string{
	string(AgreementTypeHourlyPrice),
	string(AgreementTypeMonthlyPlus),
	string(AgreementTypeBaseSalary),
}

type IndividualAgreement struct {
	ID          string
	WorkerID    string
	CenterID    *string // nil = every center
	Type        AgreementType
	Value       decimal.Decimal
	Description *string
	Active      bool
	ValidFrom   *time.Time
	ValidTo     *time.Time
}

// IsGlobal reports whether the agreement applies to all centers.
func (a IndividualAgreement) IsGlobal() bool {
	return a.CenterID == nil || *a.CenterID == ""
}

// ValidOn reports whether the agreement is active and inside its validity window on day.
// A zero day skips the window check.
func (a IndividualAgreement) ValidOn(day time.Time) bool {
	if !a.Active {
		return false
	}
	if day.IsZero() {
		return true
	}
	if a.ValidFrom != nil && day.Before(truncateDay(*a.ValidFrom)) {
		return false
	}
	if a.ValidTo != nil && day.After(truncateDay(*a.ValidTo)) {
		return false
	}
	return true
}

// AppliesTo reports whether the agreement is usable for centerID on day.
// An empty centerID matches only global agreements.
func (a IndividualAgreement) AppliesTo(centerID string, day time.Time) bool {
	if !a.ValidOn(day) {
		return false
	}
	return a.IsGlobal() || *a.CenterID == centerID
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

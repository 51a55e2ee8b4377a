package absence

import (
	"time"

	"github.com/shopspring/decimal"
)

type BaseCalculationMode string

const (
	BaseCalculationBase           BaseCalculationMode = "base"
	BaseCalculationBasePlusPluses BaseCalculationMode = "base_plus_pluses"
	BaseCalculationRegulator      BaseCalculationMode = "regulator"
)

var BaseCalculationModeValues = []string{
	string(BaseCalculationBase),
	string(BaseCalculationBasePlusPluses),
	string(BaseCalculationRegulator),
}

// Tier maps an inclusive range of affected-day numbers to a percentage.
type Tier struct {
	DayFrom    int             `json:"day_from"`
	DayTo      int             `json:"day_to"`
	Percentage decimal.Decimal `json:"percentage"`
}

func (t Tier) Contains(dayNumber int) bool {
	return dayNumber >= t.DayFrom && dayNumber <= t.DayTo
}

type AbsenceType struct {
	ID                  string
	Code                string
	Name                string
	Color               *string
	Payable             bool
	FlatPercentage      decimal.Decimal
	UsesTiers           bool
	Tiers               []Tier
	CarencyDays         int
	BaseCalculationMode BaseCalculationMode
	PerDayCap           *decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PercentageFor resolves the percentage applied to an affected day.
// Tiers are checked in order and the first containing range wins.
func (t AbsenceType) PercentageFor(dayNumber int) decimal.Decimal {
	if t.UsesTiers {
		for _, tier := range t.Tiers {
			if tier.Contains(dayNumber) {
				return tier.Percentage
			}
		}
	}
	return t.FlatPercentage
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// MatrixStatuses are the statuses that mark a day as absent in the payroll matrix.
var MatrixStatuses = []Status{StatusApproved, StatusPending}

type Absence struct {
	ID              string
	WorkerID        string
	AbsenceTypeID   string
	StartDate       time.Time
	EndDate         time.Time
	EarlyReturnDate *time.Time
	Status          Status
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	Type *AbsenceType
}

// EffectiveEnd is the end date shortened by an earlier real return date.
func (a Absence) EffectiveEnd() time.Time {
	end := dayOf(a.EndDate)
	if a.EarlyReturnDate != nil {
		if ret := dayOf(*a.EarlyReturnDate); ret.Before(end) {
			return ret
		}
	}
	return end
}

// Covers reports whether day falls within [StartDate, EffectiveEnd()].
func (a Absence) Covers(day time.Time) bool {
	d := dayOf(day)
	return !d.Before(dayOf(a.StartDate)) && !d.After(a.EffectiveEnd())
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

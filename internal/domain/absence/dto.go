package absence

import (
	"github.com/shopspring/decimal"
)

const (
	ReasonCarency = "carency day"
	ReasonPaid    = "paid"
	ReasonCapped  = "paid (capped)"
)

// DayCompensation is the audit line for one affected day.
type DayCompensation struct {
	Date       string          `json:"date"`
	DayNumber  int             `json:"day_number"`
	Hours      decimal.Decimal `json:"hours"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
}

type CompensationResult struct {
	AbsenceID     string            `json:"absence_id"`
	WorkerID      string            `json:"worker_id"`
	AbsenceTypeID string            `json:"absence_type_id"`
	Payable       bool              `json:"payable"`
	HourlyRate    decimal.Decimal   `json:"hourly_rate"`
	LostHours     decimal.Decimal   `json:"lost_hours"`
	AffectedDays  int               `json:"affected_days"`
	CarencyDays   int               `json:"carency_days"`
	PaidDays      int               `json:"paid_days"`
	Total         decimal.Decimal   `json:"total"`
	Days          []DayCompensation `json:"days"`
}

// AmountOn returns the rounded contribution recorded for date ("YYYY-MM-DD").
func (r CompensationResult) AmountOn(date string) (decimal.Decimal, bool) {
	for _, d := range r.Days {
		if d.Date == date {
			return d.Amount, true
		}
	}
	return decimal.Zero, false
}

// EvenSplit divides the total evenly across paid days.
func (r CompensationResult) EvenSplit() decimal.Decimal {
	if r.PaidDays == 0 {
		return decimal.Zero
	}
	return r.Total.Div(decimal.NewFromInt(int64(r.PaidDays))).Round(2)
}

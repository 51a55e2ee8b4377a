package payroll

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type MatrixRequest struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	WorkerIDs   []string `json:"worker_ids,omitempty"` // Empty = all active workers
	WithAmounts bool     `json:"with_amounts"`
}

func (r *MatrixRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	for i, id := range r.WorkerIDs {
		if _, err := uuid.Parse(id); err != nil {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("worker_ids[%d]", i), Message: "must be a valid UUID"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the first and last day of the requested month.
func (r MatrixRequest) Period() (time.Time, time.Time) {
	start := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

type AbsenceInfo struct {
	AbsenceID string `json:"absence_id"`
	TypeCode  string `json:"type_code"`
	TypeName  string `json:"type_name"`
	Color     string `json:"color,omitempty"`
	Status    string `json:"status"`
}

type ShiftLine struct {
	ShiftID   string           `json:"shift_id"`
	CenterID  string           `json:"center_id"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Hours     HourBuckets      `json:"hours"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	IsHoliday bool             `json:"is_holiday"`
	Overtime  bool             `json:"excedio_contrato"`
}

type DayCell struct {
	Date      string       `json:"date"`
	Weekday   string       `json:"weekday"`
	Kind      DayKind      `json:"kind"`
	IsHoliday bool         `json:"is_holiday"`
	Hours     HourBuckets  `json:"hours"`
	Shifts    []ShiftLine  `json:"shifts,omitempty"`
	Absence   *AbsenceInfo `json:"absence,omitempty"`

	// Only populated for nomina requests.
	Amount                 *decimal.Decimal `json:"amount,omitempty"`
	AbsenceAmount          *decimal.Decimal `json:"absence_amount,omitempty"`
	AbsenceAmountEvenSplit *decimal.Decimal `json:"absence_amount_even_split,omitempty"`
}

type WorkerSummary struct {
	WorkDays      int              `json:"work_days"`
	AbsenceDays   int              `json:"absence_days"`
	OffDays       int              `json:"off_days"`
	Hours         HourBuckets      `json:"hours"`
	WorkAmount    *decimal.Decimal `json:"work_amount,omitempty"`
	AbsenceAmount *decimal.Decimal `json:"absence_amount,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
}

type WorkerRow struct {
	WorkerID        string        `json:"worker_id"`
	WorkerName      string        `json:"worker_name"`
	ContractedHours float64       `json:"contracted_hours"`
	Days            []DayCell     `json:"days"`
	Summary         WorkerSummary `json:"summary"`
}

type Matrix struct {
	PeriodMonth int              `json:"period_month"`
	PeriodYear  int              `json:"period_year"`
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	WithAmounts bool             `json:"with_amounts"`
	Workers     []WorkerRow      `json:"workers"`
	TotalHours  HourBuckets      `json:"total_hours"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
}

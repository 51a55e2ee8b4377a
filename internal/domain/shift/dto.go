package shift

import (
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/validator"
)

// ShiftHours is the classification of a single shift.
type ShiftHours struct {
	TotalMinutes      int     `json:"total_minutes"`
	NightMinutes      int     `json:"night_minutes"`
	TotalHours        float64 `json:"total_hours"`
	NightHours        float64 `json:"night_hours"`
	IsHolidayOrSunday bool    `json:"is_holiday_or_sunday"`
}

// ShiftAllocation is the normal/overtime split of one shift within its week.
type ShiftAllocation struct {
	ShiftID          string    `json:"shift_id"`
	Date             time.Time `json:"date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	TotalMinutes     int       `json:"total_minutes"`
	NormalMinutes    int       `json:"normal_minutes"`
	OvertimeMinutes  int       `json:"overtime_minutes"`
	NormalHours      float64   `json:"normal_hours"`
	OvertimeHours    float64   `json:"overtime_hours"`
	ExceededContract bool      `json:"excedio_contrato"`
}

type WeekAllocation struct {
	WorkerID        string            `json:"worker_id"`
	WeekStart       time.Time         `json:"week_start"`
	ContractedHours float64           `json:"contracted_hours"`
	TotalHours      float64           `json:"total_hours"`
	NormalHours     float64           `json:"normal_hours"`
	OvertimeHours   float64           `json:"overtime_hours"`
	Exceeded        bool              `json:"exceeded"`
	Shifts          []ShiftAllocation `json:"shifts"`
}

type ClassifyShiftRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r *ClassifyShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

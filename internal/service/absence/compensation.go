package absence

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/hours"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/rate"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type CompensationCalculator struct {
	absenceRepo     absence.AbsenceRepository
	absenceTypeRepo absence.AbsenceTypeRepository
	workerRepo      worker.WorkerRepository
	shiftRepo       shift.ShiftRepository
	rates           *rate.Resolver
}

func NewCompensationCalculator(
	absenceRepo absence.AbsenceRepository,
	absenceTypeRepo absence.AbsenceTypeRepository,
	workerRepo worker.WorkerRepository,
	shiftRepo shift.ShiftRepository,
	rates *rate.Resolver,
) absence.CompensationService {
	return &CompensationCalculator{
		absenceRepo:     absenceRepo,
		absenceTypeRepo: absenceTypeRepo,
		workerRepo:      workerRepo,
		shiftRepo:       shiftRepo,
		rates:           rates,
	}
}

// Calculate loads an absence with its type, worker and lost shifts and computes the compensation owed.
func (c *CompensationCalculator) Calculate(ctx context.Context, absenceID string) (absence.CompensationResult, error) {
	a, err := c.absenceRepo.GetByID(ctx, absenceID)
	if err != nil {
		return absence.CompensationResult{}, err
	}

	t := a.Type
	if t == nil {
		loaded, err := c.absenceTypeRepo.GetByID(ctx, a.AbsenceTypeID)
		if err != nil {
			return absence.CompensationResult{}, err
		}
		t = &loaded
	}

	if !t.Payable {
		return zeroResult(a, *t), nil
	}

	w, err := c.workerRepo.GetByID(ctx, a.WorkerID)
	if err != nil {
		return absence.CompensationResult{}, err
	}

	shifts, err := c.shiftRepo.ListActiveByWorker(ctx, a.WorkerID, a.StartDate, a.EffectiveEnd())
	if err != nil {
		return absence.CompensationResult{}, fmt.Errorf("failed to list lost shifts: %w", err)
	}

	result, err := Compute(w, a, *t, shifts, c.rates)
	if err != nil {
		return absence.CompensationResult{}, err
	}

	slog.Info("Absence compensation calculated",
		"absence_id", a.ID,
		"worker_id", a.WorkerID,
		"affected_days", result.AffectedDays,
		"paid_days", result.PaidDays,
		"total", result.Total.String(),
	)
	return result, nil
}

// Compute is the pure compensation calculation for absence a of type t.
// shifts may contain entries outside the absence window or in inactive statuses; both are ignored.
func Compute(w worker.Worker, a absence.Absence, t absence.AbsenceType, shifts []shift.Shift, rates *rate.Resolver) (absence.CompensationResult, error) {
	if !t.Payable {
		return zeroResult(a, t), nil
	}

	lost, err := LostMinutesByDay(a, shifts)
	if err != nil {
		return absence.CompensationResult{}, err
	}
	if len(lost) == 0 {
		return zeroResult(a, t), nil
	}

	days := make([]time.Time, 0, len(lost))
	for d := range lost {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	hourly := rates.AbsenceHourlyRate(w, t.BaseCalculationMode, a.StartDate)

	result := zeroResult(a, t)
	result.HourlyRate = hourly.Round(4)
	result.AffectedDays = len(days)
	result.Days = make([]absence.DayCompensation, 0, len(days))

	total := decimal.Zero
	lostTotal := 0
	for i, d := range days {
		number := i + 1
		h := hours.MinutesToHoursDecimal(lost[d])
		lostTotal += lost[d]

		line := absence.DayCompensation{
			Date:       d.Format("2006-01-02"),
			DayNumber:  number,
			Hours:      h.Round(2),
			Percentage: decimal.Zero,
			Amount:     decimal.Zero,
		}

		if number <= t.CarencyDays {
			line.Reason = absence.ReasonCarency
			result.CarencyDays++
			result.Days = append(result.Days, line)
			continue
		}

		pct := t.PercentageFor(number)
		amount := h.Mul(hourly).Mul(pct).Div(hundred)
		line.Reason = absence.ReasonPaid
		if t.PerDayCap != nil && amount.GreaterThan(*t.PerDayCap) {
			amount = *t.PerDayCap
			line.Reason = absence.ReasonCapped
		}

		line.Percentage = pct
		line.Amount = amount.Round(2)
		total = total.Add(amount)
		result.PaidDays++
		result.Days = append(result.Days, line)
	}

	result.LostHours = hours.MinutesToHoursDecimal(lostTotal).Round(2)
	result.Total = total.Round(2)
	return result, nil
}

// LostMinutesByDay sums the durations of active shifts per day inside the absence window.
// Days without shifts are absent from the map.
func LostMinutesByDay(a absence.Absence, shifts []shift.Shift) (map[time.Time]int, error) {
	lost := make(map[time.Time]int)
	for _, s := range shifts {
		if !s.Status.IsActive() || !a.Covers(s.Day()) {
			continue
		}
		dur, err := hours.DurationMinutes(s.StartTime, s.EndTime)
		if err != nil {
			return nil, err
		}
		lost[s.Day()] += dur
	}
	return lost, nil
}

func zeroResult(a absence.Absence, t absence.AbsenceType) absence.CompensationResult {
	return absence.CompensationResult{
		AbsenceID:     a.ID,
		WorkerID:      a.WorkerID,
		AbsenceTypeID: t.ID,
		Payable:       t.Payable,
		HourlyRate:    decimal.Zero,
		LostHours:     decimal.Zero,
		Total:         decimal.Zero,
		Days:          []absence.DayCompensation{},
	}
}

package hours

import (
	"sort"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// WeekStart returns the Monday that opens the week containing day.
func WeekStart(day time.Time) time.Time {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday that closes the week containing day.
func WeekEnd(day time.Time) time.Time {
	return WeekStart(day).AddDate(0, 0, 6)
}

// HoursToMinutes converts a decimal hour figure to whole minutes.
func HoursToMinutes(h decimal.Decimal) int {
	return int(h.Mul(decimal.NewFromInt(60)).Round(0).IntPart())
}

// SortShifts orders shifts chronologically by (date, start time), keeping input order for ties.
func SortShifts(shifts []shift.Shift) {
	sort.SliceStable(shifts, func(i, j int) bool {
		di, dj := shifts[i].Day(), shifts[j].Day()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return shifts[i].StartTime < shifts[j].StartTime
	})
}

// GroupByWeek buckets shifts by the Monday of their week. Each bucket keeps chronological order.
func GroupByWeek(shifts []shift.Shift) map[time.Time][]shift.Shift {
	sorted := append([]shift.Shift(nil), shifts...)
	SortShifts(sorted)

	weeks := make(map[time.Time][]shift.Shift)
	for _, s := range sorted {
		ws := WeekStart(s.Date)
		weeks[ws] = append(weeks[ws], s)
	}
	return weeks
}

// AllocateWeek splits each shift of one Monday-Sunday week into normal and overtime
// minutes against the contracted weekly hours. Shifts are processed in chronological order.
func AllocateWeek(contractedHours decimal.Decimal, shifts []shift.Shift) ([]shift.ShiftAllocation, error) {
	sorted := append([]shift.Shift(nil), shifts...)
	SortShifts(sorted)

	contracted := HoursToMinutes(contractedHours)
	if contracted < 0 {
		contracted = 0
	}

	allocations := make([]shift.ShiftAllocation, 0, len(sorted))
	consumed := 0
	for _, s := range sorted {
		dur, err := DurationMinutes(s.StartTime, s.EndTime)
		if err != nil {
			return nil, err
		}

		normal, overtime := SplitAgainstContract(consumed, dur, contracted)
		consumed += dur

		allocations = append(allocations, shift.ShiftAllocation{
			ShiftID:          s.ID,
			Date:             s.Day(),
			StartTime:        s.StartTime,
			EndTime:          s.EndTime,
			TotalMinutes:     dur,
			NormalMinutes:    normal,
			OvertimeMinutes:  overtime,
			NormalHours:      MinutesToHours(normal),
			OvertimeHours:    MinutesToHours(overtime),
			ExceededContract: overtime > 0,
		})
	}
	return allocations, nil
}

// SplitAgainstContract splits dur given already consumed minutes of a contracted weekly budget.
func SplitAgainstContract(already, dur, contracted int) (normal, overtime int) {
	switch {
	case already+dur <= contracted:
		return dur, 0
	case already >= contracted:
		return 0, dur
	default:
		normal = contracted - already
		return normal, dur - normal
	}
}

// SummarizeWeek builds the week view of a set of allocations.
func SummarizeWeek(workerID string, weekStart time.Time, contractedHours decimal.Decimal, allocations []shift.ShiftAllocation) shift.WeekAllocation {
	var total, normal, overtime int
	for _, a := range allocations {
		total += a.TotalMinutes
		normal += a.NormalMinutes
		overtime += a.OvertimeMinutes
	}
	contracted, _ := contractedHours.Float64()
	return shift.WeekAllocation{
		WorkerID:        workerID,
		WeekStart:       weekStart,
		ContractedHours: contracted,
		TotalHours:      MinutesToHours(total),
		NormalHours:     MinutesToHours(normal),
		OvertimeHours:   MinutesToHours(overtime),
		Exceeded:        overtime > 0,
		Shifts:          allocations,
	}
}

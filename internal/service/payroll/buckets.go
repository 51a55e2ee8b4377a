package payroll

import (
	"sort"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/payroll"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/hours"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/rate"
	"github.com/shopspring/decimal"
)

// shiftLine is a worked shift with its minutes split into hour buckets.
type shiftLine struct {
	shift   shift.Shift
	date    string
	day     time.Time
	holiday bool
	minutes payroll.MinuteBuckets
}

// splitShifts allocates each week's shifts against the contract and buckets the result.
// Overtime is taken from the tail of a shift; the first tier1Minutes of weekly overtime
// are first-tier and the rest second-tier. The normal portion counts entirely as holiday
// hours on holidays and Sundays, otherwise it is split into night and normal hours.
// Only shifts on days present in holidays (the requested month) are returned.
func (s *MatrixServiceImpl) splitShifts(w worker.Worker, shifts []shift.Shift, holidays map[string]bool) ([]shiftLine, error) {
	byID := make(map[string]shift.Shift, len(shifts))
	for _, sh := range shifts {
		byID[sh.ID] = sh
	}

	weeks := hours.GroupByWeek(shifts)
	weekStarts := make([]time.Time, 0, len(weeks))
	for ws := range weeks {
		weekStarts = append(weekStarts, ws)
	}
	sort.Slice(weekStarts, func(i, j int) bool { return weekStarts[i].Before(weekStarts[j]) })

	var lines []shiftLine
	for _, ws := range weekStarts {
		allocations, err := hours.AllocateWeek(w.ContractedWeeklyHours, weeks[ws])
		if err != nil {
			return nil, err
		}

		tier1Left := s.tier1Minutes
		for _, a := range allocations {
			ot1 := min(a.OvertimeMinutes, tier1Left)
			tier1Left -= ot1
			ot2 := a.OvertimeMinutes - ot1

			key := a.Date.Format(dateLayout)
			holiday, inMonth := holidays[key]
			if !inMonth {
				continue
			}

			start, _, err := hours.Interval(a.StartTime, a.EndTime)
			if err != nil {
				return nil, err
			}

			m := payroll.MinuteBuckets{Overtime1: ot1, Overtime2: ot2}
			switch {
			case holiday:
				m.Holiday = a.NormalMinutes
			default:
				m.Night = hours.NightMinutesBetween(start, start+a.NormalMinutes)
				m.Normal = a.NormalMinutes - m.Night
			}

			lines = append(lines, shiftLine{
				shift:   byID[a.ShiftID],
				date:    key,
				day:     a.Date,
				holiday: holiday,
				minutes: m,
			})
		}
	}
	return lines, nil
}

// lineAmount prices every bucket of a shift at its center's rate for that hour type.
func (s *MatrixServiceImpl) lineAmount(w worker.Worker, l shiftLine) decimal.Decimal {
	buckets := []struct {
		t       rate.HourType
		minutes int
	}{
		{rate.HourNormal, l.minutes.Normal},
		{rate.HourNight, l.minutes.Night},
		{rate.HourHoliday, l.minutes.Holiday},
		{rate.HourOvertime1, l.minutes.Overtime1},
		{rate.HourOvertime2, l.minutes.Overtime2},
	}

	total := decimal.Zero
	for _, b := range buckets {
		if b.minutes == 0 {
			continue
		}
		price := s.rates.HourlyPrice(w, l.shift.CenterID, b.t, l.day)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(b.minutes))).Div(sixty))
	}
	return total
}

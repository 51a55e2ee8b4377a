package hours

import (
	"context"
	"fmt"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/holiday"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/shopspring/decimal"
)

const (
	minutesPerDay = 24 * 60

	nightStart = 23 * 60 // 23:00
	nightEnd   = 6 * 60  // 06:00
)

// nightWindows are the night intervals on a two-day minute axis, enough to cover
// any shift that starts on day one and may cross midnight once.
var nightWindows = [][2]int{
	{0, nightEnd},
	{nightStart, minutesPerDay + nightEnd},
	{minutesPerDay + nightStart, 2 * minutesPerDay},
}

type Classifier struct {
	holidays holiday.Oracle
}

// NewClassifier builds a classifier. A nil oracle treats only Sundays as holidays.
func NewClassifier(holidays holiday.Oracle) *Classifier {
	return &Classifier{holidays: holidays}
}

// Classify computes the total and night hours of a shift and whether its day is a holiday or Sunday.
func (c *Classifier) Classify(ctx context.Context, date time.Time, startTime, endTime string) (shift.ShiftHours, error) {
	start, end, err := Interval(startTime, endTime)
	if err != nil {
		return shift.ShiftHours{}, err
	}

	isHoliday, err := c.IsHolidayOrSunday(ctx, date)
	if err != nil {
		return shift.ShiftHours{}, err
	}

	total := end - start
	night := NightMinutesBetween(start, end)
	return shift.ShiftHours{
		TotalMinutes:      total,
		NightMinutes:      night,
		TotalHours:        MinutesToHours(total),
		NightHours:        MinutesToHours(night),
		IsHolidayOrSunday: isHoliday,
	}, nil
}

func (c *Classifier) IsHolidayOrSunday(ctx context.Context, date time.Time) (bool, error) {
	if date.Weekday() == time.Sunday {
		return true, nil
	}
	if c.holidays == nil {
		return false, nil
	}
	ok, err := c.holidays.IsHoliday(ctx, date)
	if err != nil {
		return false, fmt.Errorf("holiday lookup for %s: %w", date.Format("2006-01-02"), err)
	}
	return ok, nil
}

// Interval parses a shift's "HH:MM" bounds into minutes after the start day's midnight.
// When end is earlier than start the shift crosses midnight and end is moved to the next day.
func Interval(startTime, endTime string) (int, int, error) {
	start, err := shift.ParseClock(startTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := shift.ParseClock(endTime)
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		end += minutesPerDay
	}
	return start, end, nil
}

// DurationMinutes returns the net duration of a shift.
func DurationMinutes(startTime, endTime string) (int, error) {
	start, end, err := Interval(startTime, endTime)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}

// NightMinutesBetween returns how much of [start, end) falls inside 23:00-06:00.
func NightMinutesBetween(start, end int) int {
	total := 0
	for _, w := range nightWindows {
		total += overlap(start, end, w[0], w[1])
	}
	return total
}

func overlap(aStart, aEnd, bStart, bEnd int) int {
	lo := max(aStart, bStart)
	hi := min(aEnd, bEnd)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// MinutesToHours converts minutes to hours rounded to two decimals.
func MinutesToHours(minutes int) float64 {
	f, _ := MinutesToHoursDecimal(minutes).Round(2).Float64()
	return f
}

func MinutesToHoursDecimal(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
}

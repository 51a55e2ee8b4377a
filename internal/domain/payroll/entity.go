package payroll

import (
	"github.com/shopspring/decimal"
)

// DayKind classifies a worker-day in the payroll matrix.
type DayKind string

const (
	DayKindAbsence DayKind = "AUSENCIA"
	DayKindWork    DayKind = "TRABAJO"
	DayKindOff     DayKind = "LIBRE"
)

// HourBuckets splits worked hours by the surcharge that applies to them.
// Total is the sum of the other five buckets.
type HourBuckets struct {
	Normal    float64 `json:"normal"`
	Night     float64 `json:"night"`
	Holiday   float64 `json:"holiday"`
	Overtime1 float64 `json:"overtime_1"`
	Overtime2 float64 `json:"overtime_2"`
	Total     float64 `json:"total"`
}

// MinuteBuckets is the exact counterpart of HourBuckets used while aggregating.
type MinuteBuckets struct {
	Normal    int
	Night     int
	Holiday   int
	Overtime1 int
	Overtime2 int
}

func (m MinuteBuckets) Total() int {
	return m.Normal + m.Night + m.Holiday + m.Overtime1 + m.Overtime2
}

func (m MinuteBuckets) Add(o MinuteBuckets) MinuteBuckets {
	return MinuteBuckets{
		Normal:    m.Normal + o.Normal,
		Night:     m.Night + o.Night,
		Holiday:   m.Holiday + o.Holiday,
		Overtime1: m.Overtime1 + o.Overtime1,
		Overtime2: m.Overtime2 + o.Overtime2,
	}
}

func (m MinuteBuckets) Hours() HourBuckets {
	return HourBuckets{
		Normal:    minutesToHours(m.Normal),
		Night:     minutesToHours(m.Night),
		Holiday:   minutesToHours(m.Holiday),
		Overtime1: minutesToHours(m.Overtime1),
		Overtime2: minutesToHours(m.Overtime2),
		Total:     minutesToHours(m.Total()),
	}
}

func minutesToHours(minutes int) float64 {
	f, _ := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2).Float64()
	return f
}

package rate

import (
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// DefaultWeeksPerMonth converts weekly contracted hours into monthly hours.
var DefaultWeeksPerMonth = decimal.RequireFromString("4.33")

var hundred = decimal.NewFromInt(100)

type HourType string

const (
	HourNormal    HourType = "normal"
	HourNight     HourType = "night"
	HourHoliday   HourType = "holiday"
	HourOvertime1 HourType = "overtime1"
	HourOvertime2 HourType = "overtime2"
)

var HourTypes = []HourType{HourNormal, HourNight, HourHoliday, HourOvertime1, HourOvertime2}

type Resolver struct {
	weeksPerMonth decimal.Decimal
}

// NewResolver builds a resolver. A non-positive weeksPerMonth falls back to DefaultWeeksPerMonth.
func NewResolver(weeksPerMonth decimal.Decimal) *Resolver {
	if !weeksPerMonth.IsPositive() {
		weeksPerMonth = DefaultWeeksPerMonth
	}
	return &Resolver{weeksPerMonth: weeksPerMonth}
}

// BaseHourlyPrice is the category price replaced by the winning hourly-price agreement for centerID.
func (r *Resolver) BaseHourlyPrice(w worker.Worker, centerID string, on time.Time) decimal.Decimal {
	price := w.Category.BaseHourlyPrice
	if a, ok := selectAgreement(w.Agreements, worker.AgreementTypeHourlyPrice, func(a worker.IndividualAgreement) bool {
		return a.AppliesTo(centerID, on)
	}); ok {
		price = a.Value
	}
	return price
}

// HourlyPrice is the € owed per hour of hourType worked at centerID.
func (r *Resolver) HourlyPrice(w worker.Worker, centerID string, hourType HourType, on time.Time) decimal.Decimal {
	base := r.BaseHourlyPrice(w, centerID, on)
	pct := SurchargePct(w.Category, hourType)
	if pct.IsZero() {
		return base
	}
	return base.Mul(decimal.NewFromInt(1).Add(pct.Div(hundred)))
}

// SurchargePct returns the category surcharge for hourType. Normal hours carry none.
func SurchargePct(c worker.Category, hourType HourType) decimal.Decimal {
	switch hourType {
	case HourNight:
		return c.NightSurchargePct
	case HourHoliday:
		return c.HolidaySurchargePct
	case HourOvertime1:
		return c.OvertimeSurchargePct
	case HourOvertime2:
		return c.OvertimeSurchargePct2
	default:
		return decimal.Zero
	}
}

// MonthlyPluses sums the category pluses and every monthly-plus agreement applying to centerID.
func (r *Resolver) MonthlyPluses(w worker.Worker, centerID string, on time.Time) decimal.Decimal {
	total := w.Category.TransportPlus.Add(w.Category.HazardPlus)
	for _, a := range w.Agreements {
		if a.Type == worker.AgreementTypeMonthlyPlus && a.AppliesTo(centerID, on) {
			total = total.Add(a.Value)
		}
	}
	return total
}

// MonthlySalary selects the salary figure that feeds absence compensation for mode.
func (r *Resolver) MonthlySalary(w worker.Worker, mode absence.BaseCalculationMode, on time.Time) decimal.Decimal {
	salary := w.Category.BaseMonthlySalary
	if a, ok := selectAgreement(w.Agreements, worker.AgreementTypeBaseSalary, func(a worker.IndividualAgreement) bool {
		return a.ValidOn(on)
	}); ok {
		salary = a.Value
	}

	switch mode {
	case absence.BaseCalculationBasePlusPluses:
		return salary.Add(w.Category.TransportPlus).Add(w.Category.HazardPlus)
	case absence.BaseCalculationRegulator:
		salary = salary.Add(w.Category.TransportPlus).Add(w.Category.HazardPlus)
		for _, a := range w.Agreements {
			if a.Type == worker.AgreementTypeMonthlyPlus && a.ValidOn(on) {
				salary = salary.Add(a.Value)
			}
		}
		return salary
	default:
		return salary
	}
}

// AbsenceHourlyRate converts the monthly salary for mode into an hourly rate:
// monthly / (contractedWeeklyHours * weeksPerMonth). Zero when the worker has no contracted hours.
func (r *Resolver) AbsenceHourlyRate(w worker.Worker, mode absence.BaseCalculationMode, on time.Time) decimal.Decimal {
	if !w.ContractedWeeklyHours.IsPositive() {
		return decimal.Zero
	}
	monthlyHours := w.ContractedWeeklyHours.Mul(r.weeksPerMonth)
	return r.MonthlySalary(w, mode, on).Div(monthlyHours)
}

// selectAgreement picks the winning agreement of type t among those accepted by match.
// Center-scoped agreements beat global ones, then the later ValidFrom wins, then the
// later position in the list.
func selectAgreement(agreements []worker.IndividualAgreement, t worker.AgreementType, match func(worker.IndividualAgreement) bool) (worker.IndividualAgreement, bool) {
	var (
		best  worker.IndividualAgreement
		found bool
	)
	for _, a := range agreements {
		if a.Type != t || !match(a) {
			continue
		}
		if !found || !outranks(best, a) {
			best, found = a, true
		}
	}
	return best, found
}

// outranks reports whether a strictly beats b.
func outranks(a, b worker.IndividualAgreement) bool {
	if a.IsGlobal() != b.IsGlobal() {
		return !a.IsGlobal()
	}
	af, bf := validFrom(a), validFrom(b)
	return af.After(bf)
}

func validFrom(a worker.IndividualAgreement) time.Time {
	if a.ValidFrom == nil {
		return time.Time{}
	}
	return *a.ValidFrom
}

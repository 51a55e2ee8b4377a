package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/payroll"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	absencesvc "github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/hours"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/rate"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dateLayout = "2006-01-02"

	// compensationConcurrency bounds the parallel shift lookups made for absence compensation.
	compensationConcurrency = 4
)

var sixty = decimal.NewFromInt(60)

type MatrixServiceImpl struct {
	workerRepo      worker.WorkerRepository
	shiftRepo       shift.ShiftRepository
	absenceRepo     absence.AbsenceRepository
	absenceTypeRepo absence.AbsenceTypeRepository
	classifier      *hours.Classifier
	rates           *rate.Resolver
	tier1Minutes    int
}

func NewMatrixService(
	workerRepo worker.WorkerRepository,
	shiftRepo shift.ShiftRepository,
	absenceRepo absence.AbsenceRepository,
	absenceTypeRepo absence.AbsenceTypeRepository,
	classifier *hours.Classifier,
	rates *rate.Resolver,
	overtimeTier1Hours decimal.Decimal,
) payroll.MatrixService {
	return &MatrixServiceImpl{
		workerRepo:      workerRepo,
		shiftRepo:       shiftRepo,
		absenceRepo:     absenceRepo,
		absenceTypeRepo: absenceTypeRepo,
		classifier:      classifier,
		rates:           rates,
		tier1Minutes:    max(hours.HoursToMinutes(overtimeTier1Hours), 0),
	}
}

// monthData is everything Build needs, loaded up front.
type monthData struct {
	workers      []worker.Worker
	shifts       map[string][]shift.Shift // worker id -> shifts of the extended window
	absences     map[string][]absence.Absence
	compensation map[string]absence.CompensationResult // absence id -> result
	holidays     map[string]bool                       // date -> holiday or Sunday
}

func (s *MatrixServiceImpl) Build(ctx context.Context, req payroll.MatrixRequest) (payroll.Matrix, error) {
	if err := req.Validate(); err != nil {
		return payroll.Matrix{}, err
	}

	data, err := s.load(ctx, req)
	if err != nil {
		return payroll.Matrix{}, err
	}

	start, end := req.Period()
	m := payroll.Matrix{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: start.Format(dateLayout),
		PeriodEnd:   end.Format(dateLayout),
		WithAmounts: req.WithAmounts,
		Workers:     make([]payroll.WorkerRow, 0, len(data.workers)),
	}

	var totalMinutes payroll.MinuteBuckets
	totalAmount := decimal.Zero
	for _, w := range data.workers {
		row, minutes, amount, err := s.buildRow(w, start, end, data, req.WithAmounts)
		if err != nil {
			return payroll.Matrix{}, err
		}
		m.Workers = append(m.Workers, row)
		totalMinutes = totalMinutes.Add(minutes)
		totalAmount = totalAmount.Add(amount)
	}

	m.TotalHours = totalMinutes.Hours()
	if req.WithAmounts {
		m.TotalAmount = money(totalAmount)
	}

	slog.Info("Payroll matrix built",
		"year", req.Year,
		"month", req.Month,
		"workers", len(m.Workers),
		"with_amounts", req.WithAmounts,
	)
	return m, nil
}

func (s *MatrixServiceImpl) load(ctx context.Context, req payroll.MatrixRequest) (*monthData, error) {
	start, end := req.Period()

	var (
		workers []worker.Worker
		err     error
	)
	if len(req.WorkerIDs) == 0 {
		workers, err = s.workerRepo.ListActive(ctx)
	} else {
		workers, err = s.workerRepo.ListByIDs(ctx, req.WorkerIDs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load workers: %w", err)
	}
	if len(workers) == 0 {
		return nil, payroll.ErrNoWorkers
	}
	sort.SliceStable(workers, func(i, j int) bool {
		if workers[i].FullName != workers[j].FullName {
			return workers[i].FullName < workers[j].FullName
		}
		return workers[i].ID < workers[j].ID
	})

	ids := make([]string, len(workers))
	for i, w := range workers {
		ids[i] = w.ID
	}

	data := &monthData{
		workers:      workers,
		shifts:       make(map[string][]shift.Shift, len(workers)),
		absences:     make(map[string][]absence.Absence, len(workers)),
		compensation: make(map[string]absence.CompensationResult),
		holidays:     make(map[string]bool),
	}

	var (
		shifts   []shift.Shift
		absences []absence.Absence
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Whole Monday-Sunday weeks so overtime is counted across month boundaries.
		var err error
		shifts, err = s.shiftRepo.ListActiveByWorkers(gctx, ids, hours.WeekStart(start), hours.WeekEnd(end))
		if err != nil {
			return fmt.Errorf("failed to load shifts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		// Same weeks as the shifts: absent days outside the month still release contract hours.
		absences, err = s.absenceRepo.ListByWorkersOverlapping(gctx, ids, hours.WeekStart(start), hours.WeekEnd(end), absence.MatrixStatuses)
		if err != nil {
			return fmt.Errorf("failed to load absences: %w", err)
		}
		return s.attachTypes(gctx, absences)
	})
	g.Go(func() error {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			ok, err := s.classifier.IsHolidayOrSunday(gctx, d)
			if err != nil {
				return err
			}
			data.holidays[d.Format(dateLayout)] = ok
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, sh := range shifts {
		data.shifts[sh.WorkerID] = append(data.shifts[sh.WorkerID], sh)
	}
	sort.SliceStable(absences, func(i, j int) bool {
		if !absences[i].StartDate.Equal(absences[j].StartDate) {
			return absences[i].StartDate.Before(absences[j].StartDate)
		}
		return absences[i].ID < absences[j].ID
	})
	for _, a := range absences {
		data.absences[a.WorkerID] = append(data.absences[a.WorkerID], a)
	}

	if req.WithAmounts {
		var inMonth []absence.Absence
		for _, a := range absences {
			if !a.StartDate.After(end) && !a.EffectiveEnd().Before(start) {
				inMonth = append(inMonth, a)
			}
		}
		if err := s.loadCompensation(ctx, workers, inMonth, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// attachTypes fills in the type of absences loaded without it.
func (s *MatrixServiceImpl) attachTypes(ctx context.Context, absences []absence.Absence) error {
	var missing []string
	seen := make(map[string]bool)
	for _, a := range absences {
		if a.Type == nil && !seen[a.AbsenceTypeID] {
			seen[a.AbsenceTypeID] = true
			missing = append(missing, a.AbsenceTypeID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	types, err := s.absenceTypeRepo.ListByIDs(ctx, missing)
	if err != nil {
		return fmt.Errorf("failed to load absence types: %w", err)
	}
	byID := make(map[string]*absence.AbsenceType, len(types))
	for i := range types {
		byID[types[i].ID] = &types[i]
	}
	for i := range absences {
		if absences[i].Type != nil {
			continue
		}
		t, ok := byID[absences[i].AbsenceTypeID]
		if !ok {
			return fmt.Errorf("%w: %s", absence.ErrAbsenceTypeNotFound, absences[i].AbsenceTypeID)
		}
		absences[i].Type = t
	}
	return nil
}

// loadCompensation computes every absence's compensation over its full window,
// which may reach outside the requested month.
func (s *MatrixServiceImpl) loadCompensation(ctx context.Context, workers []worker.Worker, absences []absence.Absence, data *monthData) error {
	byWorker := make(map[string]worker.Worker, len(workers))
	for _, w := range workers {
		byWorker[w.ID] = w
	}

	results := make([]absence.CompensationResult, len(absences))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(compensationConcurrency)
	for i, a := range absences {
		i, a := i, a
		g.Go(func() error {
			shifts, err := s.shiftRepo.ListActiveByWorker(gctx, a.WorkerID, a.StartDate, a.EffectiveEnd())
			if err != nil {
				return fmt.Errorf("failed to load shifts for absence %s: %w", a.ID, err)
			}
			res, err := absencesvc.Compute(byWorker[a.WorkerID], a, *a.Type, shifts, s.rates)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, a := range absences {
		data.compensation[a.ID] = results[i]
	}
	return nil
}

// buildRow renders one worker's month and returns its minute and € totals.
func (s *MatrixServiceImpl) buildRow(w worker.Worker, start, end time.Time, data *monthData, withAmounts bool) (payroll.WorkerRow, payroll.MinuteBuckets, decimal.Decimal, error) {
	contracted, _ := w.ContractedWeeklyHours.Float64()
	row := payroll.WorkerRow{
		WorkerID:        w.ID,
		WorkerName:      w.FullName,
		ContractedHours: contracted,
		Days:            make([]payroll.DayCell, 0, end.Day()),
	}

	absences := data.absences[w.ID]
	coveredBy := func(d time.Time) *absence.Absence {
		for i := range absences {
			if absences[i].Covers(d) {
				return &absences[i]
			}
		}
		return nil
	}

	// Shifts on absent days were not worked and do not consume the weekly contract.
	var worked []shift.Shift
	for _, sh := range data.shifts[w.ID] {
		if coveredBy(sh.Day()) == nil {
			worked = append(worked, sh)
		}
	}

	lines, err := s.splitShifts(w, worked, data.holidays)
	if err != nil {
		return payroll.WorkerRow{}, payroll.MinuteBuckets{}, decimal.Zero, err
	}
	byDay := make(map[string][]shiftLine)
	for _, l := range lines {
		byDay[l.date] = append(byDay[l.date], l)
	}

	var (
		monthMinutes  payroll.MinuteBuckets
		workAmount    = decimal.Zero
		absenceAmount = decimal.Zero
	)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		cell := payroll.DayCell{
			Date:      key,
			Weekday:   d.Weekday().String(),
			IsHoliday: data.holidays[key],
		}

		if a := coveredBy(d); a != nil {
			cell.Kind = payroll.DayKindAbsence
			cell.Absence = absenceInfo(*a)
			row.Summary.AbsenceDays++
			if withAmounts {
				precise, even := absenceDayAmounts(data.compensation[a.ID], key)
				cell.Amount = money(precise)
				cell.AbsenceAmount = money(precise)
				cell.AbsenceAmountEvenSplit = money(even)
				absenceAmount = absenceAmount.Add(precise)
			}
			row.Days = append(row.Days, cell)
			continue
		}

		dayLines := byDay[key]
		if len(dayLines) == 0 {
			cell.Kind = payroll.DayKindOff
			row.Summary.OffDays++
			row.Days = append(row.Days, cell)
			continue
		}

		cell.Kind = payroll.DayKindWork
		row.Summary.WorkDays++
		var dayMinutes payroll.MinuteBuckets
		dayAmount := decimal.Zero
		cell.Shifts = make([]payroll.ShiftLine, 0, len(dayLines))
		for _, l := range dayLines {
			out := payroll.ShiftLine{
				ShiftID:   l.shift.ID,
				CenterID:  l.shift.CenterID,
				StartTime: l.shift.StartTime,
				EndTime:   l.shift.EndTime,
				Hours:     l.minutes.Hours(),
				IsHoliday: l.holiday,
				Overtime:  l.minutes.Overtime1+l.minutes.Overtime2 > 0,
			}
			if withAmounts {
				amount := s.lineAmount(w, l)
				out.Amount = money(amount)
				dayAmount = dayAmount.Add(amount)
			}
			cell.Shifts = append(cell.Shifts, out)
			dayMinutes = dayMinutes.Add(l.minutes)
		}
		cell.Hours = dayMinutes.Hours()
		monthMinutes = monthMinutes.Add(dayMinutes)
		if withAmounts {
			cell.Amount = money(dayAmount)
			workAmount = workAmount.Add(dayAmount)
		}
		row.Days = append(row.Days, cell)
	}

	row.Summary.Hours = monthMinutes.Hours()
	total := workAmount.Add(absenceAmount)
	if withAmounts {
		row.Summary.WorkAmount = money(workAmount)
		row.Summary.AbsenceAmount = money(absenceAmount)
		row.Summary.Total = money(total)
	}
	return row, monthMinutes, total, nil
}

func absenceInfo(a absence.Absence) *payroll.AbsenceInfo {
	info := &payroll.AbsenceInfo{
		AbsenceID: a.ID,
		Status:    string(a.Status),
	}
	if a.Type != nil {
		info.TypeCode = a.Type.Code
		info.TypeName = a.Type.Name
		if a.Type.Color != nil {
			info.Color = *a.Type.Color
		}
	}
	return info
}

// absenceDayAmounts returns the precise per-day compensation for date and the
// even split of the absence total. Days outside the paid breakdown get zero for both.
func absenceDayAmounts(res absence.CompensationResult, date string) (decimal.Decimal, decimal.Decimal) {
	for _, d := range res.Days {
		if d.Date != date {
			continue
		}
		if d.Reason == absence.ReasonCarency {
			return decimal.Zero, decimal.Zero
		}
		return d.Amount, res.EvenSplit()
	}
	return decimal.Zero, decimal.Zero
}

func money(d decimal.Decimal) *decimal.Decimal {
	r := d.Round(2)
	return &r
}

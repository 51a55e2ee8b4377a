package rate

import (
	"context"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	"github.com/shopspring/decimal"
)

// Card is the resolved rate sheet of one worker at one center on one day.
type Card struct {
	WorkerID      string                                          `json:"worker_id"`
	CenterID      string                                          `json:"center_id,omitempty"`
	Date          string                                          `json:"date"`
	CategoryName  string                                          `json:"category_name"`
	HourlyPrices  map[HourType]decimal.Decimal                    `json:"hourly_prices"`
	MonthlyPluses decimal.Decimal                                 `json:"monthly_pluses"`
	MonthlySalary map[absence.BaseCalculationMode]decimal.Decimal `json:"monthly_salary"`
	AbsenceHourly map[absence.BaseCalculationMode]decimal.Decimal `json:"absence_hourly_rate"`
}

func (r *Resolver) Card(w worker.Worker, centerID string, on time.Time) Card {
	card := Card{
		WorkerID:      w.ID,
		CenterID:      centerID,
		Date:          on.Format("2006-01-02"),
		CategoryName:  w.Category.Name,
		HourlyPrices:  make(map[HourType]decimal.Decimal, len(HourTypes)),
		MonthlyPluses: r.MonthlyPluses(w, centerID, on).Round(2),
		MonthlySalary: make(map[absence.BaseCalculationMode]decimal.Decimal, 3),
		AbsenceHourly: make(map[absence.BaseCalculationMode]decimal.Decimal, 3),
	}
	for _, t := range HourTypes {
		card.HourlyPrices[t] = r.HourlyPrice(w, centerID, t, on).Round(4)
	}
	for _, m := range absence.BaseCalculationModeValues {
		mode := absence.BaseCalculationMode(m)
		card.MonthlySalary[mode] = r.MonthlySalary(w, mode, on).Round(2)
		card.AbsenceHourly[mode] = r.AbsenceHourlyRate(w, mode, on).Round(4)
	}
	return card
}

// CardService resolves rate cards for stored workers.
type CardService struct {
	workerRepo worker.WorkerRepository
	resolver   *Resolver
}

func NewCardService(workerRepo worker.WorkerRepository, resolver *Resolver) *CardService {
	return &CardService{workerRepo: workerRepo, resolver: resolver}
}

func (s *CardService) ForWorker(ctx context.Context, workerID, centerID string, on time.Time) (Card, error) {
	w, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return Card{}, err
	}
	return s.resolver.Card(w, centerID, on), nil
}

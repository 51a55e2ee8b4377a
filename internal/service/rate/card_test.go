package rate

import (
	"context"
	"testing"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWorkerRepo struct {
	mock.Mock
}

func (m *mockWorkerRepo) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(worker.Worker), args.Error(1)
}

func (m *mockWorkerRepo) ListByIDs(ctx context.Context, ids []string) ([]worker.Worker, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]worker.Worker), args.Error(1)
}

func (m *mockWorkerRepo) ListActive(ctx context.Context) ([]worker.Worker, error) {
	args := m.Called(ctx)
	return args.Get(0).([]worker.Worker), args.Error(1)
}

func TestCardService_ForWorker(t *testing.T) {
	repo := new(mockWorkerRepo)
	w := baseWorker()
	w.Agreements = []worker.IndividualAgreement{hourlyAgreement(ptr("c1"), "12")}
	repo.On("GetByID", mock.Anything, "w1").Return(w, nil).Once()

	svc := NewCardService(repo, NewResolver(DefaultWeeksPerMonth))
	card, err := svc.ForWorker(context.Background(), "w1", "c1", day("2024-03-04"))
	require.NoError(t, err)

	assert.Equal(t, "Limpiador/a", card.CategoryName)
	assertDec(t, "12", card.HourlyPrices[HourNormal])
	assertDec(t, "24", card.HourlyPrices[HourOvertime2])
	assertDec(t, "1385.6", card.MonthlySalary[absence.BaseCalculationBasePlusPluses])
	repo.AssertExpectations(t)
}

func TestCardService_UnknownWorker(t *testing.T) {
	repo := new(mockWorkerRepo)
	repo.On("GetByID", mock.Anything, "missing").Return(worker.Worker{}, worker.ErrWorkerNotFound).Once()

	_, err := NewCardService(repo, NewResolver(DefaultWeeksPerMonth)).ForWorker(context.Background(), "missing", "", day("2024-03-04"))
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

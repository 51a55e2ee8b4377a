package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/repository/postgresql"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/hours"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seed struct {
	workerID  string
	centerA   string
	centerB   string
	shiftID   string
	absenceID string
}

func seedEngineData(t *testing.T, setup *TestDatabaseSetup) seed {
	t.Helper()
	ctx := context.Background()
	db := setup.DB
	var s seed

	var categoryID string
	require.NoError(t, db.QueryRow(ctx, `
		INSERT INTO categories (name, base_hourly_price, base_monthly_salary, transport_plus, night_surcharge_pct)
		VALUES ('Limpiador/a', 10, 1299, 86.6, 25) RETURNING id`).Scan(&categoryID))
	require.NoError(t, db.QueryRow(ctx, `INSERT INTO centers (name) VALUES ('Hospital') RETURNING id`).Scan(&s.centerA))
	require.NoError(t, db.QueryRow(ctx, `INSERT INTO centers (name) VALUES ('Colegio') RETURNING id`).Scan(&s.centerB))
	require.NoError(t, db.QueryRow(ctx, `
		INSERT INTO workers (full_name, contracted_weekly_hours, category_id)
		VALUES ('Lucía Martín', 40, $1) RETURNING id`, categoryID).Scan(&s.workerID))

	_, err := db.Exec(ctx, `
		INSERT INTO individual_agreements (worker_id, center_id, agreement_type, value, created_at)
		VALUES ($1, NULL, 'hourly_price', 11, NOW() - INTERVAL '1 day'),
		       ($1, $2, 'hourly_price', 13, NOW())`, s.workerID, s.centerA)
	require.NoError(t, err)

	require.NoError(t, db.QueryRow(ctx, `
		INSERT INTO shifts (worker_id, center_id, date, start_time, end_time, status)
		VALUES ($1, $2, '2024-03-05', '22:00', '06:00', 'confirmed') RETURNING id`,
		s.workerID, s.centerA).Scan(&s.shiftID))
	_, err = db.Exec(ctx, `
		INSERT INTO shifts (worker_id, center_id, date, start_time, end_time, status)
		VALUES ($1, $2, '2024-03-06', '08:00', '16:00', 'cancelled')`, s.workerID, s.centerB)
	require.NoError(t, err)

	var typeID string
	require.NoError(t, db.QueryRow(ctx, `
		INSERT INTO absence_types (code, name, payable, flat_percentage, uses_tiers, tiers, carency_days, base_calculation_mode, per_day_cap)
		VALUES ('IT', 'Incapacidad temporal', TRUE, 60, TRUE,
		        '[{"day_from":1,"day_to":3,"percentage":0},{"day_from":4,"day_to":20,"percentage":60}]', 3, 'regulator', 50)
		RETURNING id`).Scan(&typeID))
	require.NoError(t, db.QueryRow(ctx, `
		INSERT INTO absences (worker_id, absence_type_id, start_date, end_date, early_return_date, status)
		VALUES ($1, $2, '2024-03-04', '2024-03-20', '2024-03-10', 'approved') RETURNING id`,
		s.workerID, typeID).Scan(&s.absenceID))

	return s
}

func TestWorkerRepository_LoadsCategoryAndAgreements(t *testing.T) {
	setup := setupDatabase(t)
	s := seedEngineData(t, setup)
	repo := postgresql.NewWorkerRepository(setup.DB)

	w, err := repo.GetByID(context.Background(), s.workerID)
	require.NoError(t, err)
	assert.Equal(t, "Lucía Martín", w.FullName)
	assert.Equal(t, "40", w.ContractedWeeklyHours.String())
	assert.Equal(t, "1299", w.Category.BaseMonthlySalary.String())
	assert.True(t, w.Category.HazardPlus.IsZero())
	require.Len(t, w.Agreements, 2)
	assert.True(t, w.Agreements[0].IsGlobal())
	assert.Equal(t, worker.AgreementTypeHourlyPrice, w.Agreements[1].Type)

	_, err = repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestShiftRepository_ActiveOnlyAndOptimisticUpdate(t *testing.T) {
	setup := setupDatabase(t)
	s := seedEngineData(t, setup)
	repo := postgresql.NewShiftRepository(setup.DB)
	ctx := context.Background()

	shifts, err := repo.ListActiveByWorker(ctx, s.workerID, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "22:00", shifts[0].StartTime)
	assert.Equal(t, "06:00", shifts[0].EndTime)
	assert.Equal(t, shift.StatusConfirmed, shifts[0].Status)
	require.NotNil(t, shifts[0].CenterName)
	assert.Equal(t, "Hospital", *shifts[0].CenterName)

	current := shifts[0]
	note := "Excede horas de contrato"
	ok, err := repo.UpdateAttentionIfVersion(ctx, current.ID, true, &note, current.RowVersion)
	require.NoError(t, err)
	assert.True(t, ok)

	// stale version loses
	ok, err = repo.UpdateAttentionIfVersion(ctx, current.ID, false, nil, current.RowVersion)
	require.NoError(t, err)
	assert.False(t, ok)

	updated, err := repo.GetByID(ctx, current.ID)
	require.NoError(t, err)
	assert.True(t, updated.RequiresAttention)
	assert.Equal(t, current.RowVersion+1, updated.RowVersion)
}

func TestAbsenceRepository_JoinsTypeAndHonoursEarlyReturn(t *testing.T) {
	setup := setupDatabase(t)
	s := seedEngineData(t, setup)
	repo := postgresql.NewAbsenceRepository(setup.DB)
	ctx := context.Background()

	a, err := repo.GetByID(ctx, s.absenceID)
	require.NoError(t, err)
	require.NotNil(t, a.Type)
	assert.Equal(t, "IT", a.Type.Code)
	assert.Equal(t, absence.BaseCalculationRegulator, a.Type.BaseCalculationMode)
	require.Len(t, a.Type.Tiers, 2)
	assert.Equal(t, "60", a.Type.Tiers[1].Percentage.String())
	require.NotNil(t, a.Type.PerDayCap)
	assert.Equal(t, "2024-03-10", a.EffectiveEnd().Format("2006-01-02"))

	// window after the early return does not overlap
	list, err := repo.ListByWorkersOverlapping(ctx, []string{s.workerID},
		time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), absence.MatrixStatuses)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = repo.ListByWorkersOverlapping(ctx, []string{s.workerID},
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), absence.MatrixStatuses)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestHolidayRepository_NationalAndRegion(t *testing.T) {
	setup := setupDatabase(t)
	ctx := context.Background()
	_, err := setup.DB.Exec(ctx, `
		INSERT INTO holidays (date, name, scope, region) VALUES
		('2024-03-19', 'San José', 'regional', 'VC'),
		('2024-07-25', 'Santiago Apóstol', 'regional', 'GA'),
		('2024-08-15', 'Asunción de la Virgen', 'national', NULL)`)
	require.NoError(t, err)

	repo := postgresql.NewHolidayRepository(setup.DB)
	list, err := repo.ListBetween(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "VC")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "San José", list[0].Name)
	assert.Equal(t, "Asunción de la Virgen", list[1].Name)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	setup := setupDatabase(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := postgresql.WithTransaction(ctx, setup.DB, func(ctx context.Context) error {
		q := postgresql.GetQuerier(ctx, setup.DB)
		if _, err := q.Exec(ctx, `INSERT INTO centers (name) VALUES ('Oficina')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, setup.DB.QueryRow(ctx, `SELECT COUNT(*) FROM centers`).Scan(&count))
	assert.Zero(t, count)

	err = postgresql.WithTransaction(ctx, setup.DB, func(ctx context.Context) error {
		_, err := postgresql.GetQuerier(ctx, setup.DB).Exec(ctx, `INSERT INTO centers (name) VALUES ('Oficina')`)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, setup.DB.QueryRow(ctx, `SELECT COUNT(*) FROM centers`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestTransactor_ReconcilerFlagsShiftInsideTransaction(t *testing.T) {
	setup := setupDatabase(t)
	s := seedEngineData(t, setup)
	ctx := context.Background()
	_, err := setup.DB.Exec(ctx, `UPDATE workers SET contracted_weekly_hours = 4 WHERE id = $1`, s.workerID)
	require.NoError(t, err)

	shiftRepo := postgresql.NewShiftRepository(setup.DB)
	r := hours.NewAttentionReconciler(postgresql.NewWorkerRepository(setup.DB), shiftRepo, postgresql.NewTransactor(setup.DB))

	week, err := r.ReconcileWeek(ctx, s.workerID, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, week.Exceeded)

	got, err := shiftRepo.GetByID(ctx, s.shiftID)
	require.NoError(t, err)
	assert.True(t, got.RequiresAttention)
	require.NotNil(t, got.AttentionNote)
	assert.Contains(t, *got.AttentionNote, "Excede horas de contrato")
}

package hours

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memWorkerRepo struct {
	workers map[string]worker.Worker
}

func (m *memWorkerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	w, ok := m.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (m *memWorkerRepo) ListByIDs(_ context.Context, ids []string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, id := range ids {
		if w, ok := m.workers[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memWorkerRepo) ListActive(_ context.Context) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range m.workers {
		if w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

type memShiftRepo struct {
	mu     sync.Mutex
	shifts map[string]*shift.Shift

	// conflicts forces UpdateAttentionIfVersion to lose the race this many times.
	conflicts int
	updates   int
}

func newMemShiftRepo(shifts ...shift.Shift) *memShiftRepo {
	m := &memShiftRepo{shifts: make(map[string]*shift.Shift)}
	for i := range shifts {
		s := shifts[i]
		m.shifts[s.ID] = &s
	}
	return m
}

func (m *memShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return *s, nil
}

func (m *memShiftRepo) ListActiveByWorker(ctx context.Context, workerID string, from, to time.Time) ([]shift.Shift, error) {
	return m.ListActiveByWorkers(ctx, []string{workerID}, from, to)
}

func (m *memShiftRepo) ListActiveByWorkers(_ context.Context, workerIDs []string, from, to time.Time) ([]shift.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make(map[string]bool, len(workerIDs))
	for _, id := range workerIDs {
		ids[id] = true
	}
	var out []shift.Shift
	for _, s := range m.shifts {
		d := s.Day()
		if ids[s.WorkerID] && s.Status.IsActive() && !d.Before(from) && !d.After(to) {
			out = append(out, *s)
		}
	}
	SortShifts(out)
	return out, nil
}

func (m *memShiftRepo) UpdateAttentionIfVersion(_ context.Context, id string, requires bool, note *string, expectedVersion int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shifts[id]
	if !ok {
		return false, shift.ErrShiftNotFound
	}
	if m.conflicts > 0 {
		m.conflicts--
		s.RowVersion++
		return false, nil
	}
	if s.RowVersion != expectedVersion {
		return false, nil
	}
	s.RequiresAttention = requires
	s.AttentionNote = note
	s.RowVersion++
	m.updates++
	return true, nil
}

func strPtr(s string) *string { return &s }

func fortyHourWorker() *memWorkerRepo {
	return &memWorkerRepo{workers: map[string]worker.Worker{
		"w1": {ID: "w1", FullName: "Ana", ContractedWeeklyHours: decimal.NewFromInt(40), Active: true},
	}}
}

func fullWeek() []shift.Shift {
	return []shift.Shift{
		mkShift("mon", "2024-03-04", "08:00", "16:00"),
		mkShift("tue", "2024-03-05", "08:00", "16:00"),
		mkShift("wed", "2024-03-06", "08:00", "16:00"),
		mkShift("thu", "2024-03-07", "08:00", "16:00"),
		mkShift("fri", "2024-03-08", "08:00", "16:00"),
		mkShift("sat", "2024-03-09", "08:00", "12:00"),
	}
}

func TestReconcileWeek_FlagsExceededWeek(t *testing.T) {
	shifts := newMemShiftRepo(fullWeek()...)
	r := NewAttentionReconciler(fortyHourWorker(), shifts, nil)

	week, err := r.ReconcileWeek(context.Background(), "w1", date("2024-03-06"))
	require.NoError(t, err)
	assert.True(t, week.Exceeded)
	assert.Equal(t, 44.0, week.TotalHours)
	assert.Equal(t, 4.0, week.OvertimeHours)
	assert.Equal(t, date("2024-03-04"), week.WeekStart)

	for id, s := range shifts.shifts {
		assert.True(t, s.RequiresAttention, id)
		require.NotNil(t, s.AttentionNote, id)
		assert.True(t, strings.HasPrefix(*s.AttentionNote, overtimeNotePrefix), id)
	}
}

func TestReconcileWeek_IsIdempotent(t *testing.T) {
	shifts := newMemShiftRepo(fullWeek()...)
	r := NewAttentionReconciler(fortyHourWorker(), shifts, nil)

	_, err := r.ReconcileWeek(context.Background(), "w1", date("2024-03-04"))
	require.NoError(t, err)
	first := shifts.updates

	_, err = r.ReconcileWeek(context.Background(), "w1", date("2024-03-10"))
	require.NoError(t, err)
	assert.Equal(t, first, shifts.updates)
}

func TestReconcileWeek_ClearsStaleFlag(t *testing.T) {
	week := fullWeek()[:5]
	week[0].RequiresAttention = true
	week[0].AttentionNote = strPtr(overtimeNotePrefix + ": 44.00h trabajadas")
	shifts := newMemShiftRepo(week...)
	r := NewAttentionReconciler(fortyHourWorker(), shifts, nil)

	got, err := r.ReconcileWeek(context.Background(), "w1", date("2024-03-04"))
	require.NoError(t, err)
	assert.False(t, got.Exceeded)

	mon := shifts.shifts["mon"]
	assert.False(t, mon.RequiresAttention)
	assert.Nil(t, mon.AttentionNote)
}

func TestReconcileWeek_PreservesAbsenceNotes(t *testing.T) {
	week := fullWeek()
	week[1].RequiresAttention = true
	week[1].AttentionNote = strPtr("Trabajador de baja, buscar sustituto")
	week[2].RequiresAttention = true
	week[2].AttentionNote = strPtr("Vacaciones aprobadas")
	shifts := newMemShiftRepo(week...)
	r := NewAttentionReconciler(fortyHourWorker(), shifts, nil)

	_, err := r.ReconcileWeek(context.Background(), "w1", date("2024-03-04"))
	require.NoError(t, err)

	assert.Equal(t, "Trabajador de baja, buscar sustituto", *shifts.shifts["tue"].AttentionNote)
	assert.Equal(t, "Vacaciones aprobadas", *shifts.shifts["wed"].AttentionNote)
	assert.True(t, strings.HasPrefix(*shifts.shifts["mon"].AttentionNote, overtimeNotePrefix))
}

func TestReconcileWeek_RetriesOnVersionConflict(t *testing.T) {
	shifts := newMemShiftRepo(fullWeek()[5])
	shifts.conflicts = maxUpdateRetries - 1
	workers := &memWorkerRepo{workers: map[string]worker.Worker{
		"w1": {ID: "w1", ContractedWeeklyHours: decimal.NewFromInt(2), Active: true},
	}}
	r := NewAttentionReconciler(workers, shifts, nil)

	_, err := r.ReconcileWeek(context.Background(), "w1", date("2024-03-09"))
	require.NoError(t, err)
	assert.True(t, shifts.shifts["sat"].RequiresAttention)
}

func TestReconcileWeek_GivesUpAfterRetries(t *testing.T) {
	shifts := newMemShiftRepo(fullWeek()[5])
	shifts.conflicts = maxUpdateRetries
	workers := &memWorkerRepo{workers: map[string]worker.Worker{
		"w1": {ID: "w1", ContractedWeeklyHours: decimal.NewFromInt(2), Active: true},
	}}
	r := NewAttentionReconciler(workers, shifts, nil)

	_, err := r.ReconcileWeek(context.Background(), "w1", date("2024-03-09"))
	require.Error(t, err)
	assert.True(t, IsContentionError(err))
	assert.False(t, shifts.shifts["sat"].RequiresAttention)
}

// recordingTx counts units of work and how many of them failed.
type recordingTx struct {
	calls    int
	rollback int
	fail     error
}

func (r *recordingTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	if r.fail != nil {
		return r.fail
	}
	if err := fn(ctx); err != nil {
		r.rollback++
		return err
	}
	return nil
}

func TestReconcileWeek_EachAttemptRunsInTransaction(t *testing.T) {
	shifts := newMemShiftRepo(fullWeek()[5])
	shifts.conflicts = maxUpdateRetries - 1
	workers := &memWorkerRepo{workers: map[string]worker.Worker{
		"w1": {ID: "w1", ContractedWeeklyHours: decimal.NewFromInt(2), Active: true},
	}}
	tx := &recordingTx{}
	r := NewAttentionReconciler(workers, shifts, tx)

	_, err := r.ReconcileWeek(context.Background(), "w1", date("2024-03-09"))
	require.NoError(t, err)
	assert.Equal(t, maxUpdateRetries, tx.calls)
	assert.Zero(t, tx.rollback)
	assert.True(t, shifts.shifts["sat"].RequiresAttention)
}

func TestReconcileWeek_TransactionErrorPropagates(t *testing.T) {
	shifts := newMemShiftRepo(fullWeek()...)
	tx := &recordingTx{fail: errors.New("begin transaction: connection refused")}
	r := NewAttentionReconciler(fortyHourWorker(), shifts, tx)

	_, err := r.ReconcileWeek(context.Background(), "w1", date("2024-03-04"))
	require.Error(t, err)
	assert.ErrorIs(t, err, tx.fail)
	assert.Zero(t, shifts.updates)
}

func TestReconcileWeek_ShiftsOnAbsentDaysStillCount(t *testing.T) {
	// Mon and Tue are covered by a sick leave; the planner still sees 32h against 16h.
	week := []shift.Shift{
		mkShift("mon", "2024-02-26", "08:00", "16:00"),
		mkShift("tue", "2024-02-27", "08:00", "16:00"),
		mkShift("thu", "2024-02-29", "08:00", "16:00"),
		mkShift("fri", "2024-03-01", "08:00", "16:00"),
	}
	week[0].RequiresAttention = true
	week[0].AttentionNote = strPtr("Trabajador de baja")
	week[1].RequiresAttention = true
	week[1].AttentionNote = strPtr("Trabajador de baja")
	shifts := newMemShiftRepo(week...)
	workers := &memWorkerRepo{workers: map[string]worker.Worker{
		"w1": {ID: "w1", ContractedWeeklyHours: decimal.NewFromInt(16), Active: true},
	}}
	r := NewAttentionReconciler(workers, shifts, nil)

	got, err := r.ReconcileWeek(context.Background(), "w1", date("2024-03-01"))
	require.NoError(t, err)
	assert.True(t, got.Exceeded)
	assert.Equal(t, 16.0, got.OvertimeHours)
	assert.True(t, shifts.shifts["fri"].RequiresAttention)
	assert.Equal(t, "Trabajador de baja", *shifts.shifts["mon"].AttentionNote)
}

func TestReconcileWeek_UnknownWorker(t *testing.T) {
	r := NewAttentionReconciler(&memWorkerRepo{workers: map[string]worker.Worker{}}, newMemShiftRepo(), nil)

	_, err := r.ReconcileWeek(context.Background(), "nope", date("2024-03-04"))
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestIsAbsenceNote(t *testing.T) {
	assert.False(t, IsAbsenceNote(nil))
	assert.False(t, IsAbsenceNote(strPtr("Excede horas de contrato")))
	assert.True(t, IsAbsenceNote(strPtr("AUSENCIA del titular")))
	assert.True(t, IsAbsenceNote(strPtr("Worker on leave")))
}

func TestIsAbsenceNote_MatchesWholeWords(t *testing.T) {
	assert.False(t, IsAbsenceNote(strPtr("Horas trabajadas revisadas")))
	assert.True(t, IsAbsenceNote(strPtr("Cubre baja de Juan")))
}

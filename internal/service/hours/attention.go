package hours

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
)

const (
	overtimeNotePrefix = "Excede horas de contrato"
	maxUpdateRetries   = 3
)

// absenceKeywords mark attention notes written for reasons other than weekly overtime.
var absenceKeywords = []string{
	"ausencia",
	"baja",
	"vacaciones",
	"vacante",
	"permiso",
	"absence",
	"vacancy",
	"leave",
}

// IsAbsenceNote reports whether note was left by the absence or vacancy flows.
func IsAbsenceNote(note *string) bool {
	if note == nil {
		return false
	}
	if strings.HasPrefix(*note, overtimeNotePrefix) {
		return false
	}
	words := strings.FieldsFunc(strings.ToLower(*note), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if slices.Contains(absenceKeywords, w) {
			return true
		}
	}
	return false
}

func overtimeNote(week shift.WeekAllocation) string {
	return fmt.Sprintf("%s: %.2fh trabajadas de %.2fh semanales (semana del %s)",
		overtimeNotePrefix, week.TotalHours, week.ContractedHours, week.WeekStart.Format("2006-01-02"))
}

// Transactor runs fn as one unit of work; repositories called with the ctx
// handed to fn take part in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AttentionReconciler struct {
	workerRepo worker.WorkerRepository
	shiftRepo  shift.ShiftRepository
	tx         Transactor
}

// NewAttentionReconciler builds a reconciler. A nil tx runs each read-update pair without a transaction.
func NewAttentionReconciler(workerRepo worker.WorkerRepository, shiftRepo shift.ShiftRepository, tx Transactor) *AttentionReconciler {
	return &AttentionReconciler{
		workerRepo: workerRepo,
		shiftRepo:  shiftRepo,
		tx:         tx,
	}
}

// ReconcileWeek recomputes the week containing day for workerID and flags every shift of
// an over-contract week for attention. Flags set for absence reasons are left untouched.
// Every active shift counts against the contract, including shifts on days covered by an
// absence: the flag warns the planner about the week as scheduled.
func (r *AttentionReconciler) ReconcileWeek(ctx context.Context, workerID string, day time.Time) (shift.WeekAllocation, error) {
	w, err := r.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return shift.WeekAllocation{}, err
	}

	from, to := WeekStart(day), WeekEnd(day)
	shifts, err := r.shiftRepo.ListActiveByWorker(ctx, workerID, from, to)
	if err != nil {
		return shift.WeekAllocation{}, fmt.Errorf("failed to list week shifts: %w", err)
	}

	allocations, err := AllocateWeek(w.ContractedWeeklyHours, shifts)
	if err != nil {
		return shift.WeekAllocation{}, err
	}
	week := SummarizeWeek(workerID, from, w.ContractedWeeklyHours, allocations)

	note := overtimeNote(week)
	for _, s := range shifts {
		if err := r.reconcileShift(ctx, s.ID, week.Exceeded, note); err != nil {
			return shift.WeekAllocation{}, err
		}
	}

	slog.Info("Weekly attention reconciled",
		"worker_id", workerID,
		"week_start", from.Format("2006-01-02"),
		"total_hours", week.TotalHours,
		"exceeded", week.Exceeded,
	)
	return week, nil
}

// reconcileShift runs a read-mutate-write loop guarded by the shift row version.
// Each attempt reads and writes inside one transaction.
func (r *AttentionReconciler) reconcileShift(ctx context.Context, shiftID string, exceeded bool, note string) error {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		var done bool
		err := r.withinTransaction(ctx, func(ctx context.Context) error {
			current, err := r.shiftRepo.GetByID(ctx, shiftID)
			if err != nil {
				return err
			}

			requires, newNote, changed := desiredAttention(current, exceeded, note)
			if !changed {
				done = true
				return nil
			}

			done, err = r.shiftRepo.UpdateAttentionIfVersion(ctx, shiftID, requires, newNote, current.RowVersion)
			if err != nil {
				return fmt.Errorf("failed to update attention for shift %s: %w", shiftID, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		slog.Debug("Shift attention version conflict, retrying", "shift_id", shiftID, "attempt", attempt+1)
	}
	return fmt.Errorf("%w %q", shift.ErrTooMuchContention, shiftID)
}

func (r *AttentionReconciler) withinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.tx == nil {
		return fn(ctx)
	}
	return r.tx.WithinTransaction(ctx, fn)
}

// desiredAttention decides the flag and note a shift should carry.
func desiredAttention(current shift.Shift, exceeded bool, note string) (bool, *string, bool) {
	if IsAbsenceNote(current.AttentionNote) {
		return current.RequiresAttention, current.AttentionNote, false
	}

	if exceeded {
		if current.RequiresAttention && current.AttentionNote != nil && *current.AttentionNote == note {
			return true, current.AttentionNote, false
		}
		return true, &note, true
	}

	if !current.RequiresAttention && current.AttentionNote == nil {
		return false, nil, false
	}
	return false, nil, true
}

// IsContentionError reports whether err came from exhausting optimistic retries.
func IsContentionError(err error) bool {
	return errors.Is(err, shift.ErrTooMuchContention)
}

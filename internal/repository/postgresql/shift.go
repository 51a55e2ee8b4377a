package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftSelect = `
	SELECT s.id, s.worker_id, s.center_id, s.date,
		   to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
		   s.status, s.origin, s.requires_attention, s.attention_note, s.row_version,
		   s.created_at, s.updated_at, c.name
	FROM shifts s
	LEFT JOIN centers c ON c.id = s.center_id
`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.WorkerID, &s.CenterID, &s.Date,
		&s.StartTime, &s.EndTime,
		&s.Status, &s.Origin, &s.RequiresAttention, &s.AttentionNote, &s.RowVersion,
		&s.CreatedAt, &s.UpdatedAt, &s.CenterName,
	)
	return s, err
}

func activeStatuses() []string {
	out := make([]string, len(shift.ActiveStatuses))
	for i, s := range shift.ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRow(ctx, shiftSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

// ListActiveByWorker implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListActiveByWorker(ctx context.Context, workerID string, from, to time.Time) ([]shift.Shift, error) {
	return r.ListActiveByWorkers(ctx, []string{workerID}, from, to)
}

// ListActiveByWorkers implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListActiveByWorkers(ctx context.Context, workerIDs []string, from, to time.Time) ([]shift.Shift, error) {
	if len(workerIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := shiftSelect + `
		WHERE s.worker_id = ANY($1)
		  AND s.date BETWEEN $2 AND $3
		  AND s.status = ANY($4)
		ORDER BY s.date, s.start_time, s.id
	`
	rows, err := q.Query(ctx, query, workerIDs, from.Format("2006-01-02"), to.Format("2006-01-02"), activeStatuses())
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}

// UpdateAttentionIfVersion implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) UpdateAttentionIfVersion(ctx context.Context, id string, requiresAttention bool, note *string, expectedVersion int64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET requires_attention = $2,
			attention_note = $3,
			row_version = row_version + 1,
			updated_at = NOW()
		WHERE id = $1 AND row_version = $4
	`
	tag, err := q.Exec(ctx, query, id, requiresAttention, note, expectedVersion)
	if err != nil {
		return false, fmt.Errorf("failed to update shift attention: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/database"
)

type absenceRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) absence.AbsenceRepository {
	return &absenceRepositoryImpl{db: db}
}

const absenceSelect = `
	SELECT a.id, a.worker_id, a.absence_type_id, a.start_date, a.end_date,
		   a.early_return_date, a.status, a.notes, a.created_at, a.updated_at,
		   ` + absenceTypeColumns + `
	FROM absences a
	JOIN absence_types t ON t.id = a.absence_type_id
`

func scanAbsence(row pgx.Row) (absence.Absence, error) {
	var a absence.Absence
	var t absence.AbsenceType
	var tiersJSON []byte

	dest := []interface{}{
		&a.ID, &a.WorkerID, &a.AbsenceTypeID, &a.StartDate, &a.EndDate,
		&a.EarlyReturnDate, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	}
	dest = append(dest, absenceTypeDest(&t, &tiersJSON)...)
	if err := row.Scan(dest...); err != nil {
		return absence.Absence{}, err
	}
	if err := decodeTiers(tiersJSON, &t); err != nil {
		return absence.Absence{}, err
	}
	a.Type = &t
	return a, nil
}

// GetByID implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) GetByID(ctx context.Context, id string) (absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAbsence(q.QueryRow(ctx, absenceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.Absence{}, absence.ErrAbsenceNotFound
		}
		return absence.Absence{}, fmt.Errorf("failed to get absence: %w", err)
	}
	return a, nil
}

// ListByWorkersOverlapping implements absence.AbsenceRepository.
func (r *absenceRepositoryImpl) ListByWorkersOverlapping(ctx context.Context, workerIDs []string, from, to time.Time, statuses []absence.Status) ([]absence.Absence, error) {
	if len(workerIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	statusValues := make([]string, len(statuses))
	for i, s := range statuses {
		statusValues[i] = string(s)
	}

	query := absenceSelect + `
		WHERE a.worker_id = ANY($1)
		  AND a.start_date <= $3
		  AND LEAST(a.end_date, COALESCE(a.early_return_date, a.end_date)) >= $2
		  AND a.status = ANY($4)
		ORDER BY a.start_date, a.id
	`
	rows, err := q.Query(ctx, query, workerIDs, from.Format("2006-01-02"), to.Format("2006-01-02"), statusValues)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	defer rows.Close()

	var absences []absence.Absence
	for rows.Next() {
		a, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absences: %w", err)
	}
	return absences, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/worker"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/database"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

// Missing category values read as zero.
const workerSelect = `
	SELECT w.id, w.full_name, w.contracted_weekly_hours, w.category_id, w.active,
		   w.created_at, w.updated_at,
		   COALESCE(c.id::text, ''), COALESCE(c.name, ''),
		   COALESCE(c.base_hourly_price, 0), COALESCE(c.base_monthly_salary, 0),
		   COALESCE(c.transport_plus, 0), COALESCE(c.hazard_plus, 0),
		   COALESCE(c.night_surcharge_pct, 0), COALESCE(c.holiday_surcharge_pct, 0),
		   COALESCE(c.overtime_surcharge_pct, 0), COALESCE(c.overtime_surcharge_pct_2, 0)
	FROM workers w
	LEFT JOIN categories c ON c.id = w.category_id
`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.FullName, &w.ContractedWeeklyHours, &w.CategoryID, &w.Active,
		&w.CreatedAt, &w.UpdatedAt,
		&w.Category.ID, &w.Category.Name,
		&w.Category.BaseHourlyPrice, &w.Category.BaseMonthlySalary,
		&w.Category.TransportPlus, &w.Category.HazardPlus,
		&w.Category.NightSurchargePct, &w.Category.HolidaySurchargePct,
		&w.Category.OvertimeSurchargePct, &w.Category.OvertimeSurchargePct2,
	)
	return w, err
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	w, err := scanWorker(q.QueryRow(ctx, workerSelect+` WHERE w.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}

	agreements, err := r.agreementsFor(ctx, []string{id})
	if err != nil {
		return worker.Worker{}, err
	}
	w.Agreements = agreements[id]
	return w, nil
}

// ListByIDs implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListByIDs(ctx context.Context, ids []string) ([]worker.Worker, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, workerSelect+` WHERE w.id = ANY($1) ORDER BY w.full_name, w.id`, ids)
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListActive(ctx context.Context) ([]worker.Worker, error) {
	return r.list(ctx, workerSelect+` WHERE w.active ORDER BY w.full_name, w.id`)
}

func (r *workerRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}

	ids := make([]string, len(workers))
	for i, w := range workers {
		ids[i] = w.ID
	}
	agreements, err := r.agreementsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range workers {
		workers[i].Agreements = agreements[workers[i].ID]
	}
	return workers, nil
}

// agreementsFor loads the individual agreements of the given workers in insertion order.
func (r *workerRepositoryImpl) agreementsFor(ctx context.Context, workerIDs []string) (map[string][]worker.IndividualAgreement, error) {
	out := make(map[string][]worker.IndividualAgreement, len(workerIDs))
	if len(workerIDs) == 0 {
		return out, nil
	}

	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, worker_id, center_id, agreement_type, value, description,
			   active, valid_from, valid_to
		FROM individual_agreements
		WHERE worker_id = ANY($1)
		ORDER BY created_at, id
	`
	rows, err := q.Query(ctx, query, workerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list agreements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a worker.IndividualAgreement
		if err := rows.Scan(
			&a.ID, &a.WorkerID, &a.CenterID, &a.Type, &a.Value, &a.Description,
			&a.Active, &a.ValidFrom, &a.ValidTo,
		); err != nil {
			return nil, fmt.Errorf("failed to scan agreement: %w", err)
		}
		out[a.WorkerID] = append(out[a.WorkerID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agreements: %w", err)
	}
	return out, nil
}

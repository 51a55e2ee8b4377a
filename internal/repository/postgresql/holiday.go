package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/holiday"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time, region string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, scope, region, created_at
		FROM holidays
		WHERE date BETWEEN $1 AND $2
		  AND (scope = 'national' OR (scope = 'regional' AND region = $3))
		ORDER BY date, id
	`
	rows, err := q.Query(ctx, query, from.Format("2006-01-02"), to.Format("2006-01-02"), region)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Scope, &h.Region, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}
	return holidays, nil
}

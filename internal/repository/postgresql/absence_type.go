package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/database"
)

type absenceTypeRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceTypeRepository(db *database.DB) absence.AbsenceTypeRepository {
	return &absenceTypeRepositoryImpl{db: db}
}

const absenceTypeColumns = `t.id, t.code, t.name, t.color, t.payable, t.flat_percentage,
		   t.uses_tiers, t.tiers, t.carency_days, t.base_calculation_mode, t.per_day_cap,
		   t.created_at, t.updated_at`

func absenceTypeDest(t *absence.AbsenceType, tiersJSON *[]byte) []interface{} {
	return []interface{}{
		&t.ID, &t.Code, &t.Name, &t.Color, &t.Payable, &t.FlatPercentage,
		&t.UsesTiers, tiersJSON, &t.CarencyDays, &t.BaseCalculationMode, &t.PerDayCap,
		&t.CreatedAt, &t.UpdatedAt,
	}
}

// decodeTiers parses the tiers JSONB column, e.g. [{"day_from":1,"day_to":3,"percentage":"0"}].
func decodeTiers(raw []byte, t *absence.AbsenceType) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &t.Tiers); err != nil {
		return fmt.Errorf("failed to decode tiers of absence type %s: %w", t.ID, err)
	}
	return nil
}

func scanAbsenceType(row pgx.Row) (absence.AbsenceType, error) {
	var t absence.AbsenceType
	var tiersJSON []byte
	if err := row.Scan(absenceTypeDest(&t, &tiersJSON)...); err != nil {
		return absence.AbsenceType{}, err
	}
	if err := decodeTiers(tiersJSON, &t); err != nil {
		return absence.AbsenceType{}, err
	}
	return t, nil
}

// GetByID implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) GetByID(ctx context.Context, id string) (absence.AbsenceType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + absenceTypeColumns + ` FROM absence_types t WHERE t.id = $1`
	t, err := scanAbsenceType(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
		}
		return absence.AbsenceType{}, fmt.Errorf("failed to get absence type: %w", err)
	}
	return t, nil
}

// ListByIDs implements absence.AbsenceTypeRepository.
func (r *absenceTypeRepositoryImpl) ListByIDs(ctx context.Context, ids []string) ([]absence.AbsenceType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + absenceTypeColumns + ` FROM absence_types t WHERE t.id = ANY($1) ORDER BY t.code`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence types: %w", err)
	}
	defer rows.Close()

	var types []absence.AbsenceType
	for rows.Next() {
		t, err := scanAbsenceType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absence types: %w", err)
	}
	return types, nil
}

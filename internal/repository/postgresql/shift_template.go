package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/redeposto/ponto-backend-go/internal/domain/schedule"
	"github.com/redeposto/ponto-backend-go/internal/pkg/database"
)

type shiftTemplateRepository struct {
	db *database.DB
}

const shiftTemplateColumns = `
	station_id, name, entry_minute, lunch_out_minute, lunch_in_minute, exit_minute,
	work_minutes_expected, updated_at`

func scanShiftTemplate(row pgx.Row) (schedule.ShiftTemplate, error) {
	var t schedule.ShiftTemplate
	err := row.Scan(
		&t.StationID, &t.Name, &t.EntryMinute, &t.LunchOutMinute, &t.LunchInMinute, &t.ExitMinute,
		&t.WorkMinutesExpected, &t.UpdatedAt,
	)
	return t, err
}

// Get implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepository) Get(ctx context.Context, stationID string, name string) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTemplateColumns + ` FROM shift_templates WHERE station_id = $1 AND name = $2`

	t, err := scanShiftTemplate(q.QueryRow(ctx, query, stationID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ShiftTemplate{}, schedule.ErrShiftTemplateNotFound
		}
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to get shift template: %w", err)
	}
	return t, nil
}

// List implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepository) List(ctx context.Context, stationID string) ([]schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftTemplateColumns + ` FROM shift_templates WHERE station_id = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, stationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	templates := make([]schedule.ShiftTemplate, 0)
	for rows.Next() {
		t, err := scanShiftTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Upsert implements schedule.ShiftTemplateRepository.
func (r *shiftTemplateRepository) Upsert(ctx context.Context, t schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_templates (
			station_id, name, entry_minute, lunch_out_minute, lunch_in_minute, exit_minute, work_minutes_expected
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (station_id, name) DO UPDATE SET
			entry_minute = EXCLUDED.entry_minute,
			lunch_out_minute = EXCLUDED.lunch_out_minute,
			lunch_in_minute = EXCLUDED.lunch_in_minute,
			exit_minute = EXCLUDED.exit_minute,
			work_minutes_expected = EXCLUDED.work_minutes_expected,
			updated_at = NOW()
		RETURNING ` + shiftTemplateColumns

	saved, err := scanShiftTemplate(q.QueryRow(ctx, query,
		t.StationID, t.Name, t.EntryMinute, t.LunchOutMinute, t.LunchInMinute, t.ExitMinute, t.WorkMinutesExpected,
	))
	if err != nil {
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to upsert shift template: %w", err)
	}
	return saved, nil
}

func NewShiftTemplateRepository(db *database.DB) schedule.ShiftTemplateRepository {
	return &shiftTemplateRepository{db: db}
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/redeposto/ponto-backend-go/internal/domain/punch"
	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
	"github.com/redeposto/ponto-backend-go/internal/pkg/database"
)

type punchRepository struct {
	db  *database.DB
	loc *time.Location
}

const punchColumns = `
	p.id, p.employee_id, p.station_id, p.punched_at, p.marked_absent, p.absence_kind,
	p.status, p.photo_path, p.reviewed_by, p.reviewed_at, p.rejection_reason,
	p.created_at, p.updated_at, e.full_name`

// scanPunch leaves PunchedAt zero when the stored value is null or infinite.
func scanPunch(row pgx.Row) (punch.Punch, error) {
	var (
		p         punch.Punch
		punchedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.StationID, &punchedAt, &p.MarkedAbsent, &p.AbsenceKind,
		&p.Status, &p.PhotoPath, &p.ReviewedBy, &p.ReviewedAt, &p.RejectionReason,
		&p.CreatedAt, &p.UpdatedAt, &p.EmployeeName,
	)
	if err != nil {
		return p, err
	}
	if t, ok := timesheet.Normalize(punchedAt, time.UTC); ok {
		p.PunchedAt = t.UTC()
	}
	return p, nil
}

// Create implements punch.PunchRepository.
func (r *punchRepository) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to generate punch id: %w", err)
	}
	p.ID = id.String()
	if p.Status == "" {
		p.Status = punch.StatusPending
	}

	query := `
		INSERT INTO punches (
			id, employee_id, station_id, punched_at, marked_absent, absence_kind, status, photo_path
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at, (SELECT full_name FROM employees WHERE id = $2)
	`

	err = q.QueryRow(ctx, query,
		p.ID, p.EmployeeID, p.StationID, p.PunchedAt.UTC(), p.MarkedAbsent, p.AbsenceKind, p.Status, p.PhotoPath,
	).Scan(&p.CreatedAt, &p.UpdatedAt, &p.EmployeeName)
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return p, nil
}

// GetByID implements punch.PunchRepository.
func (r *punchRepository) GetByID(ctx context.Context, id string, stationID string) (punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + `
		FROM punches p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.station_id = $2
	`

	p, err := scanPunch(q.QueryRow(ctx, query, id, stationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to get punch: %w", err)
	}
	return p, nil
}

// UpdateReview implements punch.PunchRepository.
func (r *punchRepository) UpdateReview(ctx context.Context, p punch.Punch) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE punches
		SET status = $1, reviewed_by = $2, reviewed_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND station_id = $6
	`

	tag, err := q.Exec(ctx, query, p.Status, p.ReviewedBy, p.ReviewedAt, p.RejectionReason, p.ID, p.StationID)
	if err != nil {
		return fmt.Errorf("failed to update punch review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return punch.ErrPunchNotFound
	}
	return nil
}

// Delete implements punch.PunchRepository.
func (r *punchRepository) Delete(ctx context.Context, id string, stationID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM punches WHERE id = $1 AND station_id = $2`, id, stationID)
	if err != nil {
		return fmt.Errorf("failed to delete punch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return punch.ErrPunchNotFound
	}
	return nil
}

// List implements punch.PunchRepository. Date filters are local calendar days.
func (r *punchRepository) List(ctx context.Context, filter punch.PunchFilter, stationID string) ([]punch.Punch, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "p.station_id = $1"
	args := []interface{}{stationID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND p.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.EmployeeName != nil && *filter.EmployeeName != "" {
		baseWhere += fmt.Sprintf(" AND e.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.EmployeeName+"%")
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		if start, err := time.ParseInLocation("2006-01-02", *filter.StartDate, r.loc); err == nil {
			baseWhere += fmt.Sprintf(" AND p.punched_at >= $%d", argIdx)
			args = append(args, start.UTC())
			argIdx++
		}
	}

	if filter.EndDate != nil && *filter.EndDate != "" {
		if end, err := time.ParseInLocation("2006-01-02", *filter.EndDate, r.loc); err == nil {
			baseWhere += fmt.Sprintf(" AND p.punched_at < $%d", argIdx)
			args = append(args, end.AddDate(0, 0, 1).UTC())
			argIdx++
		}
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND p.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.MarkedAbsent != nil {
		baseWhere += fmt.Sprintf(" AND p.marked_absent = $%d", argIdx)
		args = append(args, *filter.MarkedAbsent)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM punches p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count punches: %w", err)
	}

	orderByField := "p.punched_at"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "status":
		orderByField = "p.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM punches p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY %s %s, p.id
		LIMIT $%d OFFSET $%d
	`, punchColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (max(filter.Page, 1) - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate punches: %w", err)
	}

	return punches, total, nil
}

// ListInRange implements punch.PunchRepository.
func (r *punchRepository) ListInRange(ctx context.Context, employeeID string, from, to time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchColumns + `
		FROM punches p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1
		  AND p.punched_at >= $2 AND p.punched_at < $3
		  AND p.status <> 'rejected'
		ORDER BY p.punched_at, p.id
	`

	rows, err := q.Query(ctx, query, employeeID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query punches in range: %w", err)
	}
	defer rows.Close()

	punches := make([]punch.Punch, 0)
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

// HasAbsenceMarker implements punch.PunchRepository.
func (r *punchRepository) HasAbsenceMarker(ctx context.Context, employeeID string, at time.Time, kind string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM punches
			WHERE employee_id = $1 AND punched_at = $2 AND marked_absent
			  AND absence_kind = $3 AND status <> 'rejected'
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, at.UTC(), kind).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check absence marker: %w", err)
	}
	return exists, nil
}

// NewPunchRepository returns a repository that reads local-date filters in loc.
func NewPunchRepository(db *database.DB, loc *time.Location) punch.PunchRepository {
	return &punchRepository{db: db, loc: loc}
}

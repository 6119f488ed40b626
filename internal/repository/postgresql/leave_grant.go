package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/redeposto/ponto-backend-go/internal/domain/leave"
	"github.com/redeposto/ponto-backend-go/internal/pkg/database"
)

// PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

type leaveGrantRepository struct {
	db *database.DB
}

const leaveGrantColumns = `
	g.id, g.employee_id, g.station_id, g.date, g.excused_slot, g.reason, g.granted_by,
	g.created_at, e.full_name`

func scanLeaveGrant(row pgx.Row) (leave.LeaveGrant, error) {
	var g leave.LeaveGrant
	err := row.Scan(
		&g.ID, &g.EmployeeID, &g.StationID, &g.Date, &g.ExcusedSlot, &g.Reason, &g.GrantedBy,
		&g.CreatedAt, &g.EmployeeName,
	)
	return g, err
}

// Create implements leave.LeaveGrantRepository.
func (r *leaveGrantRepository) Create(ctx context.Context, g leave.LeaveGrant) (leave.LeaveGrant, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveGrant{}, fmt.Errorf("failed to generate leave grant id: %w", err)
	}
	g.ID = id.String()

	query := `
		INSERT INTO leave_grants (id, employee_id, station_id, date, excused_slot, reason, granted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, (SELECT full_name FROM employees WHERE id = $2)
	`

	err = q.QueryRow(ctx, query,
		g.ID, g.EmployeeID, g.StationID, g.Date, g.ExcusedSlot, g.Reason, g.GrantedBy,
	).Scan(&g.CreatedAt, &g.EmployeeName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return leave.LeaveGrant{}, leave.ErrLeaveGrantExists
		}
		return leave.LeaveGrant{}, fmt.Errorf("failed to create leave grant: %w", err)
	}

	return g, nil
}

// GetByID implements leave.LeaveGrantRepository.
func (r *leaveGrantRepository) GetByID(ctx context.Context, id string, stationID string) (leave.LeaveGrant, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveGrantColumns + `
		FROM leave_grants g
		LEFT JOIN employees e ON e.id = g.employee_id
		WHERE g.id = $1 AND g.station_id = $2
	`

	g, err := scanLeaveGrant(q.QueryRow(ctx, query, id, stationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveGrant{}, leave.ErrLeaveGrantNotFound
		}
		return leave.LeaveGrant{}, fmt.Errorf("failed to get leave grant: %w", err)
	}
	return g, nil
}

// Delete implements leave.LeaveGrantRepository.
func (r *leaveGrantRepository) Delete(ctx context.Context, id string, stationID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_grants WHERE id = $1 AND station_id = $2`, id, stationID)
	if err != nil {
		return fmt.Errorf("failed to delete leave grant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveGrantNotFound
	}
	return nil
}

// List implements leave.LeaveGrantRepository.
func (r *leaveGrantRepository) List(ctx context.Context, filter leave.LeaveGrantFilter, stationID string) ([]leave.LeaveGrant, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "g.station_id = $1"
	args := []interface{}{stationID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND g.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND g.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND g.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
	}

	query := `SELECT ` + leaveGrantColumns + `
		FROM leave_grants g
		LEFT JOIN employees e ON e.id = g.employee_id
		WHERE ` + baseWhere + `
		ORDER BY g.date DESC, e.full_name, g.excused_slot
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave grants: %w", err)
	}
	defer rows.Close()

	grants := make([]leave.LeaveGrant, 0)
	for rows.Next() {
		g, err := scanLeaveGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// ListByEmployee implements leave.LeaveGrantRepository.
func (r *leaveGrantRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveGrant, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveGrantColumns + `
		FROM leave_grants g
		LEFT JOIN employees e ON e.id = g.employee_id
		WHERE g.employee_id = $1 AND g.date BETWEEN $2 AND $3
		ORDER BY g.date, g.excused_slot
	`

	rows, err := q.Query(ctx, query, employeeID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query employee leave grants: %w", err)
	}
	defer rows.Close()

	grants := make([]leave.LeaveGrant, 0)
	for rows.Next() {
		g, err := scanLeaveGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave grant: %w", err)
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

func NewLeaveGrantRepository(db *database.DB) leave.LeaveGrantRepository {
	return &leaveGrantRepository{db: db}
}

package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/employee"
	"github.com/redeposto/ponto-backend-go/internal/domain/leave"
	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/pkg/jwt"
)

type LeaveGrantServiceImpl struct {
	leaveGrantRepo leave.LeaveGrantRepository
	employeeRepo   employee.EmployeeRepository
}

// CreateLeaveGrant implements leave.LeaveGrantService.
func (s *LeaveGrantServiceImpl) CreateLeaveGrant(ctx context.Context, req leave.CreateLeaveGrantRequest) (leave.LeaveGrantResponse, error) {
	principal, err := s.reviewer(ctx)
	if err != nil {
		return leave.LeaveGrantResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveGrantResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveGrantResponse{}, employee.ErrEmployeeNotFound
		}
		return leave.LeaveGrantResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.StationID != principal.StationID {
		return leave.LeaveGrantResponse{}, employee.ErrEmployeeNotFound
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := s.leaveGrantRepo.Create(ctx, leave.LeaveGrant{
		EmployeeID:  emp.ID,
		StationID:   emp.StationID,
		Date:        date,
		ExcusedSlot: timesheet.Slot(req.ExcusedSlot),
		Reason:      req.Reason,
		GrantedBy:   principal.UserID,
	})
	if err != nil {
		if errors.Is(err, leave.ErrLeaveGrantExists) {
			return leave.LeaveGrantResponse{}, leave.ErrLeaveGrantExists
		}
		return leave.LeaveGrantResponse{}, fmt.Errorf("failed to create leave grant: %w", err)
	}
	if created.EmployeeName == nil {
		created.EmployeeName = &emp.FullName
	}

	return mapLeaveGrantToResponse(created), nil
}

// ListLeaveGrants implements leave.LeaveGrantService.
func (s *LeaveGrantServiceImpl) ListLeaveGrants(ctx context.Context, filter leave.LeaveGrantFilter) ([]leave.LeaveGrantResponse, error) {
	principal, err := s.reviewer(ctx)
	if err != nil {
		return nil, err
	}

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	grants, err := s.leaveGrantRepo.List(ctx, filter, principal.StationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave grants: %w", err)
	}

	responses := make([]leave.LeaveGrantResponse, 0, len(grants))
	for _, g := range grants {
		responses = append(responses, mapLeaveGrantToResponse(g))
	}
	return responses, nil
}

// DeleteLeaveGrant implements leave.LeaveGrantService.
func (s *LeaveGrantServiceImpl) DeleteLeaveGrant(ctx context.Context, id string) error {
	principal, err := s.reviewer(ctx)
	if err != nil {
		return err
	}

	if err := s.leaveGrantRepo.Delete(ctx, id, principal.StationID); err != nil {
		if errors.Is(err, leave.ErrLeaveGrantNotFound) {
			return leave.ErrLeaveGrantNotFound
		}
		return fmt.Errorf("failed to delete leave grant: %w", err)
	}
	return nil
}

func (s *LeaveGrantServiceImpl) reviewer(ctx context.Context) (user.Principal, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return user.Principal{}, err
	}
	if !principal.CanReview() {
		return user.Principal{}, user.ErrManagerAccessRequired
	}
	return principal, nil
}

func mapLeaveGrantToResponse(g leave.LeaveGrant) leave.LeaveGrantResponse {
	var employeeName string
	if g.EmployeeName != nil {
		employeeName = *g.EmployeeName
	}

	return leave.LeaveGrantResponse{
		ID:           g.ID,
		EmployeeID:   g.EmployeeID,
		EmployeeName: employeeName,
		Date:         g.Date.Format("2006-01-02"),
		ExcusedSlot:  string(g.ExcusedSlot),
		SlotLabel:    g.ExcusedSlot.Label(),
		Reason:       g.Reason,
		GrantedBy:    g.GrantedBy,
		CreatedAt:    g.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewLeaveGrantService(leaveGrantRepo leave.LeaveGrantRepository, employeeRepo employee.EmployeeRepository) leave.LeaveGrantService {
	return &LeaveGrantServiceImpl{
		leaveGrantRepo: leaveGrantRepo,
		employeeRepo:   employeeRepo,
	}
}

package punch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/employee"
	"github.com/redeposto/ponto-backend-go/internal/domain/punch"
	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/pkg/jwt"
	"github.com/redeposto/ponto-backend-go/internal/pkg/storage"
	"github.com/redeposto/ponto-backend-go/internal/repository/postgresql"
	"github.com/redeposto/ponto-backend-go/internal/service/file"
)

type PunchServiceImpl struct {
	transactor postgresql.Transactor
	punch.PunchRepository
	employee.EmployeeRepository
	photoService file.PhotoService
	loc          *time.Location
	now          func() time.Time
}

// RecordPunch implements punch.PunchService.
func (s *PunchServiceImpl) RecordPunch(ctx context.Context, req punch.RecordPunchRequest) (punch.PunchResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	if principal.EmployeeID == "" {
		return punch.PunchResponse{}, user.ErrEmployeeIDRequired
	}

	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	emp, err := s.stationEmployee(ctx, principal.EmployeeID, principal.StationID)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	now := s.now().UTC()
	p := punch.Punch{
		EmployeeID: emp.ID,
		StationID:  emp.StationID,
		PunchedAt:  now,
		Status:     punch.StatusPending,
	}

	if req.HasPhoto() {
		path, err := s.photoService.UploadPunchPhoto(ctx, emp.ID, now, req.File, req.FileHeader.Filename)
		if err != nil {
			return punch.PunchResponse{}, fmt.Errorf("failed to store punch photo: %w", err)
		}
		p.PhotoPath = &path
	}

	created, err := s.PunchRepository.Create(ctx, p)
	if err != nil {
		if p.PhotoPath != nil {
			if delErr := s.photoService.Delete(ctx, *p.PhotoPath); delErr != nil {
				slog.Warn("failed to remove orphan punch photo", "path", *p.PhotoPath, "error", delErr)
			}
		}
		return punch.PunchResponse{}, fmt.Errorf("failed to record punch: %w", err)
	}

	return s.mapPunchToResponse(created), nil
}

// RecordAbsence implements punch.PunchService.
func (s *PunchServiceImpl) RecordAbsence(ctx context.Context, req punch.RecordAbsenceRequest) (punch.PunchResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	if !principal.CanReview() {
		return punch.PunchResponse{}, user.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	emp, err := s.stationEmployee(ctx, req.EmployeeID, principal.StationID)
	if err != nil {
		return punch.PunchResponse{}, err
	}

	// Markers sit at local noon so they fall inside both day and night windows.
	date, _ := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	at := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, s.loc).UTC()
	kind := strings.TrimSpace(req.AbsenceKind)
	now := s.now().UTC()

	var created punch.Punch
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.PunchRepository.HasAbsenceMarker(txCtx, emp.ID, at, kind)
		if err != nil {
			return fmt.Errorf("failed to check absence markers: %w", err)
		}
		if exists {
			return punch.ErrAbsenceAlreadyMarked
		}

		created, err = s.PunchRepository.Create(txCtx, punch.Punch{
			EmployeeID:   emp.ID,
			StationID:    emp.StationID,
			PunchedAt:    at,
			MarkedAbsent: true,
			AbsenceKind:  &kind,
			Status:       punch.StatusApproved,
			ReviewedBy:   &principal.UserID,
			ReviewedAt:   &now,
		})
		if err != nil {
			return fmt.Errorf("failed to record absence: %w", err)
		}
		return nil
	})
	if err != nil {
		return punch.PunchResponse{}, err
	}

	return s.mapPunchToResponse(created), nil
}

// GetMyPunches implements punch.PunchService.
func (s *PunchServiceImpl) GetMyPunches(ctx context.Context, filter punch.PunchFilter) (punch.ListPunchResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return punch.ListPunchResponse{}, err
	}
	if principal.EmployeeID == "" {
		return punch.ListPunchResponse{}, user.ErrEmployeeIDRequired
	}

	filter.EmployeeID = &principal.EmployeeID
	filter.EmployeeName = nil
	return s.list(ctx, filter, principal.StationID)
}

// ListPunches implements punch.PunchService.
func (s *PunchServiceImpl) ListPunches(ctx context.Context, filter punch.PunchFilter) (punch.ListPunchResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return punch.ListPunchResponse{}, err
	}
	if !principal.CanReview() {
		return punch.ListPunchResponse{}, user.ErrManagerAccessRequired
	}

	return s.list(ctx, filter, principal.StationID)
}

func (s *PunchServiceImpl) list(ctx context.Context, filter punch.PunchFilter, stationID string) (punch.ListPunchResponse, error) {
	if err := filter.Validate(); err != nil {
		return punch.ListPunchResponse{}, err
	}

	punches, total, err := s.PunchRepository.List(ctx, filter, stationID)
	if err != nil {
		return punch.ListPunchResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	responses := make([]punch.PunchResponse, 0, len(punches))
	for _, p := range punches {
		responses = append(responses, s.mapPunchToResponse(p))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return punch.ListPunchResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Punches:    responses,
	}, nil
}

// GetPunch implements punch.PunchService.
func (s *PunchServiceImpl) GetPunch(ctx context.Context, id string) (punch.PunchResponse, error) {
	p, err := s.visiblePunch(ctx, id)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	return s.mapPunchToResponse(p), nil
}

// OpenPunchPhoto streams the stored proof photo of a visible punch.
func (s *PunchServiceImpl) OpenPunchPhoto(ctx context.Context, id string) (io.ReadCloser, error) {
	p, err := s.visiblePunch(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.PhotoPath == nil {
		return nil, storage.ErrFileNotFound
	}
	return s.photoService.Open(ctx, *p.PhotoPath)
}

func (s *PunchServiceImpl) visiblePunch(ctx context.Context, id string) (punch.Punch, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return punch.Punch{}, err
	}

	p, err := s.PunchRepository.GetByID(ctx, id, principal.StationID)
	if err != nil {
		if errors.Is(err, punch.ErrPunchNotFound) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to get punch: %w", err)
	}

	// Employees only see their own punches.
	if !principal.CanReview() && p.EmployeeID != principal.EmployeeID {
		return punch.Punch{}, punch.ErrPunchNotFound
	}
	return p, nil
}

func (s *PunchServiceImpl) ApprovePunch(ctx context.Context, req punch.ApprovePunchRequest) (punch.PunchResponse, error) {
	return s.review(ctx, req.ID, punch.StatusApproved, nil)
}

// RejectPunch implements punch.PunchService.
func (s *PunchServiceImpl) RejectPunch(ctx context.Context, req punch.RejectPunchRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}
	reason := strings.TrimSpace(req.Reason)
	return s.review(ctx, req.ID, punch.StatusRejected, &reason)
}

func (s *PunchServiceImpl) review(ctx context.Context, id string, status punch.Status, reason *string) (punch.PunchResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	if !principal.CanReview() {
		return punch.PunchResponse{}, user.ErrManagerAccessRequired
	}

	var reviewed punch.Punch
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		p, err := s.PunchRepository.GetByID(txCtx, id, principal.StationID)
		if err != nil {
			if errors.Is(err, punch.ErrPunchNotFound) {
				return punch.ErrPunchNotFound
			}
			return fmt.Errorf("failed to get punch: %w", err)
		}
		if p.IsReviewed() {
			return punch.ErrPunchAlreadyReviewed
		}

		now := s.now().UTC()
		p.Status = status
		p.ReviewedBy = &principal.UserID
		p.ReviewedAt = &now
		p.RejectionReason = reason

		if err := s.PunchRepository.UpdateReview(txCtx, p); err != nil {
			return fmt.Errorf("failed to update punch review: %w", err)
		}
		reviewed = p
		return nil
	})
	if err != nil {
		return punch.PunchResponse{}, err
	}

	return s.mapPunchToResponse(reviewed), nil
}

// DeletePunch implements punch.PunchService.
func (s *PunchServiceImpl) DeletePunch(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	if !principal.CanReview() {
		return user.ErrManagerAccessRequired
	}

	p, err := s.PunchRepository.GetByID(ctx, id, principal.StationID)
	if err != nil {
		if errors.Is(err, punch.ErrPunchNotFound) {
			return punch.ErrPunchNotFound
		}
		return fmt.Errorf("failed to get punch: %w", err)
	}

	if err := s.PunchRepository.Delete(ctx, id, principal.StationID); err != nil {
		if errors.Is(err, punch.ErrPunchNotFound) {
			return punch.ErrPunchNotFound
		}
		return fmt.Errorf("failed to delete punch: %w", err)
	}

	if p.PhotoPath != nil {
		if err := s.photoService.Delete(ctx, *p.PhotoPath); err != nil {
			slog.Warn("failed to delete punch photo", "punch_id", id, "path", *p.PhotoPath, "error", err)
		}
	}
	return nil
}

// stationEmployee loads an active employee of the given station. Employees of
// other stations are reported as not found.
func (s *PunchServiceImpl) stationEmployee(ctx context.Context, employeeID, stationID string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.StationID != stationID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if !emp.Active {
		return employee.Employee{}, punch.ErrEmployeeInactive
	}
	return emp, nil
}

func (s *PunchServiceImpl) mapPunchToResponse(p punch.Punch) punch.PunchResponse {
	local := p.PunchedAt.In(s.loc)

	resp := punch.PunchResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		StationID:       p.StationID,
		PunchedAt:       p.PunchedAt.UTC().Format(time.RFC3339),
		LocalDate:       local.Format("2006-01-02"),
		LocalTime:       local.Format("15:04"),
		MarkedAbsent:    p.MarkedAbsent,
		AbsenceKind:     p.AbsenceKind,
		Status:          string(p.Status),
		ReviewedBy:      p.ReviewedBy,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.EmployeeName != nil {
		resp.EmployeeName = *p.EmployeeName
	}
	if p.PhotoPath != nil && *p.PhotoPath != "" {
		url := s.photoService.URL(*p.PhotoPath)
		resp.PhotoURL = &url
	}
	if p.ReviewedAt != nil {
		reviewedAt := p.ReviewedAt.UTC().Format(time.RFC3339)
		resp.ReviewedAt = &reviewedAt
	}
	return resp
}

func NewPunchService(
	transactor postgresql.Transactor,
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	photoService file.PhotoService,
	loc *time.Location,
) punch.PunchService {
	if loc == nil {
		loc = time.UTC
	}
	return &PunchServiceImpl{
		transactor:         transactor,
		PunchRepository:    punchRepo,
		EmployeeRepository: employeeRepo,
		photoService:       photoService,
		loc:                loc,
		now:                time.Now,
	}
}

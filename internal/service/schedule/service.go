package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/schedule"
	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/fixtures"
	"github.com/redeposto/ponto-backend-go/internal/pkg/jwt"
	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
)

type shiftServiceImpl struct {
	shiftTemplateRepo schedule.ShiftTemplateRepository
	defaultShift      string
}

// ListShiftTemplates implements schedule.ShiftService.
func (s *shiftServiceImpl) ListShiftTemplates(ctx context.Context) ([]schedule.ShiftTemplateResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !principal.IsManager() {
		return nil, user.ErrManagerAccessRequired
	}

	stored, err := s.shiftTemplateRepo.List(ctx, principal.StationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	byName := make(map[string]schedule.ShiftTemplateResponse, len(stored))
	for _, name := range fixtures.BuiltinShiftNames() {
		tmpl, _ := fixtures.BuiltinShift(name)
		byName[name] = mapTemplateToResponse(tmpl, schedule.SourceBuiltin, nil)
	}
	for _, st := range stored {
		updatedAt := st.UpdatedAt
		byName[st.Name] = mapTemplateToResponse(st.ToTemplate(), schedule.SourceStation, &updatedAt)
	}

	responses := make([]schedule.ShiftTemplateResponse, 0, len(byName))
	for _, r := range byName {
		responses = append(responses, r)
	}
	slices.SortFunc(responses, func(a, b schedule.ShiftTemplateResponse) int {
		return strings.Compare(a.Name, b.Name)
	})

	return responses, nil
}

// GetShiftTemplate implements schedule.ShiftService.
func (s *shiftServiceImpl) GetShiftTemplate(ctx context.Context, name string) (schedule.ShiftTemplateResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}
	if !principal.IsManager() {
		return schedule.ShiftTemplateResponse{}, user.ErrManagerAccessRequired
	}

	stored, err := s.shiftTemplateRepo.Get(ctx, principal.StationID, name)
	if err == nil {
		return mapTemplateToResponse(stored.ToTemplate(), schedule.SourceStation, &stored.UpdatedAt), nil
	}
	if !errors.Is(err, schedule.ErrShiftTemplateNotFound) {
		return schedule.ShiftTemplateResponse{}, fmt.Errorf("failed to get shift template: %w", err)
	}

	builtin, ok := fixtures.BuiltinShift(name)
	if !ok {
		return schedule.ShiftTemplateResponse{}, schedule.ErrShiftTemplateNotFound
	}
	return mapTemplateToResponse(builtin, schedule.SourceBuiltin, nil), nil
}

// UpsertShiftTemplate implements schedule.ShiftService.
func (s *shiftServiceImpl) UpsertShiftTemplate(ctx context.Context, req schedule.UpsertShiftTemplateRequest) (schedule.ShiftTemplateResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}
	if !principal.IsOwner() {
		return schedule.ShiftTemplateResponse{}, user.ErrOwnerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return schedule.ShiftTemplateResponse{}, err
	}

	saved, err := s.shiftTemplateRepo.Upsert(ctx, req.ToEntity(principal.StationID))
	if err != nil {
		return schedule.ShiftTemplateResponse{}, fmt.Errorf("failed to save shift template: %w", err)
	}

	return mapTemplateToResponse(saved.ToTemplate(), schedule.SourceStation, &saved.UpdatedAt), nil
}

// Resolve implements schedule.ShiftService.
func (s *shiftServiceImpl) Resolve(ctx context.Context, stationID string, name string) (timesheet.ShiftTemplate, schedule.TemplateSource, error) {
	if name != "" {
		tmpl, found, err := s.lookup(ctx, stationID, name)
		if err != nil {
			return timesheet.ShiftTemplate{}, "", err
		}
		if found != "" {
			return tmpl, found, nil
		}
	}

	tmpl, found, err := s.lookup(ctx, stationID, s.defaultShift)
	if err != nil {
		return timesheet.ShiftTemplate{}, "", err
	}
	if found == "" {
		return timesheet.ShiftTemplate{}, "", fmt.Errorf("%w: %q", schedule.ErrUnknownDefaultShift, s.defaultShift)
	}
	return tmpl, schedule.SourceDefault, nil
}

// lookup returns an empty source when neither the station nor the built-ins
// know the name.
func (s *shiftServiceImpl) lookup(ctx context.Context, stationID, name string) (timesheet.ShiftTemplate, schedule.TemplateSource, error) {
	stored, err := s.shiftTemplateRepo.Get(ctx, stationID, name)
	switch {
	case err == nil:
		return stored.ToTemplate(), schedule.SourceStation, nil
	case !errors.Is(err, schedule.ErrShiftTemplateNotFound):
		return timesheet.ShiftTemplate{}, "", fmt.Errorf("failed to get shift template: %w", err)
	}

	if builtin, ok := fixtures.BuiltinShift(name); ok {
		return builtin, schedule.SourceBuiltin, nil
	}
	return timesheet.ShiftTemplate{}, "", nil
}

func mapTemplateToResponse(t timesheet.ShiftTemplate, source schedule.TemplateSource, updatedAt *time.Time) schedule.ShiftTemplateResponse {
	resp := schedule.ShiftTemplateResponse{
		Name:                t.Name,
		Entry:               validator.FormatClock(t.EntryMinute),
		Exit:                validator.FormatClock(t.ExitMinute),
		WorkMinutesExpected: t.WorkMinutesExpected,
		IsNightShift:        t.IsNightShift(),
		Source:              string(source),
	}

	// Night shifts are stored without lunch punches.
	if !t.IsNightShift() || t.LunchOutMinute != 0 || t.LunchInMinute != 0 {
		resp.LunchOut = validator.FormatClock(t.LunchOutMinute)
		resp.LunchIn = validator.FormatClock(t.LunchInMinute)
	}

	if updatedAt != nil && !updatedAt.IsZero() {
		formatted := updatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &formatted
	}
	return resp
}

func NewShiftService(shiftTemplateRepo schedule.ShiftTemplateRepository, defaultShift string) schedule.ShiftService {
	return &shiftServiceImpl{
		shiftTemplateRepo: shiftTemplateRepo,
		defaultShift:      defaultShift,
	}
}

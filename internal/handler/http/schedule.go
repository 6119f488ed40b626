package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/redeposto/ponto-backend-go/internal/domain/schedule"
	"github.com/redeposto/ponto-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	ListShiftTemplates(w http.ResponseWriter, r *http.Request)
	GetShiftTemplate(w http.ResponseWriter, r *http.Request)
	UpsertShiftTemplate(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	shiftService schedule.ShiftService
}

func NewScheduleHandler(shiftService schedule.ShiftService) ScheduleHandler {
	return &scheduleHandlerImpl{
		shiftService: shiftService,
	}
}

// ListShiftTemplates implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListShiftTemplates(w http.ResponseWriter, r *http.Request) {
	results, err := h.shiftService.ListShiftTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetShiftTemplate implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.GetShiftTemplate(r.Context(), shiftName(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpsertShiftTemplate implements ScheduleHandler.
func (h *scheduleHandlerImpl) UpsertShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertShiftTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Name = shiftName(r)

	result, err := h.shiftService.UpsertShiftTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift template saved successfully", result)
}

// shiftName reads the {name} parameter. Built-in names contain a slash
// ("12/36"), so clients send it escaped.
func shiftName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

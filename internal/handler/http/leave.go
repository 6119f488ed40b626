package http

import (
	"encoding/json"
	"net/http"

	"github.com/redeposto/ponto-backend-go/internal/domain/leave"
	"github.com/redeposto/ponto-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateGrant(w http.ResponseWriter, r *http.Request)
	ListGrants(w http.ResponseWriter, r *http.Request)
	DeleteGrant(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveGrantService leave.LeaveGrantService
}

func NewLeaveHandler(leaveGrantService leave.LeaveGrantService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveGrantService: leaveGrantService,
	}
}

// CreateGrant implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateGrant(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveGrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveGrantService.CreateLeaveGrant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave grant created successfully", result)
}

// ListGrants implements LeaveHandler.
func (h *LeaveHandlerImpl) ListGrants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter leave.LeaveGrantFilter

	if employeeID := q.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if startDate := q.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := q.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.leaveGrantService.ListLeaveGrants(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// DeleteGrant implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteGrant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, leave.ErrLeaveGrantNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaveGrantService.DeleteLeaveGrant(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave grant deleted successfully", nil)
}

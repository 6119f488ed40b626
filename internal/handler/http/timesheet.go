package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
	"github.com/redeposto/ponto-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	GetDaily(w http.ResponseWriter, r *http.Request)
	GetMyDaily(w http.ResponseWriter, r *http.Request)
	GetMonthly(w http.ResponseWriter, r *http.Request)
	GetMyMonthly(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// GetDaily implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetDaily(w http.ResponseWriter, r *http.Request) {
	req := timesheet.DailyTimesheetRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Date:       r.URL.Query().Get("date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.GetDailyTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyDaily implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetMyDaily(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetMyDailyTimesheet(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthly implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	req := parseMonthlyRequest(r)
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.GetMonthlyTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyMonthly implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetMyMonthly(w http.ResponseWriter, r *http.Request) {
	req := parseMonthlyRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.GetMyMonthlyTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseMonthlyRequest defaults to the current month; unparsable values are
// left as zero so validation reports them.
func parseMonthlyRequest(r *http.Request) timesheet.MonthlyTimesheetRequest {
	now := time.Now()
	req := timesheet.MonthlyTimesheetRequest{
		Month: int(now.Month()),
		Year:  now.Year(),
	}

	if m := r.URL.Query().Get("month"); m != "" {
		req.Month, _ = strconv.Atoi(m)
	}
	if y := r.URL.Query().Get("year"); y != "" {
		req.Year, _ = strconv.Atoi(y)
	}
	return req
}

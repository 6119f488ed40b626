package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/redeposto/ponto-backend-go/internal/domain/punch"
	"github.com/redeposto/ponto-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	RecordAbsence(w http.ResponseWriter, r *http.Request)
	GetMyPunches(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Photo(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// Record implements PunchHandler. The proof photo is optional; a request
// without a multipart body records a bare punch.
func (h *punchHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req punch.RecordPunchRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(punch.MaxPhotoSize); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}

		file, fileHeader, err := r.FormFile("photo")
		switch {
		case err == http.ErrMissingFile:
		case err != nil:
			slog.Error("Failed to get file from form", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		default:
			defer file.Close()
			req.File = file
			req.FileHeader = fileHeader
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.punchService.RecordPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded successfully", result)
}

// RecordAbsence implements PunchHandler.
func (h *punchHandlerImpl) RecordAbsence(w http.ResponseWriter, r *http.Request) {
	var req punch.RecordAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.punchService.RecordAbsence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence recorded successfully", result)
}

// GetMyPunches implements PunchHandler.
func (h *punchHandlerImpl) GetMyPunches(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePunchFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.punchService.GetMyPunches(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePunchPage(w, results)
}

// List implements PunchHandler.
func (h *punchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePunchFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.punchService.ListPunches(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writePunchPage(w, results)
}

// writePunchPage moves pagination out of data and into the meta block.
func writePunchPage(w http.ResponseWriter, page punch.ListPunchResponse) {
	punches := page.Punches
	if punches == nil {
		punches = []punch.PunchResponse{}
	}
	response.SuccessWithMeta(w, punches, &response.Meta{
		Page:       page.Page,
		Limit:      page.Limit,
		TotalItems: page.TotalCount,
		TotalPages: page.TotalPages,
		Showing:    page.Showing,
	})
}

func parsePunchFilter(r *http.Request) (punch.PunchFilter, error) {
	q := r.URL.Query()
	filter := punch.PunchFilter{}

	if employeeID := q.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if employeeName := q.Get("employee_name"); employeeName != "" {
		filter.EmployeeName = &employeeName
	}
	if startDate := q.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := q.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if status := q.Get("status"); status != "" {
		filter.Status = &status
	}
	if absent := q.Get("marked_absent"); absent != "" {
		if v, err := strconv.ParseBool(absent); err == nil {
			filter.MarkedAbsent = &v
		}
	}

	// Pagination
	if p := q.Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := q.Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	filter.SortBy = q.Get("sort_by")
	filter.SortOrder = q.Get("sort_order")

	if err := filter.Validate(); err != nil {
		return punch.PunchFilter{}, err
	}
	return filter, nil
}

// Get implements PunchHandler.
func (h *punchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, punch.ErrPunchNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.punchService.GetPunch(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Photo implements PunchHandler.
func (h *punchHandlerImpl) Photo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, punch.ErrPunchNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rc, err := h.punchService.OpenPunchPhoto(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	response.Stream(w, "image/jpeg", "private, max-age=86400", rc)
}

// Approve implements PunchHandler.
func (h *punchHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, punch.ErrPunchNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req := punch.ApprovePunchRequest{ID: id}

	result, err := h.punchService.ApprovePunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch approved successfully", result)
}

// Reject implements PunchHandler.
func (h *punchHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, punch.ErrPunchNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req punch.RejectPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.punchService.RejectPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch rejected successfully", result)
}

// Delete implements PunchHandler.
func (h *punchHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, punch.ErrPunchNotFound)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.punchService.DeletePunch(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch deleted successfully", nil)
}

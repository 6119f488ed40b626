package punch

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
)

// MaxPhotoSize is the largest accepted punch photo before compression.
const MaxPhotoSize = 10 << 20

type RecordPunchRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

// HasPhoto reports whether the punch came with a proof photo.
func (r *RecordPunchRequest) HasPhoto() bool {
	return r.File != nil && r.FileHeader != nil
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FileHeader != nil {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > MaxPhotoSize {
			errs = append(errs, validator.ValidationError{
				Field:   "photo",
				Message: "punch photo size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordAbsenceRequest struct {
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"` // YYYY-MM-DD
	AbsenceKind string `json:"absence_kind"`
}

func (r *RecordAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.AbsenceKind) {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_kind",
			Message: "absence_kind is required",
		})
	} else if len(r.AbsenceKind) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_kind",
			Message: "absence_kind must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name"`
	StationID       string  `json:"station_id"`
	PunchedAt       string  `json:"punched_at"`
	LocalDate       string  `json:"local_date"`
	LocalTime       string  `json:"local_time"`
	MarkedAbsent    bool    `json:"marked_absent"`
	AbsenceKind     *string `json:"absence_kind,omitempty"`
	Status          string  `json:"status"`
	PhotoURL        *string `json:"photo_url,omitempty"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type PunchFilter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD, local
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD, local, inclusive
	Status       *string `json:"status,omitempty"`
	MarkedAbsent *bool   `json:"marked_absent,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // punched_at, employee_name, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *PunchFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"punched_at", "employee_name", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: punched_at, employee_name, status",
			})
		}
	} else {
		f.SortBy = "punched_at"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListPunchResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Showing    string          `json:"showing"`
	Punches    []PunchResponse `json:"punches"`
}

type ApprovePunchRequest struct {
	ID string `json:"-"`
}

type RejectPunchRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

package leave

import (
	"strings"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
)

type CreateLeaveGrantRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	ExcusedSlot string  `json:"excused_slot"`
	Reason      *string `json:"reason,omitempty"`
}

func (r *CreateLeaveGrantRequest) Validate() error {
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

	r.ExcusedSlot = strings.ToUpper(strings.TrimSpace(r.ExcusedSlot))
	if !validator.IsInSlice(r.ExcusedSlot, timesheet.SlotValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "excused_slot",
			Message: "excused_slot must be one of: " + strings.Join(timesheet.SlotValues, ", "),
		})
	}

	if r.Reason != nil && len(*r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveGrantFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
}

func (f *LeaveGrantFilter) Validate() error {
	var errs validator.ValidationErrors

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

	if len(errs) == 0 && f.StartDate != nil && f.EndDate != nil && *f.StartDate != "" && *f.EndDate != "" {
		if *f.EndDate < *f.StartDate {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveGrantResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	ExcusedSlot  string  `json:"excused_slot"`
	SlotLabel    string  `json:"slot_label"`
	Reason       *string `json:"reason,omitempty"`
	GrantedBy    string  `json:"granted_by"`
	CreatedAt    string  `json:"created_at"`
}

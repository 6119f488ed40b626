package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/redeposto/ponto-backend-go/internal/domain/employee"
	"github.com/redeposto/ponto-backend-go/internal/domain/leave"
	"github.com/redeposto/ponto-backend-go/internal/domain/punch"
	"github.com/redeposto/ponto-backend-go/internal/domain/schedule"
	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/pkg/storage"
	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
	"github.com/redeposto/ponto-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Access errors
	case errors.Is(err, user.ErrStationIDRequired),
		errors.Is(err, user.ErrInvalidRole):
		Unauthorized(w, "Invalid token claims")
	case errors.Is(err, user.ErrEmployeeIDRequired),
		errors.Is(err, timesheet.ErrEmployeeIDRequired):
		Forbidden(w, "Caller is not on a station roster")
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Punch domain errors
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Punch not found")
	case errors.Is(err, punch.ErrPunchAlreadyReviewed):
		Conflict(w, "Punch already reviewed")
	case errors.Is(err, punch.ErrAbsenceAlreadyMarked):
		Conflict(w, "Absence already marked for this date")
	case errors.Is(err, punch.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveGrantNotFound):
		NotFound(w, "Leave grant not found")
	case errors.Is(err, leave.ErrLeaveGrantExists):
		Conflict(w, "Leave grant already exists for this slot and date")

	// Shift templates
	case errors.Is(err, schedule.ErrShiftTemplateNotFound):
		NotFound(w, "Shift template not found")

	// Timesheet
	case errors.Is(err, timesheet.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrInvalidMonth),
		errors.Is(err, timesheet.ErrInvalidYear):
		BadRequest(w, err.Error(), nil)

	// Files
	case errors.Is(err, file.ErrInvalidImageType):
		BadRequest(w, "Invalid image file", nil)
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")

	// Default
	default:
		// Includes broken shift templates and an unknown default shift.
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

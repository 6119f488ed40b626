package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redeposto/ponto-backend-go/internal/domain/employee"
	"github.com/redeposto/ponto-backend-go/internal/domain/leave"
	"github.com/redeposto/ponto-backend-go/internal/domain/punch"
	"github.com/redeposto/ponto-backend-go/internal/domain/schedule"
	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
	"github.com/redeposto/ponto-backend-go/internal/domain/user"
	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
)

func TestHandleError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{validator.ValidationErrors{{Field: "date", Message: "bad"}}, http.StatusUnprocessableEntity},
		{user.ErrInvalidRole, http.StatusUnauthorized},
		{user.ErrManagerAccessRequired, http.StatusForbidden},
		{timesheet.ErrEmployeeIDRequired, http.StatusForbidden},
		{fmt.Errorf("failed to get punch: %w", punch.ErrPunchNotFound), http.StatusNotFound},
		{punch.ErrPunchAlreadyReviewed, http.StatusConflict},
		{punch.ErrAbsenceAlreadyMarked, http.StatusConflict},
		{punch.ErrEmployeeInactive, http.StatusForbidden},
		{employee.ErrEmployeeNotFound, http.StatusNotFound},
		{leave.ErrLeaveGrantExists, http.StatusConflict},
		{schedule.ErrShiftTemplateNotFound, http.StatusNotFound},
		{timesheet.ErrInvalidDate, http.StatusBadRequest},
		{fmt.Errorf("failed to resolve shift: %w", schedule.ErrUnknownDefaultShift), http.StatusInternalServerError},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

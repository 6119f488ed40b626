package schedule

import (
	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
)

// UpsertShiftTemplateRequest carries wall-clock times as "HH:MM".
// Lunch times may be omitted for shifts that cross midnight.
type UpsertShiftTemplateRequest struct {
	Name                string `json:"-"`
	Entry               string `json:"entry"`
	LunchOut            string `json:"lunch_out"`
	LunchIn             string `json:"lunch_in"`
	Exit                string `json:"exit"`
	WorkMinutesExpected int    `json:"work_minutes_expected"`

	// Parsed by Validate
	entryMinute    int
	lunchOutMinute int
	lunchInMinute  int
	exitMinute     int
}

func (r *UpsertShiftTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 50 characters",
		})
	}

	var entryOK, exitOK bool
	if r.entryMinute, entryOK = validator.IsValidClock(r.Entry); !entryOK {
		errs = append(errs, validator.ValidationError{
			Field:   "entry",
			Message: "entry must be in HH:MM format",
		})
	}
	if r.exitMinute, exitOK = validator.IsValidClock(r.Exit); !exitOK {
		errs = append(errs, validator.ValidationError{
			Field:   "exit",
			Message: "exit must be in HH:MM format",
		})
	}

	nightShift := entryOK && exitOK && r.exitMinute < r.entryMinute
	lunchRequired := !nightShift

	var lunchOutOK, lunchInOK bool
	if r.LunchOut != "" || lunchRequired {
		if r.lunchOutMinute, lunchOutOK = validator.IsValidClock(r.LunchOut); !lunchOutOK {
			errs = append(errs, validator.ValidationError{
				Field:   "lunch_out",
				Message: "lunch_out must be in HH:MM format",
			})
		}
	}
	if r.LunchIn != "" || lunchRequired {
		if r.lunchInMinute, lunchInOK = validator.IsValidClock(r.LunchIn); !lunchInOK {
			errs = append(errs, validator.ValidationError{
				Field:   "lunch_in",
				Message: "lunch_in must be in HH:MM format",
			})
		}
	}

	if entryOK && exitOK && lunchOutOK && lunchInOK && !nightShift {
		if !(r.entryMinute <= r.lunchOutMinute && r.lunchOutMinute <= r.lunchInMinute && r.lunchInMinute <= r.exitMinute) {
			errs = append(errs, validator.ValidationError{
				Field:   "lunch_out",
				Message: "times must be ordered: entry <= lunch_out <= lunch_in <= exit",
			})
		}
	}

	if r.WorkMinutesExpected <= 0 || r.WorkMinutesExpected > 24*60 {
		errs = append(errs, validator.ValidationError{
			Field:   "work_minutes_expected",
			Message: "work_minutes_expected must be between 1 and 1440",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity builds the stored template. Validate must have succeeded.
func (r *UpsertShiftTemplateRequest) ToEntity(stationID string) ShiftTemplate {
	return ShiftTemplate{
		StationID:           stationID,
		Name:                r.Name,
		EntryMinute:         r.entryMinute,
		LunchOutMinute:      r.lunchOutMinute,
		LunchInMinute:       r.lunchInMinute,
		ExitMinute:          r.exitMinute,
		WorkMinutesExpected: r.WorkMinutesExpected,
	}
}

type ShiftTemplateResponse struct {
	Name                string  `json:"name"`
	Entry               string  `json:"entry"`
	LunchOut            string  `json:"lunch_out"`
	LunchIn             string  `json:"lunch_in"`
	Exit                string  `json:"exit"`
	WorkMinutesExpected int     `json:"work_minutes_expected"`
	IsNightShift        bool    `json:"is_night_shift"`
	Source              string  `json:"source"`
	UpdatedAt           *string `json:"updated_at,omitempty"`
}

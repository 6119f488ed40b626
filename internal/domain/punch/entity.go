package punch

import (
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var StatusValues = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

// Punch is one clock event, or an absence marker when MarkedAbsent is set.
// PunchedAt is stored in UTC.
type Punch struct {
	ID              string
	EmployeeID      string
	StationID       string
	PunchedAt       time.Time
	MarkedAbsent    bool
	AbsenceKind     *string
	Status          Status
	PhotoPath       *string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeName *string
}

// IsReviewed reports whether a manager already approved or rejected the punch.
func (p Punch) IsReviewed() bool {
	return p.Status == StatusApproved || p.Status == StatusRejected
}

// CountsForTimesheet reports whether the punch feeds timesheet computation.
func (p Punch) CountsForTimesheet() bool {
	return p.Status != StatusRejected
}

// ToRaw converts the stored record into engine input. An unreadable
// PunchedAt becomes a zero Timestamp, which the engine treats as no punch.
func (p Punch) ToRaw() timesheet.RawPunch {
	raw := timesheet.RawPunch{
		EmployeeID:   p.EmployeeID,
		MarkedAbsent: p.MarkedAbsent,
	}
	if t, ok := timesheet.Normalize(p.PunchedAt, time.UTC); ok {
		raw.Timestamp = t
	}
	if p.AbsenceKind != nil {
		raw.AbsenceKind = *p.AbsenceKind
	}
	return raw
}

// ToRawPunches keeps only punches that count and converts them.
func ToRawPunches(punches []Punch) []timesheet.RawPunch {
	out := make([]timesheet.RawPunch, 0, len(punches))
	for _, p := range punches {
		if !p.CountsForTimesheet() {
			continue
		}
		out = append(out, p.ToRaw())
	}
	return out
}

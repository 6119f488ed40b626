package leave

import (
	"time"

	"github.com/redeposto/ponto-backend-go/internal/domain/timesheet"
)

// LeaveGrant ("abono") excuses an employee from one slot of a day, or the
// whole day. Date is a calendar date at UTC midnight.
type LeaveGrant struct {
	ID          string
	EmployeeID  string
	StationID   string
	Date        time.Time
	ExcusedSlot timesheet.Slot
	Reason      *string
	GrantedBy   string
	CreatedAt   time.Time

	// DTO / Join
	EmployeeName *string
}

// ToEngine strips persistence fields.
func (g LeaveGrant) ToEngine() timesheet.LeaveGrant {
	return timesheet.LeaveGrant{
		EmployeeID:  g.EmployeeID,
		Date:        g.Date,
		ExcusedSlot: g.ExcusedSlot,
	}
}

// GrantsOn returns the engine grants whose calendar date equals day.
func GrantsOn(grants []LeaveGrant, day time.Time) []timesheet.LeaveGrant {
	y, m, d := day.Date()
	out := make([]timesheet.LeaveGrant, 0)
	for _, g := range grants {
		gy, gm, gd := g.Date.Date()
		if gy == y && gm == m && gd == d {
			out = append(out, g.ToEngine())
		}
	}
	return out
}

package user

type Role string

const (
	RoleOwner    Role = "owner"    // Network owner - full access
	RoleManager  Role = "manager"  // Station manager - reviews punches, grants leave
	RoleEmployee Role = "employee" // Attendant - punches and sees own timesheet
)

var RoleValues = []string{string(RoleOwner), string(RoleManager), string(RoleEmployee)}

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// IsManager checks if the role is manager or owner
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}

// Principal is the authenticated caller as carried by access token claims.
// EmployeeID is empty for owners that are not on a station roster.
type Principal struct {
	UserID     string
	EmployeeID string
	StationID  string
	Role       Role
}

func (p Principal) IsOwner() bool {
	return p.Role == RoleOwner
}

func (p Principal) IsManager() bool {
	return p.Role.IsManager()
}

// CanReview checks if the caller can approve punches and grant leave
func (p Principal) CanReview() bool {
	return p.IsManager()
}

package user

import "slices"

type Permission string

const (
	// Punches
	PermissionPunchRecord  Permission = "punch.record"
	PermissionPunchViewOwn Permission = "punch.view_own"
	PermissionPunchViewAll Permission = "punch.view_all"
	PermissionPunchReview  Permission = "punch.review"
	PermissionAbsenceMark  Permission = "absence.mark"

	// Leave grants
	PermissionLeaveGrantManage Permission = "leave_grant.manage"

	// Shift templates
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Timesheets
	PermissionTimesheetViewOwn Permission = "timesheet.view_own"
	PermissionTimesheetViewAll Permission = "timesheet.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionPunchRecord,
		PermissionPunchViewOwn,
		PermissionPunchViewAll,
		PermissionPunchReview,
		PermissionAbsenceMark,
		PermissionLeaveGrantManage,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
	},
	RoleManager: {
		PermissionPunchRecord,
		PermissionPunchViewOwn,
		PermissionPunchViewAll,
		PermissionPunchReview,
		PermissionAbsenceMark,
		PermissionLeaveGrantManage,
		PermissionShiftView,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
	},
	RoleEmployee: {
		PermissionPunchRecord,
		PermissionPunchViewOwn,
		PermissionTimesheetViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	return slices.Contains(permissions, permission)
}

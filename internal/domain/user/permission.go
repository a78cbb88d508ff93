package user

type Permission string

const (
	// Attendance
	PermissionAttendanceView    Permission = "attendance.view"
	PermissionAttendanceProcess Permission = "attendance.process"
	PermissionAttendanceEdit    Permission = "attendance.edit"

	// Employees and groups
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"
	PermissionGroupManage    Permission = "group.manage"

	// Holidays
	PermissionHolidayManage Permission = "holiday.manage"

	// Leave
	PermissionLeaveView    Permission = "leave.view"
	PermissionLeaveApply   Permission = "leave.apply"
	PermissionLeaveApprove Permission = "leave.approve"

	// Summary
	PermissionSummaryView     Permission = "summary.view"
	PermissionSummaryGenerate Permission = "summary.generate"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceView,
		PermissionAttendanceProcess,
		PermissionAttendanceEdit,
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionGroupManage,
		PermissionHolidayManage,
		PermissionLeaveView,
		PermissionLeaveApply,
		PermissionLeaveApprove,
		PermissionSummaryView,
		PermissionSummaryGenerate,
	},
	RoleUser: {
		PermissionAttendanceView,
		PermissionEmployeeView,
		PermissionLeaveView,
		PermissionLeaveApply,
		PermissionSummaryView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// Capabilities is the set of mutation affordances a screen may offer.
type Capabilities struct {
	CanCreate  bool
	CanUpdate  bool
	CanDelete  bool
	CanApprove bool
}

// ReadOnly grants nothing.
var ReadOnly = Capabilities{}

// Grant maps the permissions a screen cares about onto its capabilities.
// A zero permission means the capability is never granted.
type Grant struct {
	Create  Permission
	Update  Permission
	Delete  Permission
	Approve Permission
}

// CapabilitiesFor computes a screen's capabilities for role once, so screens
// do not consult the role themselves.
func CapabilitiesFor(role Role, g Grant) Capabilities {
	has := func(p Permission) bool {
		return p != "" && HasPermission(role, p)
	}
	return Capabilities{
		CanCreate:  has(g.Create),
		CanUpdate:  has(g.Update),
		CanDelete:  has(g.Delete),
		CanApprove: has(g.Approve),
	}
}

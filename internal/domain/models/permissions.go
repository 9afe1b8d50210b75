// internal/domain/models/permissions.go
package models

// Permission is a named capability granted through role membership.
type Permission string

const (
	PermViewCalendar         Permission = "view_calendar"
	PermViewMinutes          Permission = "view_minutes"
	PermUploadMinutes        Permission = "upload_minutes"
	PermEditMinutes          Permission = "edit_minutes"
	PermDeleteMinutes        Permission = "delete_minutes"
	PermCreateEvents         Permission = "create_events"
	PermEditEvents           Permission = "edit_events"
	PermDeleteEvents         Permission = "delete_events"
	PermManageUsers          Permission = "manage_users"
	PermAssignRoles          Permission = "assign_roles"
	PermCreateContent        Permission = "create_content"
	PermApproveRegistrations Permission = "approve_registrations"
)

// AllPermissions is the closed set the permission checker understands,
// in display order.
var AllPermissions = []Permission{
	PermViewCalendar,
	PermViewMinutes,
	PermUploadMinutes,
	PermEditMinutes,
	PermDeleteMinutes,
	PermCreateEvents,
	PermEditEvents,
	PermDeleteEvents,
	PermManageUsers,
	PermAssignRoles,
	PermCreateContent,
	PermApproveRegistrations,
}

// IsValid reports whether p belongs to the permission enumeration.
func (p Permission) IsValid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// PermissionStrings converts a permission slice to plain strings.
func PermissionStrings(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

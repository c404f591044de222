package user

type Permission string

const (
	PermissionViewOwnProfile  Permission = "profile.view_own"
	PermissionScheduleViewOwn Permission = "schedule.view_own"
	PermissionScheduleViewAll Permission = "schedule.view_all"
	PermissionScheduleImport  Permission = "schedule.import"
	PermissionUserManage      Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionScheduleViewOwn,
		PermissionScheduleViewAll,
		PermissionScheduleImport,
		PermissionUserManage,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionScheduleViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

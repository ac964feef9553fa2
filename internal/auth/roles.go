package auth

import "github.com/trackr/api/internal/models"

// Permissions is what a role may see and do.
type Permissions struct {
	CanManageProjects  bool `json:"canManageProjects"`
	CanManageCustomers bool `json:"canManageCustomers"`
	CanManageUsers     bool `json:"canManageUsers"`
}

// PermissionsFor derives permissions from a role.
func PermissionsFor(role models.Role) Permissions {
	return Permissions{
		CanManageProjects:  role == models.RoleProjectManager || role == models.RoleAdmin,
		CanManageCustomers: role == models.RoleProjectManager || role == models.RoleAdmin,
		CanManageUsers:     role == models.RoleAdmin,
	}
}

// HasRole reports whether role is one of allowed.
func HasRole(role models.Role, allowed ...models.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// Staff roles may manage projects, resources and customers.
var Staff = []models.Role{models.RoleProjectManager, models.RoleAdmin}

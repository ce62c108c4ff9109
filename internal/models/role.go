package models

// Role is a member's role within an organization. Roles form a strict
// privilege order: admin above editor above viewer.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanManageURLs reports whether the role may create, update or delete
// short URLs. Viewers are read-only.
func (r Role) CanManageURLs() bool {
	return r == RoleAdmin || r == RoleEditor
}

// CanManageNamespaces reports whether the role may create or delete namespaces.
func (r Role) CanManageNamespaces() bool {
	return r == RoleAdmin
}

// CanManageMembers reports whether the role may manage memberships and invites.
func (r Role) CanManageMembers() bool {
	return r == RoleAdmin
}

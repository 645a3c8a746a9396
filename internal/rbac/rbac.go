// Package rbac holds the static role to permission mapping consulted by the
// authorization gate. The table is built once at startup and never mutated,
// so lookups are safe under concurrent requests without locking.
package rbac

import "math"

// Permission is an opaque capability token gating one operation.
type Permission string

// The closed set of permissions known to the API.
const (
	PermCreateRecord Permission = "create_record"
	PermReadRecord   Permission = "read_record"
	PermUpdateRecord Permission = "update_record"
	PermDeleteRecord Permission = "delete_record"
)

// RoleAnonymous is the sentinel role for unauthenticated requests. It is
// deliberately absent from the default table so it maps to zero permissions.
const RoleAnonymous = "anonymous"

// UnknownRoleLevel is the precedence reported for roles not in the table,
// least privileged by convention (lower level = more privileged).
const UnknownRoleLevel = math.MaxInt

// Role bundles a name with its precedence level and permission set.
type Role struct {
	Name        string
	Level       int
	Permissions []Permission
}

// Table is an immutable name-indexed role table.
type Table struct {
	roles map[string]Role
	perms map[string]map[Permission]struct{}
}

// NewTable builds a table from explicit role definitions. Later duplicates
// of a role name override earlier ones.
func NewTable(roles []Role) *Table {
	t := &Table{
		roles: make(map[string]Role, len(roles)),
		perms: make(map[string]map[Permission]struct{}, len(roles)),
	}
	for _, r := range roles {
		set := make(map[Permission]struct{}, len(r.Permissions))
		for _, p := range r.Permissions {
			set[p] = struct{}{}
		}
		t.roles[r.Name] = r
		t.perms[r.Name] = set
	}
	return t
}

// Default returns the built-in role table.
func Default() *Table {
	return NewTable([]Role{
		{
			Name:  "admin",
			Level: 0,
			Permissions: []Permission{
				PermCreateRecord, PermReadRecord, PermUpdateRecord, PermDeleteRecord,
			},
		},
		{
			Name:        "manager",
			Level:       1,
			Permissions: []Permission{PermCreateRecord, PermReadRecord, PermUpdateRecord},
		},
		{
			Name:        "employee",
			Level:       2,
			Permissions: []Permission{PermCreateRecord, PermReadRecord},
		},
	})
}

// Lookup returns the role definition by name.
func (t *Table) Lookup(name string) (Role, bool) {
	r, ok := t.roles[name]
	return r, ok
}

// PermissionsFor returns the permission set for a role name. An unknown role
// is not an error: it yields an empty set, i.e. zero privilege.
func (t *Table) PermissionsFor(name string) []Permission {
	r, ok := t.roles[name]
	if !ok {
		return nil
	}
	return r.Permissions
}

// LevelFor returns the precedence level for a role name, or UnknownRoleLevel
// if the role is not in the table.
func (t *Table) LevelFor(name string) int {
	r, ok := t.roles[name]
	if !ok {
		return UnknownRoleLevel
	}
	return r.Level
}

// HasPermission reports whether the named role holds the permission.
func (t *Table) HasPermission(name string, p Permission) bool {
	set, ok := t.perms[name]
	if !ok {
		return false
	}
	_, ok = set[p]
	return ok
}

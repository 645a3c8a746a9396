package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_HasPermission(t *testing.T) {
	table := Default()

	tests := []struct {
		name       string
		role       string
		permission Permission
		expected   bool
	}{
		{"admin can create", "admin", PermCreateRecord, true},
		{"admin can read", "admin", PermReadRecord, true},
		{"admin can update", "admin", PermUpdateRecord, true},
		{"admin can delete", "admin", PermDeleteRecord, true},
		{"manager can create", "manager", PermCreateRecord, true},
		{"manager can read", "manager", PermReadRecord, true},
		{"manager can update", "manager", PermUpdateRecord, true},
		{"manager cannot delete", "manager", PermDeleteRecord, false},
		{"employee can create", "employee", PermCreateRecord, true},
		{"employee can read", "employee", PermReadRecord, true},
		{"employee cannot update", "employee", PermUpdateRecord, false},
		{"employee cannot delete", "employee", PermDeleteRecord, false},
		{"anonymous cannot read", RoleAnonymous, PermReadRecord, false},
		{"anonymous cannot create", RoleAnonymous, PermCreateRecord, false},
		{"unknown role denied", "intern", PermReadRecord, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.HasPermission(tt.role, tt.permission))
		})
	}
}

func TestTable_PermissionsFor(t *testing.T) {
	table := Default()

	assert.ElementsMatch(t,
		[]Permission{PermCreateRecord, PermReadRecord},
		table.PermissionsFor("employee"))

	// Unknown roles are zero privilege, not an error.
	assert.Empty(t, table.PermissionsFor("ghost"))
	assert.Empty(t, table.PermissionsFor(RoleAnonymous))
}

func TestTable_LevelFor(t *testing.T) {
	table := Default()

	assert.Equal(t, 0, table.LevelFor("admin"))
	assert.Equal(t, 1, table.LevelFor("manager"))
	assert.Equal(t, 2, table.LevelFor("employee"))
	assert.Equal(t, UnknownRoleLevel, table.LevelFor("ghost"))
}

func TestTable_Lookup(t *testing.T) {
	table := NewTable([]Role{
		{Name: "auditor", Level: 3, Permissions: []Permission{PermReadRecord}},
	})

	role, ok := table.Lookup("auditor")
	assert.True(t, ok)
	assert.Equal(t, 3, role.Level)

	_, ok = table.Lookup("admin")
	assert.False(t, ok)
	assert.False(t, table.HasPermission("admin", PermReadRecord))
}

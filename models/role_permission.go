package models

import (
	"time"
)

// Permission identifiers. Stored per role in role_permissions and consulted
// on every permission-gated request.
const (
	PermWorkingHoursRead    = "working_hours.read"
	PermWorkingHoursWrite   = "working_hours.write"
	PermWorkingHoursApprove = "working_hours.approve"
	PermRostersRead         = "rosters.read"
	PermRostersWrite        = "rosters.write"
	PermPayrollRead         = "payroll.read"
	PermPayrollGenerate     = "payroll.generate"
	PermPayrollApprove      = "payroll.approve"
	PermPayrollExport       = "payroll.export"
	PermProfilesManage      = "profiles.manage"
	PermClientsManage       = "clients.manage"
	PermProjectsManage      = "projects.manage"
	PermPermissionsManage   = "permissions.manage"
)

var AllPermissions = []string{
	PermWorkingHoursRead,
	PermWorkingHoursWrite,
	PermWorkingHoursApprove,
	PermRostersRead,
	PermRostersWrite,
	PermPayrollRead,
	PermPayrollGenerate,
	PermPayrollApprove,
	PermPayrollExport,
	PermProfilesManage,
	PermClientsManage,
	PermProjectsManage,
	PermPermissionsManage,
}

// RolePermission is one (role, permission) pair. The full set is replaced
// wholesale on save rather than patched.
type RolePermission struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Role       Role      `gorm:"not null;size:20;uniqueIndex:idx_role_permission" json:"role"`
	Permission string    `gorm:"not null;size:100;uniqueIndex:idx_role_permission" json:"permission"`
}

// PermissionMatrix maps each role to its granted permission identifiers.
type PermissionMatrix map[Role]map[string]bool

// BuildMatrix folds persisted rows into a matrix.
func BuildMatrix(rows []RolePermission) PermissionMatrix {
	m := PermissionMatrix{}
	for _, row := range rows {
		if m[row.Role] == nil {
			m[row.Role] = map[string]bool{}
		}
		m[row.Role][row.Permission] = true
	}
	return m
}

// Toggle returns a copy of the matrix with the (role, permission) grant
// flipped. The receiver is left untouched; persistence is a separate step.
func (m PermissionMatrix) Toggle(role Role, permission string) PermissionMatrix {
	next := PermissionMatrix{}
	for r, perms := range m {
		next[r] = map[string]bool{}
		for p := range perms {
			next[r][p] = true
		}
	}
	if next[role] == nil {
		next[role] = map[string]bool{}
	}
	if next[role][permission] {
		delete(next[role], permission)
	} else {
		next[role][permission] = true
	}
	return next
}

// Rows flattens the matrix back into persistable (role, permission) pairs.
func (m PermissionMatrix) Rows() []RolePermission {
	var rows []RolePermission
	for role, perms := range m {
		for perm, granted := range perms {
			if granted {
				rows = append(rows, RolePermission{Role: role, Permission: perm})
			}
		}
	}
	return rows
}

// Has reports whether the role holds the permission.
func (m PermissionMatrix) Has(role Role, permission string) bool {
	return m[role][permission]
}

// DefaultMatrix seeds a fresh installation. Admin holds everything; HR runs
// approvals, payroll and exports; employees log and read their own records.
func DefaultMatrix() PermissionMatrix {
	m := PermissionMatrix{
		RoleAdmin: {},
		RoleHR: {
			PermWorkingHoursRead:    true,
			PermWorkingHoursApprove: true,
			PermRostersRead:         true,
			PermRostersWrite:        true,
			PermPayrollRead:         true,
			PermPayrollGenerate:     true,
			PermPayrollApprove:      true,
			PermPayrollExport:       true,
		},
		RoleEmployee: {
			PermWorkingHoursRead:  true,
			PermWorkingHoursWrite: true,
			PermRostersRead:       true,
		},
	}
	for _, p := range AllPermissions {
		m[RoleAdmin][p] = true
	}
	return m
}

package models

import "testing"

func TestMatrixToggleRoundTrip(t *testing.T) {
	m := DefaultMatrix()
	once := m.Toggle(RoleEmployee, PermPayrollRead)
	twice := once.Toggle(RoleEmployee, PermPayrollRead)

	if !once.Has(RoleEmployee, PermPayrollRead) {
		t.Error("first toggle should grant the permission")
	}
	if twice.Has(RoleEmployee, PermPayrollRead) != m.Has(RoleEmployee, PermPayrollRead) {
		t.Error("toggling twice should restore the original grant")
	}
}

func TestMatrixToggleDoesNotMutateReceiver(t *testing.T) {
	m := DefaultMatrix()
	before := m.Has(RoleHR, PermPermissionsManage)
	_ = m.Toggle(RoleHR, PermPermissionsManage)
	if m.Has(RoleHR, PermPermissionsManage) != before {
		t.Error("Toggle must return a copy, not mutate the receiver")
	}
}

func TestMatrixToggleUnknownRole(t *testing.T) {
	m := PermissionMatrix{}
	next := m.Toggle(RoleHR, PermRostersRead)
	if !next.Has(RoleHR, PermRostersRead) {
		t.Error("toggle on an absent role should create the grant")
	}
}

func TestBuildMatrixRowsRoundTrip(t *testing.T) {
	m := DefaultMatrix()
	rebuilt := BuildMatrix(m.Rows())
	for role, perms := range m {
		for perm := range perms {
			if !rebuilt.Has(role, perm) {
				t.Errorf("lost grant (%s, %s) in rows round trip", role, perm)
			}
		}
	}
	if got, want := len(rebuilt.Rows()), len(m.Rows()); got != want {
		t.Errorf("rebuilt matrix has %d rows, want %d", got, want)
	}
}

func TestDefaultMatrixAdminHoldsEverything(t *testing.T) {
	m := DefaultMatrix()
	for _, p := range AllPermissions {
		if !m.Has(RoleAdmin, p) {
			t.Errorf("admin missing %s", p)
		}
	}
}

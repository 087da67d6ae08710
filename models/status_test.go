package models

import "testing"

func TestWorkingHourTransitions(t *testing.T) {
	tests := []struct {
		from WorkingHourStatus
		to   WorkingHourStatus
		want bool
	}{
		{WorkingHourPending, WorkingHourApproved, true},
		{WorkingHourPending, WorkingHourRejected, true},
		{WorkingHourPending, WorkingHourPaid, false},
		{WorkingHourApproved, WorkingHourPaid, true},
		{WorkingHourApproved, WorkingHourPending, false},
		{WorkingHourRejected, WorkingHourApproved, false},
		{WorkingHourPaid, WorkingHourPending, false},
		{WorkingHourPaid, WorkingHourApproved, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestPayrollTransitionsAreMonotonic(t *testing.T) {
	tests := []struct {
		from PayrollStatus
		to   PayrollStatus
		want bool
	}{
		{PayrollPending, PayrollApproved, true},
		{PayrollApproved, PayrollPaid, true},
		{PayrollPending, PayrollPaid, false},
		{PayrollApproved, PayrollPending, false},
		{PayrollPaid, PayrollPending, false},
		{PayrollPaid, PayrollApproved, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

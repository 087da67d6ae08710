package models

import "testing"

func TestRosterIsEditable(t *testing.T) {
	tests := []struct {
		name   string
		locked bool
		linked []WorkingHour
		want   bool
	}{
		{name: "no linked hours", want: true},
		{name: "only pending", linked: []WorkingHour{{Status: WorkingHourPending}}, want: true},
		{name: "only rejected", linked: []WorkingHour{{Status: WorkingHourRejected}}, want: true},
		{
			name: "one approved among others",
			linked: []WorkingHour{
				{Status: WorkingHourPending},
				{Status: WorkingHourApproved},
				{Status: WorkingHourRejected},
			},
			want: false,
		},
		{name: "paid implies approval", linked: []WorkingHour{{Status: WorkingHourPaid}}, want: false},
		{name: "locked with no approved entries", locked: true, want: false},
		{name: "locked and approved", locked: true, linked: []WorkingHour{{Status: WorkingHourApproved}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Roster{Locked: tt.locked}
			if got := r.IsEditable(tt.linked); got != tt.want {
				t.Errorf("IsEditable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRosterStatusTransitions(t *testing.T) {
	if !RosterPending.CanTransitionTo(RosterConfirmed) {
		t.Error("pending -> confirmed should be allowed")
	}
	if !RosterConfirmed.CanTransitionTo(RosterCancelled) {
		t.Error("confirmed -> cancelled should be allowed")
	}
	if RosterCancelled.CanTransitionTo(RosterPending) {
		t.Error("cancelled -> pending should be rejected")
	}
}

package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrRosterLocked signals an edit attempt on a roster that is no longer
// editable. Handlers surface it as its own error code so the client can show
// a specific message instead of a generic validation failure.
var ErrRosterLocked = errors.New("roster is locked")

type RosterStatus string

const (
	RosterPending   RosterStatus = "pending"
	RosterConfirmed RosterStatus = "confirmed"
	RosterCancelled RosterStatus = "cancelled"
)

var rosterTransitions = map[RosterStatus][]RosterStatus{
	RosterPending:   {RosterConfirmed, RosterCancelled},
	RosterConfirmed: {RosterCancelled},
	RosterCancelled: {},
}

func (s RosterStatus) CanTransitionTo(next RosterStatus) bool {
	for _, allowed := range rosterTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Roster is a planned shift assignment, distinct from the working-hour
// records that fulfill it.
type Roster struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`
	Name             string             `gorm:"not null;size:200" json:"name"`
	ClientID         *uint              `gorm:"index" json:"client_id"`
	Client           *Client            `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ProjectID        *uint              `gorm:"index" json:"project_id"`
	Project          *Project           `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	StartDate        time.Time          `gorm:"not null;type:date" json:"start_date"`
	EndDate          *time.Time         `gorm:"type:date" json:"end_date"`
	StartTime        string             `gorm:"size:5" json:"start_time"`
	EndTime          string             `gorm:"size:5" json:"end_time"`
	TotalHours       float64            `json:"total_hours"`
	ExpectedProfiles int                `gorm:"default:1" json:"expected_profiles"`
	PerHourRate      decimal.Decimal    `gorm:"type:numeric(12,2)" json:"per_hour_rate"`
	Notes            string             `gorm:"size:500" json:"notes"`
	Status           RosterStatus       `gorm:"not null;size:20;default:'pending'" json:"status"`
	Locked           bool               `gorm:"default:false" json:"locked"`
	Assignments      []RosterAssignment `gorm:"foreignKey:RosterID" json:"assignments,omitempty"`
	WorkingHours     []WorkingHour      `gorm:"foreignKey:RosterID" json:"working_hours,omitempty"`
}

// IsEditable reports whether the roster may still be mutated. A roster stops
// being editable as soon as any fulfilling working-hour record has been
// approved (paid implies a prior approval), or when it is explicitly locked.
// Callers must evaluate this against freshly loaded working hours.
func (r *Roster) IsEditable(linked []WorkingHour) bool {
	if r.Locked {
		return false
	}
	for _, wh := range linked {
		if wh.Status == WorkingHourApproved || wh.Status == WorkingHourPaid {
			return false
		}
	}
	return true
}

// RosterAssignment pins a worker to a roster entry.
type RosterAssignment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	RosterID  uint           `gorm:"not null;index" json:"roster_id"`
	Roster    *Roster        `gorm:"foreignKey:RosterID" json:"roster,omitempty"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Business-rule errors, kept distinct from validation and persistence
// failures so handlers can map them to specific responses.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRecordPaid        = errors.New("record is paid and immutable")
)

type WorkingHourStatus string

const (
	WorkingHourPending  WorkingHourStatus = "pending"
	WorkingHourApproved WorkingHourStatus = "approved"
	WorkingHourRejected WorkingHourStatus = "rejected"
	WorkingHourPaid     WorkingHourStatus = "paid"
)

var workingHourTransitions = map[WorkingHourStatus][]WorkingHourStatus{
	WorkingHourPending:  {WorkingHourApproved, WorkingHourRejected},
	WorkingHourApproved: {WorkingHourPaid},
	WorkingHourRejected: {},
	WorkingHourPaid:     {},
}

func (s WorkingHourStatus) CanTransitionTo(next WorkingHourStatus) bool {
	for _, allowed := range workingHourTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ValidWorkingHourStatus(s WorkingHourStatus) bool {
	_, ok := workingHourTransitions[s]
	return ok
}

// WorkingHour is an actual log of hours worked. TotalHours, OvertimeHours and
// PayableAmount are derived and recomputed on every mutation of the inputs
// (times, actual hours, rate).
type WorkingHour struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
	UserID        uint              `gorm:"not null;index" json:"user_id"`
	User          User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ClientID      *uint             `gorm:"index" json:"client_id"`
	Client        *Client           `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ProjectID     *uint             `gorm:"index" json:"project_id"`
	Project       *Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Date          time.Time         `gorm:"not null;type:date" json:"date"`
	StartTime     string            `gorm:"size:5" json:"start_time"`
	EndTime       string            `gorm:"size:5" json:"end_time"`
	TotalHours    float64           `json:"total_hours"`
	ActualHours   float64           `json:"actual_hours"`
	OvertimeHours float64           `json:"overtime_hours"`
	HourlyRate    decimal.Decimal   `gorm:"type:numeric(12,2)" json:"hourly_rate"`
	PayableAmount decimal.Decimal   `gorm:"type:numeric(14,2)" json:"payable_amount"`
	Notes         string            `gorm:"size:500" json:"notes"`
	Status        WorkingHourStatus `gorm:"not null;size:20;default:'pending';index" json:"status"`
	RosterID      *uint             `gorm:"index" json:"roster_id"`
	Roster        *Roster           `gorm:"foreignKey:RosterID" json:"roster,omitempty"`
}

func (w *WorkingHour) IsPaid() bool {
	return w.Status == WorkingHourPaid
}

type WorkingHourFilter struct {
	UserID    uint
	ClientID  uint
	ProjectID uint
	Status    WorkingHourStatus
	Month     int
	Year      int
}

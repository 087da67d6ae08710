package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleEmployee Role = "EMPLOYEE"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

// User is a worker profile: login identity plus the defaults used when
// logging hours (hourly rate, bank account).
type User struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`
	Username           string          `gorm:"uniqueIndex;not null;size:100" json:"username"`
	FullName           string          `gorm:"not null;size:200" json:"full_name"`
	PasswordHash       string          `gorm:"not null" json:"-"`
	Role               Role            `gorm:"not null;size:20" json:"role"`
	MustChangePassword bool            `gorm:"default:true" json:"must_change_password"`
	HourlyRate         decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"hourly_rate"`
	Active             bool            `gorm:"default:true" json:"active"`
	BankAccountID      *uint           `gorm:"index" json:"bank_account_id"`
	BankAccount        *BankAccount    `gorm:"foreignKey:BankAccountID" json:"bank_account,omitempty"`
	WorkingHours       []WorkingHour   `gorm:"foreignKey:UserID" json:"working_hours,omitempty"`
}

func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) CanManageHoursFor(userID uint) bool {
	if u.IsAdmin() {
		return true
	}
	return u.ID == userID
}

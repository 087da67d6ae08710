package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayrollStatus string

const (
	PayrollPending  PayrollStatus = "pending"
	PayrollApproved PayrollStatus = "approved"
	PayrollPaid     PayrollStatus = "paid"
)

// Payroll status only moves forward: pending -> approved -> paid.
var payrollTransitions = map[PayrollStatus][]PayrollStatus{
	PayrollPending:  {PayrollApproved},
	PayrollApproved: {PayrollPaid},
	PayrollPaid:     {},
}

func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	for _, allowed := range payrollTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ValidPayrollStatus(s PayrollStatus) bool {
	_, ok := payrollTransitions[s]
	return ok
}

// Payroll is a pay statement for one worker over a period, aggregating the
// approved working-hour records it was generated from.
type Payroll struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PeriodStart   time.Time       `gorm:"not null;type:date" json:"period_start"`
	PeriodEnd     time.Time       `gorm:"not null;type:date" json:"period_end"`
	TotalHours    float64         `json:"total_hours"`
	HourlyRate    decimal.Decimal `gorm:"type:numeric(12,2)" json:"hourly_rate"`
	GrossPay      decimal.Decimal `gorm:"type:numeric(14,2)" json:"gross_pay"`
	Deductions    decimal.Decimal `gorm:"type:numeric(14,2)" json:"deductions"`
	NetPay        decimal.Decimal `gorm:"type:numeric(14,2)" json:"net_pay"`
	Status        PayrollStatus   `gorm:"not null;size:20;default:'pending';index" json:"status"`
	BankAccountID *uint           `gorm:"index" json:"bank_account_id"`
	BankAccount   *BankAccount    `gorm:"foreignKey:BankAccountID" json:"bank_account,omitempty"`
	WorkingHours  []WorkingHour   `gorm:"many2many:payroll_working_hours" json:"working_hours,omitempty"`
}

func (p *Payroll) IsPaid() bool {
	return p.Status == PayrollPaid
}

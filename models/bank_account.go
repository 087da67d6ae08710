package models

import (
	"time"
)

type BankAccount struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	BankName      string    `gorm:"not null;size:200" json:"bank_name"`
	AccountName   string    `gorm:"not null;size:200" json:"account_name"`
	AccountNumber string    `gorm:"not null;size:50" json:"account_number"`
	Active        bool      `gorm:"default:true" json:"active"`
}

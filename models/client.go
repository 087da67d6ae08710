package models

import (
	"time"
)

// Client is the company work is billed against.
type Client struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Company      string    `gorm:"size:200" json:"company"`
	ContactEmail string    `gorm:"size:200" json:"contact_email"`
	Active       bool      `gorm:"default:true" json:"active"`
	Projects     []Project `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
}

package models

import (
	"etm/src/types"
	"time"
)

type User struct {
	ID            uint         `gorm:"primarykey" json:"id"`
	Name          string       `json:"name,omitempty"`
	Email         string       `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash  string       `json:"-"`
	DateOfBirth   *time.Time   `json:"date_of_birth,omitempty"`
	Gender        types.Gender `json:"gender,omitempty"`
	TotalEarnings float64      `json:"total_earnings"`

	Tickets []*Event `gorm:"many2many:user_tickets;" json:"tickets,omitempty"`

	types.Timestamps
}

package models

import (
	"etm/src/types"
	"time"
)

// PlatformEarning is the commission record written once per settled paid
// booking. Rows are immutable; only the event deletion cascade removes them.
type PlatformEarning struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	EventID         uint      `json:"event_id"`
	Amount          float64   `json:"amount"`
	TransactionDate time.Time `json:"transaction_date"`

	Event Event `gorm:"foreignKey:event_id" json:"-"`

	types.Timestamps
}

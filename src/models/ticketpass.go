package models

import "etm/src/types"

// TicketPass is the admission credential minted for every settled booking.
// Code goes into the QR the attendee presents at the door.
type TicketPass struct {
	ID      uint    `gorm:"primarykey" json:"id"`
	EventID uint    `json:"event_id"`
	UserID  uint    `json:"user_id"`
	Code    string  `gorm:"uniqueIndex" json:"code"`
	QRUrl   *string `json:"qr_url,omitempty"`
	Used    bool    `json:"used"`

	Event Event `gorm:"foreignKey:event_id" json:"-"`
	User  User  `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}

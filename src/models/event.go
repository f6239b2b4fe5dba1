package models

import (
	"etm/src/lib"
	"etm/src/types"
	"log"
	"time"
)

type Event struct {
	ID           uint              `gorm:"primarykey" json:"id"`
	Title        string            `json:"title,omitempty"`
	About        *string           `json:"about,omitempty"`
	Slug         string            `json:"slug,omitempty"`
	Location     string            `json:"location,omitempty"`
	DateTime     time.Time         `json:"date_time,omitempty"`
	Status       types.EventStatus `gorm:"default:'upcoming'" json:"status,omitempty"`
	CreatedBy    uint              `json:"created_by,omitempty"`
	TicketPrice  float64           `json:"ticket_price"`
	MaxCapacity  int               `json:"max_capacity"`
	TicketsSold  uint              `json:"tickets_sold"`
	MediaURL     *string           `json:"media_url,omitempty"`
	ThumbnailURL *string           `json:"thumbnail_url,omitempty"`

	AgeRestriction    types.BucketList `gorm:"type:jsonb" json:"age_restriction,omitempty"`
	GenderRestriction types.GenderList `gorm:"type:jsonb" json:"gender_restriction,omitempty"`

	Creator   User    `gorm:"foreignKey:created_by" json:"-"`
	Attendees []*User `gorm:"many2many:event_attendees;" json:"attendees,omitempty"`

	types.Timestamps
}

// HasAttendee reports membership in the booked set. Attendees must be
// preloaded (or fetched inside the running transaction).
func (e *Event) HasAttendee(userId uint) bool {
	for _, a := range e.Attendees {
		if a.ID == userId {
			return true
		}
	}
	return false
}

func BookingConfirmedProducer(payload map[string]any) error {
	err := lib.KafkaProduceMessage("bookings_confirmed_producer", "bookings-confirmed", payload)
	if err != nil {
		log.Printf("Error on producing message: %s\n", err.Error())
		return err
	}
	return nil
}

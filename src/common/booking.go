package common

import (
	"errors"
	"etm/src/db"
	"etm/src/models"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrNotFreeEvent   = errors.New("event requires payment")
	ErrAmountMismatch = errors.New("paid amount does not match the ticket price")
	ErrFullyBooked    = errors.New("event is now fully booked")
)

// BookingDenied wraps an eligibility denial so handlers can map it to a
// response without string matching.
type BookingDenied struct {
	Reason DenyReason
}

func (e *BookingDenied) Error() string {
	return string(e.Reason)
}

type SettleOutcome string

const (
	SETTLE_APPLIED         SettleOutcome = "applied"
	SETTLE_ALREADY_APPLIED SettleOutcome = "already_applied"
)

// ApplyFreeBooking books a zero-price event in one transaction: the event
// row is locked, eligibility re-checked, then the attendee set, capacity,
// sold counter, the user's ticket set and a ticket pass all commit together.
func ApplyFreeBooking(dbh *gorm.DB, eventId, userId uint) (*models.TicketPass, error) {
	var pass *models.TicketPass
	err := dbh.Transaction(func(tx *gorm.DB) error {
		event, user, err := fetchForBooking(tx, eventId, userId)
		if err != nil {
			return err
		}
		if event.TicketPrice != 0 {
			return ErrNotFreeEvent
		}
		if d := CanBook(event, user); !d.Allowed {
			return &BookingDenied{Reason: d.Reason}
		}
		pass, err = appendBooking(tx, event, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pass, nil
}

// SettlePaidBooking runs steps 4-8 of the payment callback inside one
// transaction: re-fetch under lock, amount cross-check, idempotency check,
// capacity re-check, then booking plus commission split. Any error aborts
// the whole unit.
func SettlePaidBooking(dbh *gorm.DB, eventId, userId uint, amountPaid int64) (SettleOutcome, *models.TicketPass, error) {
	outcome := SETTLE_APPLIED
	var pass *models.TicketPass
	err := dbh.Transaction(func(tx *gorm.DB) error {
		event, user, err := fetchForBooking(tx, eventId, userId)
		if err != nil {
			return err
		}
		if expected := ToMinorUnits(event.TicketPrice); amountPaid != expected {
			return fmt.Errorf("%w: paid %d, expected %d", ErrAmountMismatch, amountPaid, expected)
		}
		// Duplicate provider callbacks land here: commit with no writes.
		if event.HasAttendee(userId) {
			outcome = SETTLE_ALREADY_APPLIED
			return nil
		}
		// Capacity was never held at initiation, so a slower payer can lose
		// the last seat even though the charge went through.
		if event.MaxCapacity <= 0 {
			return ErrFullyBooked
		}
		pass, err = appendBooking(tx, event, user)
		if err != nil {
			return err
		}
		commission, hostEarnings := SplitCommission(event.TicketPrice)
		if err := tx.
			Model(&models.User{}).
			Where("id = ?", event.CreatedBy).
			Update("total_earnings", gorm.Expr("total_earnings + ?", hostEarnings)).
			Error; err != nil {
			return err
		}
		earning := models.PlatformEarning{
			EventID:         event.ID,
			Amount:          commission,
			TransactionDate: time.Now(),
		}
		if err := tx.Create(&earning).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return outcome, nil, err
	}
	return outcome, pass, nil
}

func fetchForBooking(tx *gorm.DB, eventId, userId uint) (*models.Event, *models.User, error) {
	var event models.Event
	if err := db.LockForUpdate(tx).
		Preload("Attendees").
		Where(&models.Event{ID: eventId}).
		First(&event).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrEventNotFound
		}
		return nil, nil, err
	}
	var user models.User
	if err := tx.
		Where(&models.User{ID: userId}).
		First(&user).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	return &event, &user, nil
}

func appendBooking(tx *gorm.DB, event *models.Event, user *models.User) (*models.TicketPass, error) {
	if err := tx.
		Model(event).
		Association("Attendees").
		Append(&models.User{ID: user.ID}); err != nil {
		return nil, err
	}
	if err := tx.
		Model(&models.Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]any{
			"max_capacity": gorm.Expr("max_capacity - 1"),
			"tickets_sold": gorm.Expr("tickets_sold + 1"),
		}).
		Error; err != nil {
		return nil, err
	}
	if err := tx.
		Model(user).
		Association("Tickets").
		Append(&models.Event{ID: event.ID}); err != nil {
		return nil, err
	}
	pass := models.TicketPass{
		EventID: event.ID,
		UserID:  user.ID,
		Code:    uuid.NewString(),
	}
	if err := tx.Create(&pass).Error; err != nil {
		return nil, err
	}
	return &pass, nil
}

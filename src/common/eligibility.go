package common

import (
	"etm/src/models"
	"etm/src/types"
	"time"
)

type DenyReason string

const (
	DENY_FULLY_BOOKED      DenyReason = "Event is fully booked"
	DENY_AGE_RESTRICTED    DenyReason = "You do not meet the age requirement for this event"
	DENY_GENDER_RESTRICTED DenyReason = "This event is restricted for your gender"
	DENY_ALREADY_BOOKED    DenyReason = "You have already booked this event"
)

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// CanBook evaluates whether user may book event. Pure: checks run against
// the snapshots passed in, first failure wins. Callers must re-run it (or
// the equivalent checks) inside the settlement transaction, since state can
// change between payment initiation and confirmation.
func CanBook(event *models.Event, user *models.User) Decision {
	if event.MaxCapacity <= 0 {
		return Decision{Reason: DENY_FULLY_BOOKED}
	}
	age := AgeAt(user.DateOfBirth, time.Now())
	if len(event.AgeRestriction) > 0 && age != nil {
		for _, bucket := range event.AgeRestriction {
			if bucketBlocks(bucket, *age) {
				return Decision{Reason: DENY_AGE_RESTRICTED}
			}
		}
	}
	if len(event.GenderRestriction) > 0 {
		for _, g := range event.GenderRestriction {
			if g == user.Gender {
				return Decision{Reason: DENY_GENDER_RESTRICTED}
			}
		}
	}
	if event.TicketPrice == 0 && event.HasAttendee(user.ID) {
		return Decision{Reason: DENY_ALREADY_BOOKED}
	}
	return Decision{Allowed: true}
}

// bucketBlocks keeps the bucket semantics of the booking form as deployed:
// a listed bucket blocks only ages that fall OUTSIDE it (except "<18" and
// "40<", which block the younger side). So "18 - 29" on the list blocks a
// 17-year-old but admits a 25-year-old.
// TODO: product to confirm whether the intent was "restricted to" or
// "blocked from"; until then the deployed behavior stands.
func bucketBlocks(bucket types.AgeBucket, age int) bool {
	switch bucket {
	case types.AGE_UNDER_18:
		return age < 18
	case types.AGE_18_TO_29:
		return age < 18 || age > 29
	case types.AGE_30_TO_39:
		return age < 30 || age > 39
	case types.AGE_40_UP:
		return age < 40
	}
	return false
}

// AgeAt returns whole years elapsed since dob, or nil when dob is absent or
// not a sensible date. A nil age never trips an age restriction.
func AgeAt(dob *time.Time, now time.Time) *int {
	if dob == nil || dob.IsZero() || dob.After(now) {
		return nil
	}
	years := now.Year() - dob.Year()
	anniversary := time.Date(now.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	ref := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if ref.Before(anniversary) {
		years--
	}
	return &years
}

package common

import (
	"etm/src/models"
	"etm/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func userAged(years int) *models.User {
	dob := time.Now().AddDate(-years, 0, -1)
	return &models.User{ID: 1, DateOfBirth: &dob}
}

func openEvent() *models.Event {
	return &models.Event{ID: 1, MaxCapacity: 10}
}

func TestCanBookCapacity(t *testing.T) {
	event := openEvent()
	event.MaxCapacity = 0
	d := CanBook(event, userAged(25))
	assert.False(t, d.Allowed)
	assert.Equal(t, DENY_FULLY_BOOKED, d.Reason)

	event.MaxCapacity = 1
	assert.True(t, CanBook(event, userAged(25)).Allowed)
}

func TestCanBookAgeBuckets(t *testing.T) {
	cases := []struct {
		name    string
		buckets types.BucketList
		age     int
		allowed bool
	}{
		{"under-18 bucket blocks a minor", types.BucketList{types.AGE_UNDER_18}, 17, false},
		{"under-18 bucket admits an adult", types.BucketList{types.AGE_UNDER_18}, 18, true},
		{"18-29 bucket admits 29", types.BucketList{types.AGE_18_TO_29}, 29, true},
		{"18-29 bucket blocks 17", types.BucketList{types.AGE_18_TO_29}, 17, false},
		{"18-29 bucket blocks 30", types.BucketList{types.AGE_18_TO_29}, 30, false},
		{"30-39 bucket admits 35", types.BucketList{types.AGE_30_TO_39}, 35, true},
		{"30-39 bucket blocks 29", types.BucketList{types.AGE_30_TO_39}, 29, false},
		{"40-up bucket blocks 39", types.BucketList{types.AGE_40_UP}, 39, false},
		{"40-up bucket admits 40", types.BucketList{types.AGE_40_UP}, 40, true},
		{"any blocking bucket wins", types.BucketList{types.AGE_UNDER_18, types.AGE_40_UP}, 25, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			event := openEvent()
			event.AgeRestriction = c.buckets
			d := CanBook(event, userAged(c.age))
			assert.Equal(t, c.allowed, d.Allowed)
			if !c.allowed {
				assert.Equal(t, DENY_AGE_RESTRICTED, d.Reason)
			}
		})
	}
}

func TestCanBookNoDateOfBirth(t *testing.T) {
	event := openEvent()
	event.AgeRestriction = types.BucketList{types.AGE_UNDER_18}
	// Without a date of birth the age checks cannot run; the user passes.
	d := CanBook(event, &models.User{ID: 2})
	assert.True(t, d.Allowed)
}

func TestCanBookGender(t *testing.T) {
	event := openEvent()
	event.GenderRestriction = types.GenderList{types.GENDER_MALE}

	male := userAged(25)
	male.Gender = types.GENDER_MALE
	d := CanBook(event, male)
	assert.False(t, d.Allowed)
	assert.Equal(t, DENY_GENDER_RESTRICTED, d.Reason)

	female := userAged(25)
	female.Gender = types.GENDER_FEMALE
	assert.True(t, CanBook(event, female).Allowed)
}

func TestCanBookDuplicateFreeBooking(t *testing.T) {
	user := userAged(25)
	event := openEvent()
	event.Attendees = []*models.User{{ID: user.ID}}

	d := CanBook(event, user)
	assert.False(t, d.Allowed)
	assert.Equal(t, DENY_ALREADY_BOOKED, d.Reason)

	// Paid events settle duplicates idempotently instead; the pre-check
	// only rejects repeats on free events.
	event.TicketPrice = 25
	assert.True(t, CanBook(event, user).Allowed)
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	dob := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)
	age := AgeAt(&dob, now)
	assert.NotNil(t, age)
	assert.Equal(t, 26, *age)

	dob = time.Date(2000, 6, 16, 0, 0, 0, 0, time.UTC)
	age = AgeAt(&dob, now)
	assert.Equal(t, 25, *age)

	assert.Nil(t, AgeAt(nil, now))
	zero := time.Time{}
	assert.Nil(t, AgeAt(&zero, now))
	future := now.AddDate(1, 0, 0)
	assert.Nil(t, AgeAt(&future, now))
}

package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, &a)
}

// jsonbBytes accepts both []byte (postgres) and string (sqlite) column reads.
func jsonbBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return []byte("null"), nil
	}
	return nil, errors.New("type assertion to []byte failed")
}

// AgeBucket labels match what the booking form submits. A restriction list
// holds zero or more of these; the matching rules live in common.CanBook.
type AgeBucket string

const (
	AGE_UNDER_18 AgeBucket = "<18"
	AGE_18_TO_29 AgeBucket = "18 - 29"
	AGE_30_TO_39 AgeBucket = "30 - 39"
	AGE_40_UP    AgeBucket = "40<"
)

type BucketList []AgeBucket

func (a BucketList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *BucketList) Scan(value any) error {
	b, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, &a)
}

type Gender string

const (
	GENDER_MALE   Gender = "male"
	GENDER_FEMALE Gender = "female"
)

type GenderList []Gender

func (a GenderList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *GenderList) Scan(value any) error {
	b, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, &a)
}

type EventStatus string

const (
	EVENT_UPCOMING  EventStatus = "upcoming"
	EVENT_COMPLETED EventStatus = "completed"
	EVENT_CANCELED  EventStatus = "canceled"
)

type WithdrawalStatus string

const (
	WITHDRAWAL_PENDING   WithdrawalStatus = "pending"
	WITHDRAWAL_COMPLETED WithdrawalStatus = "completed"
	WITHDRAWAL_FAILED    WithdrawalStatus = "failed"
)

type CreateEventRequestBody struct {
	Title             string      `json:"title" binding:"required"`
	About             string      `json:"about,omitempty"`
	Location          string      `json:"location,omitempty" binding:"required"`
	DateTime          string      `json:"date_time" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	TicketPrice       float64     `json:"ticket_price"`
	MaxCapacity       int         `json:"max_capacity" binding:"required,gt=0"`
	AgeRestriction    []AgeBucket `json:"age_restriction,omitempty"`
	GenderRestriction []Gender    `json:"gender_restriction,omitempty"`
	MediaURL          string      `json:"media_url,omitempty"`
	ThumbnailURL      string      `json:"thumbnail_url,omitempty"`
}

type RegisterUserRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      Gender `json:"gender,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type WithdrawRequestBody struct {
	AccountNumber string `json:"account_number" binding:"required,bankaccount"`
	BankCode      string `json:"bank_code" binding:"required"`
	AccountName   string `json:"account_name,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type VerifyPaymentQuery struct {
	Reference string `form:"reference" binding:"required"`
	EventID   uint   `form:"eventId" binding:"required"`
	UserID    uint   `form:"userId" binding:"required"`
}

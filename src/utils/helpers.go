package utils

import (
	"bytes"
	"context"
	"errors"
	"etm/src/config"
	"etm/src/lib"
	"etm/src/models"
	"etm/src/types"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gosimple/slug"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

var ErrNotEventOwner = errors.New("only the event creator can perform this action")

func GenerateJWT(email string, id uint) (string, error) {
	claims := types.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(id),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func CreateNewEvent(dbh *gorm.DB, params *types.CreateEventRequestBody, creatorId uint) (uint, error) {
	dateTime, err := time.Parse(config.TIME_PARSE_FORMAT, params.DateTime)
	if err != nil {
		log.Printf("Error parsing date_time: %s\n", err.Error())
		return 0, err
	}
	event := models.Event{
		Title:             params.Title,
		Location:          params.Location,
		DateTime:          dateTime,
		Slug:              slug.Make(params.Title),
		CreatedBy:         creatorId,
		TicketPrice:       params.TicketPrice,
		MaxCapacity:       params.MaxCapacity,
		AgeRestriction:    params.AgeRestriction,
		GenderRestriction: params.GenderRestriction,
		Status:            types.EVENT_UPCOMING,
	}
	if params.About != "" {
		event.About = &params.About
	}
	if params.MediaURL != "" {
		event.MediaURL = &params.MediaURL
	}
	if params.ThumbnailURL != "" {
		event.ThumbnailURL = &params.ThumbnailURL
	}

	err = dbh.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&event).Error
	})
	if err != nil {
		return 0, err
	}

	// Flip the event to completed once its date passes.
	eventId := event.ID
	go func() {
		id, err := lib.CreateOneTimeCronJob(
			gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(dateTime)),
			gocron.NewTask(func(id uint) {
				if err := dbh.
					Model(&models.Event{}).
					Where("id = ? AND status = ?", id, types.EVENT_UPCOMING).
					Update("status", types.EVENT_COMPLETED).
					Error; err != nil {
					log.Printf("Error completing event %d: %s\n", id, err.Error())
				}
			}, eventId),
		)
		if err != nil {
			log.Printf("Error creating job for Event: id=%d error=%s\n", eventId, err.Error())
			return
		}
		log.Printf("Created job for Event[%d] with ID %s\n", eventId, *id)
	}()
	return event.ID, nil
}

// DeleteEventCascade removes an event together with everything hanging off
// it: commission records, ticket passes, the attendee set, and the event's
// entry in every holder's ticket list.
func DeleteEventCascade(dbh *gorm.DB, eventId uint, requesterId uint) error {
	return dbh.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.
			Where(&models.Event{ID: eventId}).
			First(&event).
			Error; err != nil {
			return err
		}
		if event.CreatedBy != requesterId {
			return ErrNotEventOwner
		}
		if err := tx.
			Where(&models.PlatformEarning{EventID: eventId}).
			Delete(&models.PlatformEarning{}).
			Error; err != nil {
			return err
		}
		if err := tx.
			Where(&models.TicketPass{EventID: eventId}).
			Delete(&models.TicketPass{}).
			Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_tickets WHERE event_id = ?", eventId).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_attendees WHERE event_id = ?", eventId).Error; err != nil {
			return err
		}
		if err := tx.Delete(&event).Error; err != nil {
			return err
		}
		return nil
	})
}

// UploadTicketPassQR renders the pass code as a QR image, pushes it to the
// storage bucket and records the public URL. Best-effort: with no bucket
// configured the pass just keeps a nil URL.
func UploadTicketPassQR(dbh *gorm.DB, pass *models.TicketPass) {
	bucket := lib.GetStorageBucket()
	if bucket == nil {
		return
	}
	qrc, err := qrcode.New(pass.Code)
	if err != nil {
		log.Printf("Error generating QR for pass %s: %s\n", pass.Code, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		log.Printf("Error encoding QR for pass %s: %s\n", pass.Code, err.Error())
		return
	}
	objectName := fmt.Sprintf("passes/%s.png", pass.Code)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	w := bucket.Object(objectName).NewWriter(ctx)
	w.ContentType = "image/png"
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error uploading QR for pass %s: %s\n", pass.Code, err.Error())
		return
	}
	if err := w.Close(); err != nil {
		log.Printf("Error uploading QR for pass %s: %s\n", pass.Code, err.Error())
		return
	}
	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", config.GetStorageBucketName(), objectName)
	if err := dbh.
		Model(&models.TicketPass{}).
		Where("id = ?", pass.ID).
		Update("qr_url", url).
		Error; err != nil {
		log.Printf("Error saving QR URL for pass %s: %s\n", pass.Code, err.Error())
	}
}

// SendBookingConfirmation mails the attendee their pass code. Fired in a
// goroutine after the booking commits.
func SendBookingConfirmation(email string, event *models.Event, pass *models.TicketPass) {
	body := fmt.Sprintf(
		"Your booking for %s on %s is confirmed.\nAdmission code: %s\n",
		event.Title, event.DateTime.Format("Mon, 02 Jan 2006 15:04"), pass.Code,
	)
	err := lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: "Ticketing",
		To:       []string{email},
		Subject:  fmt.Sprintf("Booking confirmed: %s", event.Title),
		Body:     body,
	})
	if err != nil {
		log.Printf("Error sending confirmation mail to %s: %s\n", email, err.Error())
	}
}

// SendWithdrawalReceipt mails the host after a completed payout.
func SendWithdrawalReceipt(email string, w *models.Withdrawal) {
	ref := ""
	if w.TransactionReference != nil {
		ref = *w.TransactionReference
	}
	body := fmt.Sprintf(
		"Your withdrawal of %.2f has been processed.\nReference: %s\n",
		float64(w.Amount)/100, ref,
	)
	err := lib.SendMail(&lib.SendMailInput{
		From:     os.Getenv("MAIL_FROM"),
		FromName: "Ticketing",
		To:       []string{email},
		Subject:  "Withdrawal processed",
		Body:     body,
	})
	if err != nil {
		log.Printf("Error sending receipt mail to %s: %s\n", email, err.Error())
	}
}

package main

import (
	"context"
	"errors"
	"etm/src/common"
	"etm/src/config"
	"etm/src/lib"
	"etm/src/models"
	"etm/src/types"
	"etm/src/utils"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

// bookingHandlers drives the two-phase booking flow: free events commit
// immediately, paid events go through the gateway and come back via the
// callback route in paymentHandlers.
func bookingHandlers(g *gin.RouterGroup, d *Deps) *gin.RouterGroup {
	g.
		POST("/events/book/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")

			var event models.Event
			if err := d.DB.
				Model(&models.Event{}).
				Preload("Attendees").
				Where(&models.Event{ID: params.ID}).
				First(&event).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
				return
			}
			var user models.User
			if err := d.DB.
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}

			if decision := common.CanBook(&event, &user); !decision.Allowed {
				ctx.JSON(denialStatus(decision.Reason), gin.H{"error": string(decision.Reason)})
				return
			}

			if event.TicketPrice == 0 {
				pass, err := common.ApplyFreeBooking(d.DB, event.ID, user.ID)
				if err != nil {
					var denied *common.BookingDenied
					if errors.As(err, &denied) {
						ctx.JSON(denialStatus(denied.Reason), gin.H{"error": string(denied.Reason)})
						return
					}
					log.Printf("Free booking failed for event %d user %d: %s\n", event.ID, user.ID, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
					return
				}
				go utils.UploadTicketPassQR(d.DB, pass)
				go utils.SendBookingConfirmation(user.Email, &event, pass)
				go models.BookingConfirmedProducer(map[string]any{
					"event_id": event.ID,
					"user_id":  user.ID,
					"free":     true,
				})
				ctx.JSON(http.StatusOK, gin.H{"message": "Event booked successfully"})
				return
			}

			// Paid path: nothing is reserved here. Capacity is re-checked
			// when the gateway confirms payment.
			amount := common.ToMinorUnits(event.TicketPrice)
			callbackURL := fmt.Sprintf(
				"%s/api/v1/events/payment/verify?eventId=%d&userId=%d",
				config.GetAPIHost(), event.ID, user.ID,
			)
			init, err := d.Gateway.InitializeTransaction(user.Email, amount, callbackURL)
			if err != nil {
				log.Printf("Payment initialization failed for event %d: %s\n", event.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Could not initialize payment"})
				return
			}
			if rd := lib.GetRedisClient(); rd != nil {
				correlation := fmt.Sprintf("%d:%d", event.ID, user.ID)
				if _, err := rd.SetEx(context.Background(), init.Reference, correlation, 30*time.Minute).Result(); err != nil {
					log.Printf("Error caching payment reference [%s]: %s\n", init.Reference, err.Error())
				}
			}
			ctx.JSON(http.StatusOK, gin.H{
				"authorization_url": init.AuthorizationURL,
				"reference":         init.Reference,
			})
		}).
		GET("/users/me/tickets", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var user models.User
			if err := d.DB.
				Preload("Tickets").
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user.Tickets, "count": len(user.Tickets)})
		})
	return g
}

// paymentHandlers holds the public callback the gateway redirects to.
func paymentHandlers(g *gin.RouterGroup, d *Deps) *gin.RouterGroup {
	g.GET("/events/payment/verify", func(ctx *gin.Context) {
		var q types.VerifyPaymentQuery
		if err := ctx.ShouldBindQuery(&q); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success":     false,
				"message":     "missing or malformed callback parameters",
				"redirectUrl": failureRedirect("invalid payment callback"),
			})
			return
		}

		verified, err := d.Gateway.VerifyTransaction(q.Reference)
		if err != nil {
			log.Printf("Payment verification failed for reference %s: %s\n", q.Reference, err.Error())
			respondPaymentFailure(ctx, "payment verification failed")
			return
		}
		if verified.Status != "success" {
			respondPaymentFailure(ctx, "payment was not successful")
			return
		}

		outcome, pass, err := common.SettlePaidBooking(d.DB, q.EventID, q.UserID, verified.Amount)
		if err != nil {
			log.Printf("Settlement failed for reference %s: %s\n", q.Reference, err.Error())
			switch {
			case errors.Is(err, common.ErrAmountMismatch):
				respondPaymentFailure(ctx, "paid amount does not match the ticket price")
			case errors.Is(err, common.ErrFullyBooked):
				respondPaymentFailure(ctx, "event is now fully booked")
			case errors.Is(err, common.ErrEventNotFound), errors.Is(err, common.ErrUserNotFound):
				respondPaymentFailure(ctx, "booking details could not be found")
			default:
				respondPaymentFailure(ctx, "booking could not be completed")
			}
			return
		}

		if outcome == common.SETTLE_APPLIED {
			go func() {
				var event models.Event
				var user models.User
				if err := d.DB.Where(&models.Event{ID: q.EventID}).First(&event).Error; err != nil {
					return
				}
				if err := d.DB.Where(&models.User{ID: q.UserID}).First(&user).Error; err != nil {
					return
				}
				utils.UploadTicketPassQR(d.DB, pass)
				utils.SendBookingConfirmation(user.Email, &event, pass)
				models.BookingConfirmedProducer(map[string]any{
					"event_id":  q.EventID,
					"user_id":   q.UserID,
					"reference": q.Reference,
				})
			}()
		}
		if rd := lib.GetRedisClient(); rd != nil {
			rd.Del(context.Background(), q.Reference)
		}

		ctx.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Booking confirmed",
			"redirectUrl": fmt.Sprintf("%s/booking/success?eventId=%d", config.GetAppHost(), q.EventID),
		})
	})
	return g
}

func respondPaymentFailure(ctx *gin.Context, reason string) {
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"success":     false,
		"message":     reason,
		"redirectUrl": failureRedirect(reason),
	})
}

func failureRedirect(reason string) string {
	return fmt.Sprintf("%s/booking/failed?reason=%s", config.GetAppHost(), url.QueryEscape(reason))
}

func denialStatus(reason common.DenyReason) int {
	switch reason {
	case common.DENY_AGE_RESTRICTED, common.DENY_GENDER_RESTRICTED:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

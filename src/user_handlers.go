package main

import (
	"errors"
	"etm/src/common"
	"etm/src/models"
	"etm/src/types"
	"etm/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func userHandlers(g *gin.RouterGroup, d *Deps) *gin.RouterGroup {
	g.
		POST("/users/withdraw", func(ctx *gin.Context) {
			var body types.WithdrawRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			withdrawal, err := common.ProcessWithdrawal(d.DB, d.Gateway, userId, &body)
			if err != nil {
				switch {
				case errors.Is(err, common.ErrBelowMinimum):
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				case errors.Is(err, common.ErrInstrumentDeclined):
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				case errors.Is(err, common.ErrUserNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				default:
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				}
				return
			}
			go models.WithdrawalCompletedProducer(map[string]any{
				"withdrawal_id": withdrawal.ID.String(),
				"user_id":       userId,
				"amount":        withdrawal.Amount,
			})
			go utils.SendWithdrawalReceipt(ctx.GetString("email"), withdrawal)
			ctx.JSON(http.StatusOK, gin.H{
				"message":   "Withdrawal processed successfully",
				"amount":    withdrawal.Amount,
				"reference": withdrawal.TransactionReference,
			})
		}).
		GET("/users/me/withdrawals", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var withdrawals []models.Withdrawal
			if err := d.DB.
				Model(&models.Withdrawal{}).
				Where(&models.Withdrawal{UserID: userId}).
				Order("created_at desc").
				Find(&withdrawals).
				Error; err != nil {
				log.Printf("Could not list withdrawals for user %d: %s\n", userId, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": withdrawals, "count": len(withdrawals)})
		}).
		GET("/users/me/earnings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var user models.User
			if err := d.DB.
				Where(&models.User{ID: userId}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			var earnings []models.PlatformEarning
			if err := d.DB.
				Model(&models.PlatformEarning{}).
				Joins("JOIN events ON events.id = platform_earnings.event_id").
				Where("events.created_by = ?", userId).
				Find(&earnings).
				Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"data": gin.H{
					"total_earnings":    user.TotalEarnings,
					"platform_earnings": earnings,
				},
			})
		})
	return g
}

package main

import (
	"errors"
	"etm/src/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func admissionHandlers(g *gin.RouterGroup, d *Deps) *gin.RouterGroup {
	g.GET("/admissions/verify/:code", func(ctx *gin.Context) {
		code := ctx.Params.ByName("code")
		if code == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "missing admission code"})
			return
		}
		userId := ctx.GetUint("id")
		err := d.DB.Transaction(func(tx *gorm.DB) error {
			var pass models.TicketPass
			if err := tx.
				Where(&models.TicketPass{Code: code}).
				Preload("Event").
				First(&pass).
				Error; err != nil {
				return err
			}
			if pass.Event.CreatedBy != userId {
				return errors.New("only the event host can admit attendees")
			}
			if pass.Used {
				return errors.New("admission code has already been used")
			}
			return tx.
				Model(&models.TicketPass{}).
				Where("id = ?", pass.ID).
				Update("used", true).
				Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "admission code not found"})
				return
			}
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"message": "Admission verified"})
	})
	return g
}

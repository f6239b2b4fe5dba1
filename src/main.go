package main

import (
	"etm/src/config"
	"etm/src/controllers"
	"etm/src/db"
	"etm/src/lib"
	"etm/src/middlewares"
	"etm/src/models"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/gorm"
)

const apiPrefix string = "/api/v1"

// Deps carries the handles the route groups work with. Everything is
// constructed once in main and passed down; no handler reaches for a
// package-global connection.
type Deps struct {
	DB      *gorm.DB
	Gateway *lib.PaystackClient
}

var eventDateTimeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	return time.Now().Before(datetime)
}

var bankAccountValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	account, ok := fl.Field().Interface().(string)
	if !ok || len(account) < 10 {
		return false
	}
	for _, c := range account {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", eventDateTimeValidatorFunc)
		v.RegisterValidation("bankaccount", bankAccountValidatorFunc)
	}
}

func setupRouter(d *Deps) *gin.Engine {
	r := gin.Default()
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if host := config.GetAppHost(); host != "" {
		corsConfig.AllowOrigins = []string{host}
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiv1 := r.Group(apiPrefix)
	apiv1.POST("/auth/register", func(ctx *gin.Context) {
		id, status, err := controllers.AuthRegister(ctx, d.DB)
		if err != nil {
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(status, gin.H{"data": gin.H{"id": id}})
	})
	apiv1.POST("/auth/login", func(ctx *gin.Context) {
		token, status, err := controllers.AuthLogin(ctx, d.DB)
		if err != nil {
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(status, gin.H{"data": gin.H{"token": *token}})
	})
	eventHandlers(apiv1, d)
	paymentHandlers(apiv1, d)

	authed := r.Group(apiPrefix)
	authed.Use(middlewares.AuthMiddleware(d.DB))
	eventAuthHandlers(authed, d)
	bookingHandlers(authed, d)
	userHandlers(authed, d)
	admissionHandlers(authed, d)

	return r
}

func main() {
	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   "logs/api.log",
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     28,
	}))
	registerValidators()

	dbh := db.GetDb()
	if err := dbh.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Withdrawal{},
		&models.PlatformEarning{},
		&models.TicketPass{},
	); err != nil {
		log.Fatalf("Error running migrations: %s\n", err.Error())
	}

	if _, err := lib.GetScheduler(); err != nil {
		log.Printf("Scheduler unavailable: %s\n", err.Error())
	}

	deps := &Deps{
		DB:      dbh,
		Gateway: lib.GetPaystackClient(),
	}
	r := setupRouter(deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server error: %s\n", err.Error())
	}
}

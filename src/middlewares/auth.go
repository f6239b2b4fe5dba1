package middlewares

import (
	"etm/src/models"
	"etm/src/types"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// AuthMiddleware validates the bearer token and loads the caller onto the
// context. The db handle comes from main rather than a package global.
func AuthMiddleware(dbh *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer") {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		parts := strings.Fields(bearerToken)
		if len(parts) < 2 {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		reqToken := parts[1]
		claims := &types.Claims{}
		tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
			return jwtKey, nil
		})
		if err != nil {
			log.Printf("token error: %s\n", err.Error())
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !tkn.Valid {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		uid, err := strconv.Atoi(claims.Subject)
		if err != nil {
			log.Println("error parsing claims:", err.Error())
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		var user models.User
		if err := dbh.
			Model(&models.User{}).
			Where(&models.User{ID: uint(uid)}).
			First(&user).
			Error; err != nil {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		ctx.Set("id", user.ID)
		ctx.Set("email", user.Email)
	}
}

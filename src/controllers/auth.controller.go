package controllers

import (
	"errors"
	"etm/src/config"
	"etm/src/models"
	"etm/src/types"
	"etm/src/utils"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func AuthRegister(ctx *gin.Context, dbh *gorm.DB) (uint, int, error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return 0, http.StatusBadRequest, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, http.StatusInternalServerError, err
	}
	user := models.User{
		Name:         body.Name,
		Email:        body.Email,
		PasswordHash: string(hash),
		Gender:       body.Gender,
	}
	if body.DateOfBirth != "" {
		dob, err := time.Parse(config.TIME_PARSE_FORMAT, body.DateOfBirth)
		if err != nil {
			// A second accepted shape: plain date, the way the signup form
			// submits it.
			dob, err = time.Parse("2006-01-02", body.DateOfBirth)
		}
		if err == nil {
			user.DateOfBirth = &dob
		}
	}
	err = dbh.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.User{}).
			Where(&models.User{Email: body.Email}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.New("an account with this email already exists")
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		log.Printf("Error registering user: %s\n", err.Error())
		return 0, http.StatusBadRequest, err
	}
	return user.ID, http.StatusCreated, nil
}

func AuthLogin(ctx *gin.Context, dbh *gorm.DB) (*string, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	var user models.User
	if err := dbh.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		log.Printf("Login failed for %s: %s\n", body.Email, err.Error())
		return nil, http.StatusUnauthorized, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		return nil, http.StatusUnauthorized, errors.New("invalid credentials")
	}
	token, err := utils.GenerateJWT(user.Email, user.ID)
	if err != nil {
		log.Printf("Error issuing token for user %d: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	return &token, http.StatusOK, nil
}

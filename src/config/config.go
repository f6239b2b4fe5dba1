package config

import (
	"fmt"
	"os"
	"strconv"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

func GetPaystackSecretKey() string {
	return os.Getenv("PAYSTACK_SECRET_KEY")
}

func GetPaystackBaseURL() string {
	base := os.Getenv("PAYSTACK_BASE_URL")
	if base == "" {
		base = "https://api.paystack.co"
	}
	return base
}

// GetAppHost is the SPA origin browsers get redirected to after payment.
func GetAppHost() string {
	return os.Getenv("APP_HOST")
}

// GetAPIHost is this service's public base URL, used to build the payment
// callback URL handed to the gateway.
func GetAPIHost() string {
	return os.Getenv("API_HOST")
}

// GetMinimumWithdrawal returns the payout threshold in major currency units.
func GetMinimumWithdrawal() float64 {
	v := os.Getenv("MINIMUM_WITHDRAWAL")
	min, err := strconv.ParseFloat(v, 64)
	if err != nil || min <= 0 {
		return 1000
	}
	return min
}

func GetStorageBucketName() string {
	return os.Getenv("FIREBASE_STORAGE_BUCKET")
}

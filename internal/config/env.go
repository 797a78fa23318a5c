package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins []string

	// MinPaymentAmount is the flat per-trip fare; payments below it are rejected.
	MinPaymentAmount float64
}

func LoadEnv() Env {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	dbUser := strings.TrimSpace(os.Getenv("DB_USER"))
	if dbUser == "" {
		dbUser = "root"
	}
	dbHost := strings.TrimSpace(os.Getenv("DB_HOST"))
	if dbHost == "" {
		dbHost = "127.0.0.1:3306"
	}
	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))
	if dbName == "" {
		dbName = "mona_metro"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "dev-secret-change-me"
	}

	ttl := time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL_MINUTES")); raw != "" {
		if mins, err := strconv.Atoi(raw); err == nil && mins > 0 {
			ttl = time.Duration(mins) * time.Minute
		}
	}

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	minAmount := 300.0
	if raw := strings.TrimSpace(os.Getenv("MIN_PAYMENT_AMOUNT")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			minAmount = v
		}
	}

	return Env{
		AppAddr:          appAddr,
		GinMode:          ginMode,
		DBUser:           dbUser,
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           dbHost,
		DBName:           dbName,
		JWTSecret:        secret,
		TokenTTL:         ttl,
		CORSOrigins:      origins,
		MinPaymentAmount: minAmount,
	}
}

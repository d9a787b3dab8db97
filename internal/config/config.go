package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	URL      string
	LogLevel string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

// R2 is S3 compatible, so the same block configures plain S3 when AccountID is empty.
type StorageConfig struct {
	AccountID       string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type Config struct {
	Env            string
	Port           string
	AllowedOrigins string
	RateLimitMax   int
	QRBaseURL      string
	AdminEmail     string

	Database DatabaseConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	Storage  StorageConfig
	Email    EmailConfig
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.Env = getEnv("APP_ENV", "development")
	cfg.Port = getEnv("PORT", "3000")
	cfg.AllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	cfg.RateLimitMax = getEnvInt("RATE_LIMIT_MAX", 60)
	cfg.QRBaseURL = getEnv("QR_BASE_URL", "http://localhost:5173/bookings/")
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")

	cfg.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Database.LogLevel = getEnv("DB_LOG_LEVEL", "warn")

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = getEnvDuration("JWT_TTL", 24*time.Hour)

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	cfg.Stripe.Currency = strings.ToLower(getEnv("STRIPE_CURRENCY", "usd"))

	cfg.Storage.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.Storage.Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.Storage.Region = getEnv("S3_REGION", "auto")
	cfg.Storage.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.Storage.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.Storage.Bucket = os.Getenv("R2_BUCKET")
	cfg.Storage.PublicURL = os.Getenv("R2_PUBLIC_URL")

	cfg.Email.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = getEnv("EMAIL_FROM_ADDRESS", "no-reply@tournest.app")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "TourNest")

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

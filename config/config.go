package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	BOG      BOGConfig
	SMS      SMSConfig
	SMTP     SMTPConfig
	Bank     BankConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	PublicURL    string // base URL clients are redirected back to after gateway payment
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// BOGConfig holds Bank of Georgia ecommerce API credentials.
// CallbackURL must be reachable from BOG's side, e.g.
// https://gamoiwere.ge/api/bog-payment/callback.
type BOGConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	APIBaseURL   string
	CallbackURL  string
}

// SMSConfig for the UBill SMS gateway.
type SMSConfig struct {
	BaseURL string
	APIKey  string
	BrandID int
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// BankConfig is the static bank-transfer details snapshot attached to
// bank-transfer payments.
type BankConfig struct {
	BankName      string
	Beneficiary   string
	AccountNumber string
	SwiftCode     string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         env("PORT", "8080"),
			Env:          env("APP_ENV", "development"),
			PublicURL:    env("PUBLIC_URL", "https://gamoiwere.ge"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             env("DATABASE_DSN", "gamoiwere:gamoiwere@tcp(localhost:3306)/gamoiwere?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  env("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: env("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "gamoiwere",
		},
		BOG: BOGConfig{
			ClientID:     env("BOG_CLIENT_ID", ""),
			ClientSecret: env("BOG_CLIENT_SECRET", ""),
			TokenURL:     env("BOG_TOKEN_URL", "https://oauth2.bog.ge/auth/realms/bog/protocol/openid-connect/token"),
			APIBaseURL:   env("BOG_API_BASE_URL", "https://api.bog.ge/payments/v1"),
			CallbackURL:  env("BOG_CALLBACK_URL", env("PUBLIC_URL", "https://gamoiwere.ge")+"/api/bog-payment/callback"),
		},
		SMS: SMSConfig{
			BaseURL: env("SMS_BASE_URL", "https://api.ubill.dev/v1"),
			APIKey:  env("SMS_API_KEY", ""),
			BrandID: envInt("SMS_BRAND_ID", 1),
		},
		SMTP: SMTPConfig{
			Host:     env("SMTP_HOST", "smtp.gmail.com"),
			Port:     env("SMTP_PORT", "587"),
			Username: env("SMTP_USERNAME", ""),
			Password: env("SMTP_PASSWORD", ""),
			From:     env("SMTP_FROM", "no-reply@gamoiwere.ge"),
		},
		Bank: BankConfig{
			BankName:      env("BANK_NAME", "Bank of Georgia"),
			Beneficiary:   env("BANK_BENEFICIARY", "GAMOIWERE LLC"),
			AccountNumber: env("BANK_ACCOUNT", "GE29BG0000000123456789"),
			SwiftCode:     env("BANK_SWIFT", "BAGAGE22"),
		},
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

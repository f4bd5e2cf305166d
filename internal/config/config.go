package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Org admin session cookie lifetime
	OrgAuthExpiry time.Duration

	// Midtrans payment gateway
	MidtransServerKey string
	MidtransClientKey string
	MidtransAPIURL    string

	// Public base URL for payment redirect callbacks
	AppBaseURL string

	// Plans
	ProPlanPrice float64
	TrialDays    int

	// Free plan feature limits
	FreeOrgLimit     int
	FreeProductLimit int
	FreeSaleLimit    int

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "tokapos_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		OrgAuthExpiry: parseDuration(getEnv("ORG_AUTH_EXPIRY", "24h")),

		MidtransServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
		MidtransClientKey: getEnv("MIDTRANS_CLIENT_KEY", ""),
		MidtransAPIURL:    getEnv("MIDTRANS_API_URL", "https://api.sandbox.midtrans.com"),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),

		ProPlanPrice: parseFloat(getEnv("PRO_PLAN_PRICE", "99000"), 99000),
		TrialDays:    parseInt(getEnv("TRIAL_DAYS", "2"), 2),

		FreeOrgLimit:     parseInt(getEnv("FREE_ORG_LIMIT", "1"), 1),
		FreeProductLimit: parseInt(getEnv("FREE_PRODUCT_LIMIT", "10"), 10),
		FreeSaleLimit:    parseInt(getEnv("FREE_SALE_LIMIT", "10"), 10),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	AllowedOrigin string
	LogFile       string

	AlphaVantageKey string
	AlphaVantageURL string
	DailyQuota      int

	GeminiKey   string
	GeminiModel string
	GeminiURL   string

	ScreenerURL     string
	StocksScreenURL string

	UpstreamTimeout time.Duration

	SendGridKey     string
	MailFrom        string
	SlackWebhookURL string
}

// Load reads configuration from the process environment. A .env file in the
// working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getenv("PORT", "5000"),
		DatabaseURL:   getenv("DATABASE_URL", "finai.db"),
		JWTSecret:     os.Getenv("SECRET_KEY"),
		TokenTTL:      getDuration("TOKEN_TTL", 2*time.Hour),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "*"),
		LogFile:       os.Getenv("LOG_FILE"),

		AlphaVantageKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		AlphaVantageURL: getenv("ALPHA_VANTAGE_URL", "https://www.alphavantage.co/query"),
		DailyQuota:      getInt("ALPHA_VANTAGE_DAILY_QUOTA", 25),

		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: getenv("GEMINI_MODEL", "gemini-pro"),
		GeminiURL:   getenv("GEMINI_URL", "https://generativelanguage.googleapis.com/v1beta"),

		ScreenerURL:     getenv("SCREENER_URL", "https://www.screener.in"),
		StocksScreenURL: os.Getenv("STOCKS_SCREEN_URL"),

		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 15*time.Second),

		SendGridKey:     os.Getenv("SENDGRID_API_KEY"),
		MailFrom:        os.Getenv("MAIL_FROM"),
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] ignoring %s=%q: want a positive integer", key, v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] ignoring %s=%q: want a positive duration", key, v)
		return fallback
	}
	return d
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	// Secret used for certificate verification hashes. Falls back to the
	// JWT key when not set so certificates stay verifiable across restarts.
	CertificateSecret string

	SiteURL string

	EmailSender    string
	Password       string // SMTP app password
	SendGridAPIKey string

	GatewayApiURL string // UPI gateway order-status endpoint
	GatewayApiKey string

	// Pending unlock requests older than this many hours are auto-rejected
	// by the scheduler.
	UnlockPendingTTLHours int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		CertificateSecret: getEnv("CERTIFICATE_SECRET", getEnv("JWT_SECRET_KEY", "defaultSecret")),

		SiteURL: getEnv("SITE_URL", "http://localhost:3000"),

		EmailSender:    getEnv("EMAIL_SENDER", ""),
		Password:       getEnv("EMAIL_PASSWORD", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		GatewayApiURL: getEnv("GATEWAY_API_URL", ""),
		GatewayApiKey: getEnv("GATEWAY_API_KEY", ""),

		UnlockPendingTTLHours: getEnvInt("UNLOCK_PENDING_TTL_HOURS", 72),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTSecret       string
	TokenExpiryDays int

	// OTPStore selects the backing for the one-time-password store:
	// "memory" (default) or "redis".
	OTPStore      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	// SMSProvider selects the SMS channel: "sns" (default) or "twilio".
	SMSProvider      string
	SNSRegion        string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users        string
	Doctors      string
	Patients     string
	Appointments string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:        getEnv("DYNAMO_TABLE_USERS", "users"),
			Doctors:      getEnv("DYNAMO_TABLE_DOCTORS", "doctors"),
			Patients:     getEnv("DYNAMO_TABLE_PATIENTS", "patients"),
			Appointments: getEnv("DYNAMO_TABLE_APPOINTMENTS", "appointments"),
		},

		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenExpiryDays: getEnvInt("TOKEN_EXPIRY_DAYS", 2),

		OTPStore:      getEnv("OTP_STORE", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 1025),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@docucare.example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SMSProvider:      getEnv("SMS_PROVIDER", "sns"),
		SNSRegion:        getEnv("SNS_REGION", "us-east-1"),
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:       getEnv("TWILIO_FROM", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Validate enforces startup invariants. A missing signing secret is a
// process-level misconfiguration: it must abort startup, never surface
// per-request.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	if c.TokenExpiryDays <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY_DAYS must be positive, got %d", c.TokenExpiryDays)
	}
	switch c.OTPStore {
	case "memory":
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("OTP_STORE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown OTP_STORE %q (want memory or redis)", c.OTPStore)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"strings"
)

// Verification arbitration policies. Exactly one is active per deployment.
const (
	PolicyAdmin  = "admin"  // operator flips valid/invalid by hand
	PolicyServer = "server" // server compares against a generated code
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreDynamo = "dynamo"
)

// Admin notification channels.
const (
	ChannelTelegram = "telegram"
	ChannelSNS      = "sns"
	ChannelNone     = "none"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// VerificationPolicy selects who decides code validity: PolicyAdmin or
	// PolicyServer. The two imply different trust models and never mix.
	VerificationPolicy string

	RequirePassword bool // reject submissions without a password
	HashPasswords   bool // pass passwords through the bcrypt sink before storage

	AdminToken string // shared secret for /admin/api; empty disables the check

	StoreBackend   string // StoreMemory (volatile, default) or StoreDynamo
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	NotifyChannel      string // ChannelTelegram, ChannelSNS or ChannelNone
	TelegramBotToken   string
	TelegramChatID     string
	TelegramAPIBaseURL string // override for tests; derived from the token when empty
	SNSRegion          string
	AdminPhoneNumber   string

	SendDecisionEmails bool
	SMTPHost           string
	SMTPPort           string
	SMTPFrom           string
	SMTPUsername       string
	SMTPPassword       string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	VerificationRequests string
	Registrations        string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		VerificationPolicy: getEnv("VERIFICATION_POLICY", PolicyAdmin),

		RequirePassword: getEnvBool("REQUIRE_PASSWORD", false),
		HashPasswords:   getEnvBool("HASH_PASSWORDS", false),

		AdminToken: getEnv("ADMIN_TOKEN", ""),

		StoreBackend:   getEnv("STORE_BACKEND", StoreMemory),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			VerificationRequests: getEnv("DYNAMO_TABLE_VERIFICATION_REQUESTS", "verification_requests"),
			Registrations:        getEnv("DYNAMO_TABLE_REGISTRATIONS", "registrations"),
		},

		NotifyChannel:      getEnv("NOTIFY_CHANNEL", ChannelNone),
		TelegramBotToken:   getEnv("TG_BOT_TOKEN", ""),
		TelegramChatID:     getEnv("TG_ADMIN_CHAT_ID", ""),
		TelegramAPIBaseURL: getEnv("TG_API_BASE_URL", ""),
		SNSRegion:          getEnv("SNS_REGION", "us-east-1"),
		AdminPhoneNumber:   getEnv("ADMIN_PHONE_NUMBER", ""),

		SendDecisionEmails: getEnvBool("SEND_DECISION_EMAILS", false),
		SMTPHost:           getEnv("SMTP_HOST", "localhost"),
		SMTPPort:           getEnv("SMTP_PORT", "1025"),
		SMTPFrom:           getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

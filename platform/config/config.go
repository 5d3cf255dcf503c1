// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // report timezone must resolve without system zoneinfo

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSOrigins() []string
}

// TwilioConfig provides settings for the SMS platform client.
type TwilioConfig interface {
	GetTwilioAccountSID() string
	GetTwilioAuthToken() string
	GetTwilioFromNumber() string
	IsTwilioEnabled() bool
}

// SignatureConfig provides settings for validating inbound SMS webhooks.
type SignatureConfig interface {
	GetTwilioAuthToken() string
	GetTwilioValidateSignature() bool
	GetPublicBaseURL() string
}

// OperatorsConfig provides the location of the operator roster.
type OperatorsConfig interface {
	GetOperatorsFile() string
}

// SchedulerConfig provides settings for the daily spam report.
type SchedulerConfig interface {
	GetReportTimezone() string
	GetReportHour() int
	GetReportMinute() int
	GetReportTick() time.Duration
}

// DashboardAuthConfig provides the optional bearer token secret for the query API.
type DashboardAuthConfig interface {
	GetDashboardJWTSecret() string
	IsDashboardAuthEnabled() bool
}

// RateLimitConfig provides per-IP limits for the webhook endpoints.
type RateLimitConfig interface {
	GetWebhookRateLimit() float64
	GetWebhookRateBurst() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                     string
	HTTPAddr                string
	CORSOrigins             []string
	OperatorsFile           string
	TwilioAccountSID        string
	TwilioAuthToken         string
	TwilioFromNumber        string
	TwilioValidateSignature bool
	PublicBaseURL           string
	ReportTimezone          string
	ReportHour              int
	ReportMinute            int
	ReportTick              time.Duration
	DashboardJWTSecret      string
	WebhookRateLimit        float64
	WebhookRateBurst        int
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// TwilioConfig implementation
func (c *Config) GetTwilioAccountSID() string { return c.TwilioAccountSID }
func (c *Config) GetTwilioAuthToken() string  { return c.TwilioAuthToken }
func (c *Config) GetTwilioFromNumber() string { return c.TwilioFromNumber }
func (c *Config) IsTwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}

// SignatureConfig implementation
func (c *Config) GetTwilioValidateSignature() bool { return c.TwilioValidateSignature }
func (c *Config) GetPublicBaseURL() string         { return c.PublicBaseURL }

// OperatorsConfig implementation
func (c *Config) GetOperatorsFile() string { return c.OperatorsFile }

// SchedulerConfig implementation
func (c *Config) GetReportTimezone() string    { return c.ReportTimezone }
func (c *Config) GetReportHour() int           { return c.ReportHour }
func (c *Config) GetReportMinute() int         { return c.ReportMinute }
func (c *Config) GetReportTick() time.Duration { return c.ReportTick }

// DashboardAuthConfig implementation
func (c *Config) GetDashboardJWTSecret() string { return c.DashboardJWTSecret }
func (c *Config) IsDashboardAuthEnabled() bool  { return c.DashboardJWTSecret != "" }

// RateLimitConfig implementation
func (c *Config) GetWebhookRateLimit() float64 { return c.WebhookRateLimit }
func (c *Config) GetWebhookRateBurst() int     { return c.WebhookRateBurst }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	httpAddr := getEnv("HTTP_ADDR", "")
	if httpAddr == "" {
		httpAddr = ":" + getEnv("PORT", "3000")
	}

	cfg := &Config{
		Env:                     getEnv("APP_ENV", "development"),
		HTTPAddr:                httpAddr,
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "*")),
		OperatorsFile:           getEnv("TRADIES_FILE", "tradies.json"),
		TwilioAccountSID:        getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:         getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber:        getEnv("TWILIO_SMS_FROM", ""),
		TwilioValidateSignature: strings.EqualFold(getEnv("TWILIO_VALIDATE_SIGNATURE", "false"), "true"),
		PublicBaseURL:           strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		ReportTimezone:          getEnv("SPAM_REPORT_TIMEZONE", "Australia/Melbourne"),
		ReportHour:              mustInt(getEnv("SPAM_REPORT_HOUR", "18"), 18),
		ReportMinute:            mustInt(getEnv("SPAM_REPORT_MINUTE", "0"), 0),
		ReportTick:              mustDuration(getEnv("SPAM_REPORT_TICK", "1m"), time.Minute),
		DashboardJWTSecret:      getEnv("DASHBOARD_JWT_SECRET", ""),
		WebhookRateLimit:        mustFloat(getEnv("WEBHOOK_RATE_LIMIT", "20"), 20),
		WebhookRateBurst:        mustInt(getEnv("WEBHOOK_RATE_BURST", "40"), 40),
	}

	if cfg.OperatorsFile == "" {
		return nil, fmt.Errorf("TRADIES_FILE is required")
	}
	if cfg.ReportHour < 0 || cfg.ReportHour > 23 {
		return nil, fmt.Errorf("SPAM_REPORT_HOUR must be between 0 and 23")
	}
	if cfg.ReportMinute < 0 || cfg.ReportMinute > 59 {
		return nil, fmt.Errorf("SPAM_REPORT_MINUTE must be between 0 and 59")
	}
	if _, err := time.LoadLocation(cfg.ReportTimezone); err != nil {
		return nil, fmt.Errorf("SPAM_REPORT_TIMEZONE: %w", err)
	}
	if cfg.IsTwilioEnabled() && cfg.TwilioFromNumber == "" {
		return nil, fmt.Errorf("TWILIO_SMS_FROM is required when Twilio credentials are set")
	}
	if cfg.TwilioValidateSignature && (cfg.TwilioAuthToken == "" || cfg.PublicBaseURL == "") {
		return nil, fmt.Errorf("TWILIO_AUTH_TOKEN and PUBLIC_BASE_URL are required when TWILIO_VALIDATE_SIGNATURE is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func mustInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func mustFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

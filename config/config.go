package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	aws_pkg "github.com/amiralda/kolaboStudiosWebApp-sub000/pkg/aws"
)

// Config holds all configuration for the studio backend.
type Config struct {
	Port        string
	Environment string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	RedisURL string

	StripeSecretKey  string
	StripeWebhookKey string

	MediaBucket         string
	PaymentSNSTopicARN  string
	RetouchSNSTopicARN  string
	RetouchDoneQueueURL string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	// StudioEmail receives contact form notifications.
	StudioEmail string

	FrontendURL string
	// AdminAPIKey guards content-management endpoints; empty disables them.
	AdminAPIKey string
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override for DB and Stripe credentials.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "America/New_York"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		StripeSecretKey:  os.Getenv("STRIPE_API_KEY"),
		StripeWebhookKey: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		MediaBucket:         getEnv("MEDIA_BUCKET", "kolabo-studio-media"),
		PaymentSNSTopicARN:  getEnv("PAYMENT_SNS_TOPIC_ARN", "arn:aws:sns:eu-west-2:000000000000:payment-events"),
		RetouchSNSTopicARN:  getEnv("RETOUCH_SNS_TOPIC_ARN", "arn:aws:sns:eu-west-2:000000000000:retouch-events"),
		RetouchDoneQueueURL: os.Getenv("RETOUCH_DONE_QUEUE_URL"),

		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    getEnv("SMTP_PORT", "587"),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASS"),
		StudioEmail: getEnv("STUDIO_EMAIL", "hello@kolabostudios.com"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
	}

	// Override DB and Stripe credentials from Secrets Manager when on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			sm := aws_pkg.NewSecretsClient(awsCfg)
			if dbjson, err := sm.GetSecret(context.Background(), "kolabo/DB_CREDENTIALS"); err == nil && dbjson != "" {
				var m map[string]string
				if err := json.Unmarshal([]byte(dbjson), &m); err == nil {
					overrideIfSet(&cfg.PostgresUser, m, "POSTGRES_USER")
					overrideIfSet(&cfg.PostgresPassword, m, "POSTGRES_PASSWORD")
					overrideIfSet(&cfg.PostgresDB, m, "POSTGRES_DB")
					overrideIfSet(&cfg.PostgresHost, m, "POSTGRES_HOST")
					overrideIfSet(&cfg.PostgresPort, m, "POSTGRES_PORT")
				}
			}
			if v, err := sm.GetSecret(context.Background(), "kolabo/STRIPE_API_KEY"); err == nil && v != "" {
				cfg.StripeSecretKey = v
			}
			if v, err := sm.GetSecret(context.Background(), "kolabo/STRIPE_WEBHOOK_SECRET"); err == nil && v != "" {
				cfg.StripeWebhookKey = v
			}
		}
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.StripeSecretKey == "" || cfg.StripeWebhookKey == "" {
		return nil, fmt.Errorf("stripe config incomplete")
	}

	return cfg, nil
}

func overrideIfSet(dst *string, m map[string]string, key string) {
	if v, ok := m[key]; ok && v != "" {
		*dst = v
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

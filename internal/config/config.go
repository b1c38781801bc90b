package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every environment-derived setting, resolved once at process
// start and passed explicitly to the components that need it.
type Config struct {
	DatabaseURL   string
	GroqAPIKey    string
	SessionSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	FrontendURL string
	Port        string

	// R2 object storage is optional; uploads are skipped when any field
	// is empty.
	R2AccountID       string
	R2BucketName      string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2PublicURL       string
}

// Load reads .env (if present) and the process environment. A missing
// required variable is a configuration error; the caller is expected to
// treat it as fatal before serving any request.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		log.Println("WARN: .env file not found, relying on system environment variables")
	}

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		SessionSecret: os.Getenv("SESSION_SECRET"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		FrontendURL: os.Getenv("FRONTEND_URL"),
		Port:        os.Getenv("PORT"),

		R2AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
	}

	required := map[string]string{
		"DATABASE_URL":         cfg.DatabaseURL,
		"GROQ_API_KEY":         cfg.GroqAPIKey,
		"SESSION_SECRET":       cfg.SessionSecret,
		"GOOGLE_CLIENT_ID":     cfg.GoogleClientID,
		"GOOGLE_CLIENT_SECRET": cfg.GoogleClientSecret,
		"GOOGLE_REDIRECT_URL":  cfg.GoogleRedirectURL,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("%s environment variable must be set", name)
		}
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:3000"
	}

	return cfg, nil
}

// R2Configured reports whether every object-storage variable is present.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2BucketName != "" &&
		c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2PublicURL != ""
}

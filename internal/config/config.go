// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	BaseURL  string
	LogLevel string

	PolarAccessToken   string
	PolarWebhookSecret string
	PolarAPIURL        string
	SuccessURL         string

	ProductPro    string
	ProductMaster string

	WebhookTolerance time.Duration
}

// Load populates Config from the environment. A missing .env file is fine;
// deployed environments set real variables.
func Load() *Config {
	godotenv.Load()

	cfg := &Config{
		Port:               getenv("PORT", "8080"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		PolarAccessToken:   os.Getenv("POLAR_ACCESS_TOKEN"),
		PolarWebhookSecret: os.Getenv("POLAR_WEBHOOK_SECRET"),
		PolarAPIURL:        os.Getenv("POLAR_API_URL"),
		ProductPro:         os.Getenv("POLAR_PRODUCT_PRO"),
		ProductMaster:      os.Getenv("POLAR_PRODUCT_MASTER"),
		WebhookTolerance:   parseDuration(os.Getenv("WEBHOOK_TOLERANCE")),
	}

	cfg.BaseURL = getenv("BASE_URL", fmt.Sprintf("http://localhost:%s", cfg.Port))
	cfg.SuccessURL = getenv("SUCCESS_URL", cfg.BaseURL+"/success?checkout_id={CHECKOUT_ID}")
	return cfg
}

// Products returns the product-to-plan pairs for the resolver. Unset
// product ids are skipped rather than mapped to an empty key.
func (c *Config) Products() map[string]string {
	products := make(map[string]string, 2)
	if c.ProductPro != "" {
		products[c.ProductPro] = "pro"
	}
	if c.ProductMaster != "" {
		products[c.ProductMaster] = "master"
	}
	return products
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

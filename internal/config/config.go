package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"storefront.db"`
	AdminToken  string `env:"ADMIN_TOKEN"`

	Stripe   Stripe   `envPrefix:"STRIPE_"`
	Printify Printify `envPrefix:"PRINTIFY_"`
}

type Stripe struct {
	SecretKey          string        `env:"SECRET_KEY"`
	WebhookSecret      string        `env:"WEBHOOK_SECRET"`
	SignatureTolerance time.Duration `env:"SIGNATURE_TOLERANCE" envDefault:"5m"`
}

type Printify struct {
	BaseAPIURL string `env:"BASE_API_URL" envDefault:"https://api.printify.com/v1"`
	APIKey     string `env:"API_KEY"`
	ShopID     string `env:"SHOP_ID"`
	// When true, a created order is immediately advanced to production.
	// When false we rely on Printify's delayed auto-submission.
	SendToProduction bool `env:"SEND_TO_PRODUCTION" envDefault:"false"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

// Validate reports settings the checkout and fulfillment paths cannot run
// without. The catalog endpoints still work with an incomplete config, so
// callers decide whether a missing setting is fatal.
func (c *Config) Validate() error {
	var missing []string
	if c.Stripe.SecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if c.Stripe.WebhookSecret == "" {
		missing = append(missing, "STRIPE_WEBHOOK_SECRET")
	}
	if c.Printify.APIKey == "" {
		missing = append(missing, "PRINTIFY_API_KEY")
	}
	if c.Printify.ShopID == "" {
		missing = append(missing, "PRINTIFY_SHOP_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

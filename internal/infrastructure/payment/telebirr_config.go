package payment

import (
	"errors"
	"strings"
	"time"

	"github.com/escrowdesk/backend/internal/infrastructure/config"
)

// TelebirrConfig contains configuration for the Telebirr receipt lookup API
type TelebirrConfig struct {
	// BaseURL is the root of the receipt lookup API
	BaseURL string
	// APIKey authenticates lookup requests
	APIKey string
	// Timeout bounds a single lookup request
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after a transient failure
	MaxRetries int
}

// Errors for configuration validation
var (
	ErrTelebirrMissingBaseURL = errors.New("telebirr: missing base URL")
	ErrTelebirrMissingAPIKey  = errors.New("telebirr: missing API key")
)

// Validate validates the configuration and applies defaults
func (c *TelebirrConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrTelebirrMissingBaseURL
	}
	if c.APIKey == "" {
		return ErrTelebirrMissingAPIKey
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return nil
}

// NewTelebirrConfig builds a TelebirrConfig from the application config
func NewTelebirrConfig(cfg *config.VerifierConfig) *TelebirrConfig {
	return &TelebirrConfig{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
	}
}

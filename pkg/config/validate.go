package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tuonglequoc/crawl-product-data/pkg/utils"
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// BaseURL
	if c.BaseURL == "" {
		return warnings, fmt.Errorf("%w: base_url is required", utils.ErrConfigValidation)
	}
	parsed, parseErr := url.ParseRequestURI(c.BaseURL)
	if parseErr != nil || parsed.Host == "" {
		return warnings, fmt.Errorf("%w: base_url %q is not a valid absolute URL", utils.ErrConfigValidation, c.BaseURL)
	}
	if strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	}

	// Limit
	if c.Limit <= 0 {
		warnings = append(warnings, "limit should be > 0, defaulting to 24")
		c.Limit = 24
	}

	// Workers
	if c.Workers <= 0 {
		warnings = append(warnings, "workers not specified or invalid, defaulting to 1 (sequential)")
		c.Workers = 1
	}

	// DatabaseURL
	if c.DatabaseURL == "" {
		return warnings, fmt.Errorf("%w: database_url is required (set DATABASE_URL or database_url)", utils.ErrConfigValidation)
	}

	// MigrationsDir
	if c.MigrationsDir == "" {
		c.MigrationsDir = "migrations"
	}

	// HTTP client settings
	if c.HTTPClient.Timeout <= 0 {
		c.HTTPClient.Timeout = 30 * time.Second
	}
	if c.HTTPClient.MaxIdleConns <= 0 {
		c.HTTPClient.MaxIdleConns = 100
	}
	if c.HTTPClient.MaxIdleConnsPerHost <= 0 {
		c.HTTPClient.MaxIdleConnsPerHost = 10
	}
	if c.HTTPClient.IdleConnTimeout <= 0 {
		c.HTTPClient.IdleConnTimeout = 90 * time.Second
	}
	if c.HTTPClient.TLSHandshakeTimeout <= 0 {
		c.HTTPClient.TLSHandshakeTimeout = 10 * time.Second
	}
	if c.HTTPClient.DialerTimeout <= 0 {
		c.HTTPClient.DialerTimeout = 15 * time.Second
	}
	if c.HTTPClient.DialerKeepAlive <= 0 {
		c.HTTPClient.DialerKeepAlive = 30 * time.Second
	}

	return warnings, nil
}

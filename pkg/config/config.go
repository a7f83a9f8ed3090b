package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the global application configuration
type AppConfig struct {
	BaseURL         string           `yaml:"base_url"`                 // Storefront origin, e.g. https://www.matsukiyo.co.jp
	Limit           int              `yaml:"limit"`                    // Listing page size (offset advances by this much)
	CountryOfOrigin string           `yaml:"country_of_origin"`        // Fixed value copied into every record
	Remarks         string           `yaml:"remarks"`                  // Fixed value copied into every record
	Workers         int              `yaml:"workers,omitempty"`        // Concurrent category traversals (1 = fully sequential)
	DatabaseURL     string           `yaml:"database_url,omitempty"`   // Usually supplied via the DATABASE_URL env var instead
	MigrationsDir   string           `yaml:"migrations_dir,omitempty"` // Goose migrations directory
	HTTPClient      HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	Timeout             time.Duration `yaml:"timeout,omitempty"`                 // Overall request timeout
	MaxIdleConns        int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout     time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	DialerTimeout       time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive     time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}

// Load reads and parses the YAML config file at path.
// The DATABASE_URL environment variable, when set, overrides database_url from the file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}

	return &cfg, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
base_url: "https://www.matsukiyo.co.jp"
limit: 24
country_of_origin: "日本"
remarks: "定期クロール"
workers: 2
database_url: "postgres://file-dsn"
http_client_settings:
  timeout: 45s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://www.matsukiyo.co.jp", cfg.BaseURL)
	assert.Equal(t, 24, cfg.Limit)
	assert.Equal(t, "日本", cfg.CountryOfOrigin)
	assert.Equal(t, "定期クロール", cfg.Remarks)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "postgres://file-dsn", cfg.DatabaseURL)
	assert.Equal(t, "45s", cfg.HTTPClient.Timeout.String())
}

func TestLoad_EnvOverridesDatabaseURL(t *testing.T) {
	path := writeConfig(t, `
base_url: "https://www.matsukiyo.co.jp"
database_url: "postgres://file-dsn"
`)
	t.Setenv("DATABASE_URL", "postgres://env-dsn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env-dsn", cfg.DatabaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "base_url: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
}

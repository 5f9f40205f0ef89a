package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should load defaults when no environment is set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
		assert.Equal(t, 9, cfg.CLI.PageSize)
		assert.Equal(t, "fr", cfg.CLI.Language)
		assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	})

	t.Run("Should override defaults from environment", func(t *testing.T) {
		t.Setenv("MSSD_API_BASE_URL", "https://mssd.example.com/api")
		t.Setenv("MSSD_CLI_PAGE_SIZE", "25")
		t.Setenv("MSSD_API_TOKEN", "secret-token")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://mssd.example.com/api", cfg.API.BaseURL)
		assert.Equal(t, 25, cfg.CLI.PageSize)
		assert.Equal(t, "secret-token", cfg.API.Token.Value())
	})

	t.Run("Should reject invalid values", func(t *testing.T) {
		t.Setenv("MSSD_CLI_LANGUAGE", "de")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})
}

func TestTransformEnvKey(t *testing.T) {
	t.Run("Should map section-prefixed variables to nested keys", func(t *testing.T) {
		assert.Equal(t, "api.base_url", transformEnvKey("MSSD_API_BASE_URL"))
		assert.Equal(t, "cli.page_size", transformEnvKey("MSSD_CLI_PAGE_SIZE"))
		assert.Equal(t, "cli.log_level", transformEnvKey("MSSD_CLI_LOG_LEVEL"))
	})
}

func TestSensitiveString(t *testing.T) {
	t.Run("Should redact when printed", func(t *testing.T) {
		s := SensitiveString("hunter2")
		assert.Equal(t, "[REDACTED]", s.String())
		assert.Equal(t, "hunter2", s.Value())
	})

	t.Run("Should print empty as empty", func(t *testing.T) {
		assert.Equal(t, "", SensitiveString("").String())
	})
}

func TestFilesBaseURL(t *testing.T) {
	t.Run("Should derive from base URL when unset", func(t *testing.T) {
		cfg := Default()
		assert.Equal(t, "http://localhost:8080/api/files", cfg.FilesBaseURL())
	})

	t.Run("Should prefer the explicit files URL", func(t *testing.T) {
		cfg := Default()
		cfg.API.FilesURL = "https://cdn.example.com/files"
		assert.Equal(t, "https://cdn.example.com/files", cfg.FilesBaseURL())
	})
}

package config

import (
	"time"
)

// SensitiveString is a string that redacts itself when printed.
type SensitiveString string

func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// Value returns the underlying secret.
func (s SensitiveString) Value() string {
	return string(s)
}

// Config is the root configuration for the console.
type Config struct {
	API APIConfig `koanf:"api"`
	CLI CLIConfig `koanf:"cli"`
}

// APIConfig configures the connection to the backend REST API.
type APIConfig struct {
	// BaseURL is the root of the backend API, e.g. http://localhost:8080/api.
	BaseURL string `koanf:"base_url"  validate:"required,url"`
	// FilesURL serves uploaded assets; defaults to BaseURL + "/files".
	FilesURL string          `koanf:"files_url" validate:"omitempty,url"`
	Token    SensitiveString `koanf:"token"`
	Timeout  time.Duration   `koanf:"timeout"     validate:"min=1s"`
	Retries  int             `koanf:"retries"     validate:"min=0,max=10"`
}

// CLIConfig configures the command-line surface.
type CLIConfig struct {
	// Format selects output mode: auto, json or tui.
	Format    string `koanf:"format"     validate:"oneof=auto json tui"`
	PageSize  int    `koanf:"page_size"  validate:"min=1,max=100"`
	Language  string `koanf:"language"   validate:"oneof=fr en"`
	StateFile string `koanf:"state_file"`
	LogLevel  string `koanf:"log_level"  validate:"oneof=debug info warn error"`
	LogJSON   bool   `koanf:"log_json"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 15 * time.Second,
			Retries: 3,
		},
		CLI: CLIConfig{
			Format:    "auto",
			PageSize:  9, // 3x3 grid on the public pages
			Language:  "fr",
			StateFile: "",
			LogLevel:  "info",
		},
	}
}

// FilesBaseURL resolves the effective files-serving base URL.
func (c *Config) FilesBaseURL() string {
	if c.API.FilesURL != "" {
		return c.API.FilesURL
	}
	return c.API.BaseURL + "/files"
}

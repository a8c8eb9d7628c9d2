// Package config holds the server configuration: YAML file values, environment
// overrides, and validation.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvAPIKey = "NOTION_API_KEY"
	EnvToken  = "NOTION_TOKEN"
	EnvDebug  = "NOTION_DEBUG"
)

var apiVersionRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Config represents the application configuration.
type Config struct {
	LogLevel slog.Level   `yaml:"log_level"`
	Notion   NotionConfig `yaml:"notion"`
	HTTP     HTTPConfig   `yaml:"http"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Notion.Validate(); err != nil {
		return fmt.Errorf("notion: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	return nil
}

// ApplyEnv overlays values taken from the process environment. The token is
// only read from the environment when the file did not set one.
func (c *Config) ApplyEnv() {
	if c.Notion.Token == "" {
		c.Notion.Token = os.Getenv(EnvAPIKey)
	}
	if c.Notion.Token == "" {
		c.Notion.Token = os.Getenv(EnvToken)
	}
	if os.Getenv(EnvDebug) == "1" {
		c.LogLevel = slog.LevelDebug
	}
}

// NotionConfig holds the remote API settings.
//
// Token is not validated here: the server starts without it and reports a
// credential error the first time a tool needs the remote API.
type NotionConfig struct {
	Token   string        `yaml:"token"`
	BaseURL string        `yaml:"base_url"`
	Version string        `yaml:"version"`
	Timeout time.Duration `yaml:"timeout"`
}

// Validate validates the remote API configuration.
func (c *NotionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Version, validation.Required, validation.Match(apiVersionRe)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
	)
}

// HTTPConfig holds the streamable HTTP transport configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// NewDefault returns a new Config with sensible default values.
func NewDefault() *Config {
	return &Config{
		LogLevel: slog.LevelInfo,
		Notion: NotionConfig{
			BaseURL: "https://api.notion.com/v1",
			Version: "2025-09-03",
			Timeout: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			Port: 8080,
		},
	}
}

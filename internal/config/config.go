package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the deploychat dispatcher.
type Config struct {
	Port      int
	Version   string
	LogLevel  string
	Model     ClientConfig
	Telemetry TelemetryConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Panel     PanelConfig
}

// ClientConfig configures the outbound prediction client. It is passed to
// deployapi.New explicitly; the client never reads the environment itself.
type ClientConfig struct {
	Endpoint  string
	APIKey    string
	ModelName string
	// Timeout bounds one outbound call. Zero disables it.
	Timeout time.Duration
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

type AuthConfig struct {
	// APIKeys guard /api/v1. Empty means the API is open.
	APIKeys []string
}

// DefaultCORSOrigins admits editor webviews only. A browser page on any
// other origin cannot drive the dispatcher.
var DefaultCORSOrigins = []string{"vscode-webview://*"}

type CORSConfig struct {
	// AllowedOrigins may use one "*" wildcard per entry.
	AllowedOrigins []string
}

type PanelConfig struct {
	// BaseURL prefixes links emitted in rendered panels.
	BaseURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:     envInt("DEPLOYCHAT_PORT", 8080),
		Version:  envStr("DEPLOYCHAT_VERSION", "0.1.0"),
		LogLevel: envStr("LOG_LEVEL", "info"),
		Model: ClientConfig{
			Endpoint:  strings.TrimRight(envStr("MCP_MODEL_ENDPOINT", ""), "/"),
			APIKey:    envStr("MCP_MODEL_API_KEY", ""),
			ModelName: envStr("MCP_MODEL_NAME", "mcp-deployment"),
			Timeout:   envDuration("MCP_MODEL_TIMEOUT", 60*time.Second),
		},
		Telemetry: TelemetryConfig{
			Enabled:      envBool("OTEL_ENABLED", false),
			OTLPEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  envStr("OTEL_SERVICE_NAME", "deploychat"),
		},
		Auth: AuthConfig{
			APIKeys: envList("DEPLOYCHAT_API_KEYS", nil),
		},
		CORS: CORSConfig{
			AllowedOrigins: envList("DEPLOYCHAT_CORS_ORIGINS", DefaultCORSOrigins),
		},
		Panel: PanelConfig{
			BaseURL: envStr("PANEL_BASE_URL", ""),
		},
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Model.Endpoint == "" {
		return fmt.Errorf("MCP_MODEL_ENDPOINT is required")
	}
	if !strings.HasPrefix(c.Model.Endpoint, "http://") && !strings.HasPrefix(c.Model.Endpoint, "https://") {
		return fmt.Errorf("MCP_MODEL_ENDPOINT must be an http(s) URL, got %q", c.Model.Endpoint)
	}
	if c.Model.Timeout < 0 {
		return fmt.Errorf("MCP_MODEL_TIMEOUT must not be negative")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

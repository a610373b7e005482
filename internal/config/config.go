package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the imagine service.
type Config struct {
	// Service Configuration
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"imagine-api"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort         int           `env:"PORT" envDefault:"3000"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`
	EnableTracing    bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	TraceSampleRatio float64       `env:"OTEL_TRACES_SAMPLER_RATIO" envDefault:"1"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins      []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Discord / Midjourney credentials (required, no defaults)
	ServerID   string `env:"SERVER_ID,notEmpty"`
	ChannelID  string `env:"CHANNEL_ID,notEmpty"`
	SalaiToken string `env:"SALAI_TOKEN,notEmpty"`

	// Midjourney Client
	MJAPIURL         string        `env:"MJ_API_URL" envDefault:"https://discord.com/api/v9"`
	MJWSURL          string        `env:"MJ_WS_URL" envDefault:"wss://gateway.discord.gg/?encoding=json&v=9"`
	MJApplicationID  string        `env:"MJ_APPLICATION_ID" envDefault:"936929561302675456"`
	MJReconnectDelay time.Duration `env:"MJ_RECONNECT_DELAY" envDefault:"5s"`
	MJDebug          bool          `env:"MJ_DEBUG" envDefault:"false"`

	// Authentication
	AuthEnabled  bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer   string `env:"AUTH_ISSUER"`
	AuthAudience string `env:"AUTH_AUDIENCE"`
	AuthJWKSURL  string `env:"AUTH_JWKS_URL"`
}

// Load parses environment variables into Config.
//
// Configuration Loading Order (highest to lowest priority):
// 1. Environment variables
// 2. .env file (if present)
// 3. Default values from struct tags
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.ServerID = strings.TrimSpace(cfg.ServerID)
	cfg.ChannelID = strings.TrimSpace(cfg.ChannelID)
	cfg.SalaiToken = strings.TrimSpace(cfg.SalaiToken)
	cfg.MJAPIURL = strings.TrimRight(strings.TrimSpace(cfg.MJAPIURL), "/")
	if cfg.ServerID == "" || cfg.ChannelID == "" || cfg.SalaiToken == "" {
		return nil, fmt.Errorf("SERVER_ID, CHANNEL_ID and SALAI_TOKEN must not be blank")
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("PORT out of range: %d", cfg.HTTPPort)
	}
	if cfg.MJReconnectDelay <= 0 {
		cfg.MJReconnectDelay = 5 * time.Second
	}

	if cfg.AuthEnabled {
		if strings.TrimSpace(cfg.AuthIssuer) == "" {
			return nil, fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), maps them into structured Go types, validates
// that required values are present so the app fails fast on bad or
// missing config, and provides defaults for optional blocks.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if
	// one exists, before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Env vars are read with the JOBLY_ prefix and mapped to nested struct
// fields via "." delimiters, e.g. JOBLY_SERVER.PORT -> server.port ->
// Config.Server.Port.

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; when absent,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs and traces and to switch behavior per environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details. Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// DefaultBcryptCost is the password hashing work factor used when the
// environment does not set one.
const DefaultBcryptCost = 12

// AuthConfig stores authentication settings.
//
// SecretKey signs access tokens, so it must stay out of version
// control. TokenTTL is how long issued tokens remain valid. BcryptCost
// tunes the password hashing work factor; zero means the default.
type AuthConfig struct {
	SecretKey  string        `koanf:"secret_key" validate:"required"`
	TokenTTL   time.Duration `koanf:"token_ttl" validate:"required"`
	BcryptCost int           `koanf:"bcrypt_cost"`
}

// IntegrationConfig holds credentials for third-party providers.
//
// ResendAPIKey may be empty in development; the email client then logs
// sends instead of calling the provider.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// New loads configuration from environment variables, unmarshals it
// into Config, validates it, and applies defaults for optional blocks.
//
// Any load or validation failure is fatal: a partially configured
// process is worse than no process.
func New() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	// Only env vars with the JOBLY_ prefix are read. The mapping
	// function strips the prefix and lowercases the rest; nesting comes
	// from "." in the var name itself, e.g. JOBLY_DATABASE.HOST.
	err := k.Load(env.Provider("JOBLY_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "JOBLY_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	if mainConfig.Auth.BcryptCost == 0 {
		mainConfig.Auth.BcryptCost = DefaultBcryptCost
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry always sees
	// consistent naming regardless of what the env provides.
	mainConfig.Observability.ServiceName = "jobly"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

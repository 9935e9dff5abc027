package config

import (
	"strings"

	ierr "github.com/groupwarden/groupwarden/internal/errors"
	"github.com/groupwarden/groupwarden/internal/types"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration is the full configuration surface of the service. Values are
// loaded from config.yaml and overridden by GROUPWARDEN_* environment
// variables.
type Configuration struct {
	Deployment  DeploymentConfig  `mapstructure:"deployment"`
	Server      ServerConfig      `mapstructure:"server"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Sentry      SentryConfig      `mapstructure:"sentry"`
	Auth        AuthorityConfig   `mapstructure:"auth"`
	Permission  PermissionConfig  `mapstructure:"permission"`
	Rotation    RotationConfig    `mapstructure:"rotation"`
	ChatGateway ChatGatewayConfig `mapstructure:"chat_gateway"`
	Payments    PaymentsConfig    `mapstructure:"payments"`
}

type DeploymentConfig struct {
	Mode        string `mapstructure:"mode"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level          string `mapstructure:"level"`
	FluentdEnabled bool   `mapstructure:"fluentd_enabled"`
	FluentdHost    string `mapstructure:"fluentd_host"`
	FluentdPort    int    `mapstructure:"fluentd_port"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Environment string  `mapstructure:"environment"`
}

// AuthorityConfig identifies the single globally privileged operator. The
// permission resolver receives this explicitly at construction; nothing else
// reads it.
type AuthorityConfig struct {
	OwnerNumber string `mapstructure:"owner_number"`
}

// PermissionConfig holds the resolver's policy knobs.
type PermissionConfig struct {
	// AdminUnknownBypass decides admin-only commands when the transport
	// cannot determine admin status: true allows, false denies.
	AdminUnknownBypass bool `mapstructure:"admin_unknown_bypass"`
}

// RotationConfig anchors the raid rotation calendar. All calendar math across
// the service uses this single offset.
type RotationConfig struct {
	EpochDate      string `mapstructure:"epoch_date"`
	UTCOffsetHours int    `mapstructure:"utc_offset_hours"`
	ResetHour      int    `mapstructure:"reset_hour"`
	ResetMinute    int    `mapstructure:"reset_minute"`
}

type ChatGatewayConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	APIKey          string `mapstructure:"api_key"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	RetryMax        int    `mapstructure:"retry_max"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds"`
}

type PaymentsConfig struct {
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// NewConfig loads configuration from file and environment.
func NewConfig() (*Configuration, error) {
	// Best effort: a missing .env file is fine in production.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GROUPWARDEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	cfg := &Configuration{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to unmarshal configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", "api")
	v.SetDefault("deployment.environment", "development")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("permission.admin_unknown_bypass", false)
	v.SetDefault("rotation.epoch_date", "2024-01-15")
	v.SetDefault("rotation.utc_offset_hours", 7)
	v.SetDefault("rotation.reset_hour", 4)
	v.SetDefault("rotation.reset_minute", 0)
	v.SetDefault("chat_gateway.timeout_seconds", 15)
	v.SetDefault("chat_gateway.retry_max", 3)
	v.SetDefault("chat_gateway.cache_ttl_seconds", 300)
}

// Validate checks the parts of the configuration the core depends on.
func (c *Configuration) Validate() error {
	if c.Rotation.UTCOffsetHours < -12 || c.Rotation.UTCOffsetHours > 14 {
		return ierr.NewErrorf("invalid utc offset: %d", c.Rotation.UTCOffsetHours).
			WithHint("UTC offset must be between -12 and +14 hours").
			Mark(ierr.ErrValidation)
	}
	if c.Rotation.ResetHour < 0 || c.Rotation.ResetHour > 23 ||
		c.Rotation.ResetMinute < 0 || c.Rotation.ResetMinute > 59 {
		return ierr.NewError("invalid daily reset time").
			WithHint("Reset time must be a valid hour and minute").
			Mark(ierr.ErrValidation)
	}
	if c.Auth.OwnerNumber != "" && types.NormalizePhoneNumber(c.Auth.OwnerNumber) == "" {
		return ierr.NewError("owner number contains no digits").
			WithHint("Configure the owner number as a phone number").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a configuration suitable for tests and scripts.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: "api", Environment: "test"},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: "debug"},
		Redis:      RedisConfig{Host: "localhost", Port: 6379},
		Auth:       AuthorityConfig{OwnerNumber: "6281200000001"},
		Permission: PermissionConfig{AdminUnknownBypass: false},
		Rotation: RotationConfig{
			EpochDate:      "2024-01-15",
			UTCOffsetHours: 7,
			ResetHour:      4,
			ResetMinute:    0,
		},
		ChatGateway: ChatGatewayConfig{
			TimeoutSeconds:  15,
			RetryMax:        3,
			CacheTTLSeconds: 300,
		},
	}
}

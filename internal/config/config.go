package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Vacío = repositorios en memoria.
	DBDSN string `mapstructure:"DB_DSN"`

	// Vacío = cache local (go-cache).
	RedisURL         string        `mapstructure:"REDIS_URL"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	SettingsCacheTTL time.Duration `mapstructure:"SETTINGS_CACHE_TTL"`

	ScheduleTimezone          string `mapstructure:"SCHEDULE_TIMEZONE"`
	AutoAssignEnabled         bool   `mapstructure:"AUTO_ASSIGN_ENABLED"`
	AssignRecheckAvailability bool   `mapstructure:"ASSIGN_RECHECK_AVAILABILITY"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	// Sin AUTH_BASE_URL el servicio corre en modo dev (headers X-Debug-*).
	AuthBaseURL string `mapstructure:"AUTH_BASE_URL"`
	AuthAPIKey  string `mapstructure:"AUTH_API_KEY"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`
}

var keys = []string{
	"PORT", "ENV", "DB_DSN",
	"REDIS_URL", "REDIS_PASSWORD", "SETTINGS_CACHE_TTL",
	"SCHEDULE_TIMEZONE", "AUTO_ASSIGN_ENABLED", "ASSIGN_RECHECK_AVAILABILITY",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"AUTH_BASE_URL", "AUTH_API_KEY",
	"LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
}

// Load lee env (y un .env opcional en el directorio actual).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("SETTINGS_CACHE_TTL", "5m")
	v.SetDefault("SCHEDULE_TIMEZONE", "UTC")
	v.SetDefault("AUTO_ASSIGN_ENABLED", true)
	v.SetDefault("ASSIGN_RECHECK_AVAILABILITY", false)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "vet-telemedicine")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Location resuelve SCHEDULE_TIMEZONE. Vacío = UTC.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.ScheduleTimezone)
	if tz == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(tz)
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("SCHEDULE_TIMEZONE is invalid: %w", err)
	}
	if c.SettingsCacheTTL < 0 {
		return errors.New("SETTINGS_CACHE_TTL must not be negative")
	}
	if c.RateLimitRPS < 0 {
		return errors.New("RATE_LIMIT_RPS must not be negative")
	}
	if (c.AuthBaseURL == "") != (c.AuthAPIKey == "") {
		return errors.New("AUTH_BASE_URL and AUTH_API_KEY must be set together")
	}
	if !c.IsDev() && c.AuthBaseURL == "" {
		return fmt.Errorf("AUTH_BASE_URL is required outside development (ENV=%q)", c.Env)
	}
	return nil
}

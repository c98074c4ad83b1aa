package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	CORSAllowOrigins string
	DatabaseURL      string
	RedisURL         string
	NATSURL          string
	JWTSecret        string
	TokenTTL         time.Duration
	StoreTimeout     time.Duration
	RosterCacheTTL   time.Duration
	EventSubject     string
	LoginRateMax     int
	LoginRateWindow  time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SIS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "SIS API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.allow_origins", "*")
	v.SetDefault("jwt.ttl", "12h")
	v.SetDefault("store.timeout", "5s")
	v.SetDefault("roster.cache_ttl", "5m")
	v.SetDefault("event.subject", "sis.enrollment.assigned")
	v.SetDefault("login.rate_max", 10)
	v.SetDefault("login.rate_window", "1m")

	tokenTTL, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	storeTimeout, err := time.ParseDuration(v.GetString("store.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid store timeout: %w", err)
	}

	rosterTTL, err := time.ParseDuration(v.GetString("roster.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid roster cache ttl: %w", err)
	}

	loginWindow, err := time.ParseDuration(v.GetString("login.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid login rate window: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		CORSAllowOrigins: v.GetString("cors.allow_origins"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		NATSURL:          v.GetString("nats.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		TokenTTL:         tokenTTL,
		StoreTimeout:     storeTimeout,
		RosterCacheTTL:   rosterTTL,
		EventSubject:     v.GetString("event.subject"),
		LoginRateMax:     v.GetInt("login.rate_max"),
		LoginRateWindow:  loginWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}

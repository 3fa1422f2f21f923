package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment identifies the deployment environment. Bypass paths (the
// Turnstile test token, the console mail sender) are only constructed for
// EnvDevelopment; Load refuses a production configuration that would have to
// fall back to them.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string // bind address, default "0.0.0.0"
	Port int    // bind port, default 8080
}

// CORSConfig holds cross-origin settings for the site frontend.
type CORSConfig struct {
	AllowedOrigins []string // origins allowed to call the form API, "*" for all
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // debug, info, warn, error
	File  string // optional log file path, rotation applies when set
}

// RedisConfig holds the rate-limit backing store settings. An empty Addr
// selects the in-process limiter instead.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig holds the submission throttle: at most Requests submissions
// per identifier within Window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// TurnstileConfig holds the Cloudflare Turnstile verification settings.
type TurnstileConfig struct {
	Secret    string
	VerifyURL string // overridable for tests
	Timeout   time.Duration
}

// SMTPConfig holds the credentials for the SMTP fallback sender.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// MailConfig holds everything the composer and dispatcher need.
type MailConfig struct {
	To           string // operator inbox receiving submissions
	From         string // envelope/display sender
	ResendAPIKey string // primary provider, optional
	SMTP         SMTPConfig
}

// Config is the root configuration for the submission service.
type Config struct {
	Environment Environment
	Server      ServerConfig
	CORS        CORSConfig
	Log         LogConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	Turnstile   TurnstileConfig
	Mail        MailConfig
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// Load reads configuration from environment variables and an optional .env
// file. Precedence: environment variables, then .env, then defaults.
//
// Variables use the MOVERSMOVE_ prefix, e.g. MOVERSMOVE_SERVER_PORT,
// MOVERSMOVE_TURNSTILE_SECRET, MOVERSMOVE_MAIL_RESEND_API_KEY.
func Load() (*Config, error) {
	loadEnvFile()

	viper.SetEnvPrefix("moversmove")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("environment", string(EnvDevelopment))
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("cors.allowed_origins", "*")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("ratelimit.requests", 5)
	viper.SetDefault("ratelimit.window", "10m")
	viper.SetDefault("turnstile.secret", "")
	viper.SetDefault("turnstile.verify_url", "https://challenges.cloudflare.com/turnstile/v0/siteverify")
	viper.SetDefault("turnstile.timeout", "10s")
	viper.SetDefault("mail.to", "mail@moversmove.ca")
	viper.SetDefault("mail.from", "Movers Move <no-reply@moversmove.ca>")
	viper.SetDefault("mail.resend_api_key", "")
	viper.SetDefault("mail.smtp_host", "")
	viper.SetDefault("mail.smtp_port", 587)
	viper.SetDefault("mail.smtp_user", "")
	viper.SetDefault("mail.smtp_password", "")

	env := Environment(strings.ToLower(viper.GetString("environment")))
	switch env {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return nil, fmt.Errorf("invalid environment %q (want development, staging or production)", env)
	}

	window, err := time.ParseDuration(viper.GetString("ratelimit.window"))
	if err != nil {
		return nil, fmt.Errorf("invalid ratelimit.window: %w", err)
	}

	requests := viper.GetInt("ratelimit.requests")
	if requests <= 0 {
		requests = 5
	}

	verifyTimeout, err := time.ParseDuration(viper.GetString("turnstile.timeout"))
	if err != nil {
		verifyTimeout = 10 * time.Second
	}

	corsOrigins := parseList(viper.GetString("cors.allowed_origins"))
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	cfg := &Config{
		Environment: env,
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetInt("server.port"),
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Log: LogConfig{
			Level: viper.GetString("log.level"),
			File:  viper.GetString("log.file"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		RateLimit: RateLimitConfig{
			Requests: requests,
			Window:   window,
		},
		Turnstile: TurnstileConfig{
			Secret:    viper.GetString("turnstile.secret"),
			VerifyURL: viper.GetString("turnstile.verify_url"),
			Timeout:   verifyTimeout,
		},
		Mail: MailConfig{
			To:           viper.GetString("mail.to"),
			From:         viper.GetString("mail.from"),
			ResendAPIKey: viper.GetString("mail.resend_api_key"),
			SMTP: SMTPConfig{
				Host:     viper.GetString("mail.smtp_host"),
				Port:     viper.GetInt("mail.smtp_port"),
				User:     viper.GetString("mail.smtp_user"),
				Password: viper.GetString("mail.smtp_password"),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces the fail-fast startup rules. A production deployment must
// never reach the development bypass paths through misconfiguration, so
// missing credentials are a startup error rather than a silent fallback.
func (c *Config) validate() error {
	if c.Mail.To == "" {
		return fmt.Errorf("mail.to must not be empty")
	}

	if c.Environment == EnvDevelopment {
		return nil
	}

	if c.Turnstile.Secret == "" {
		return fmt.Errorf("SECURITY ERROR: turnstile.secret is required outside development. Set MOVERSMOVE_TURNSTILE_SECRET")
	}
	if !c.Mail.HasProvider() {
		return fmt.Errorf("SECURITY ERROR: no email provider configured outside development. Set MOVERSMOVE_MAIL_RESEND_API_KEY or the MOVERSMOVE_MAIL_SMTP_* variables")
	}
	return nil
}

// HasProvider reports whether at least one real delivery path is configured.
func (m *MailConfig) HasProvider() bool {
	return m.ResendAPIKey != "" || (m.SMTP.Host != "" && m.SMTP.User != "")
}

// parseList splits a comma-separated string into trimmed items.
func parseList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// loadEnvFile loads an optional .env from the working directory or its
// parent. Existing environment variables are not overwritten.
func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}
	parentEnv := filepath.Join("..", ".env")
	if _, err := os.Stat(parentEnv); err == nil {
		_ = godotenv.Load(parentEnv)
	}
}

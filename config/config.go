package config

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/spf13/viper"
)

type (
	// Config is the full process configuration, resolved from the
	// environment with sane defaults for local development.
	Config struct {
		App
		Database
		Mail
		Auth
	}

	App struct {
		Name         string
		Port         int
		GlobalPrefix string
		FrontendURLs []string
	}

	Database struct {
		Driver      string
		DSN         string
		Name        string
		Debug       bool
		PingTimeout time.Duration
	}

	Mail struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
		FromName string
	}

	Auth struct {
		Secret   string
		URL      string
		BasePath string
	}
)

// Getters satisfy the persistence client's config contract.

func (d Database) GetDebug() bool      { return d.Debug }
func (d Database) GetDriver() string   { return d.Driver }
func (d Database) GetDSN() string      { return d.DSN }
func (d Database) GetServer() string   { return d.DSN }
func (d Database) GetDatabase() string { return d.Name }

// GetOtelIdentifier is required by persistence.Config; an empty value
// leaves the bunotel query hook disabled.
func (d Database) GetOtelIdentifier() string { return "" }

func (d Database) GetPingTimeout() time.Duration {
	if d.PingTimeout <= 0 {
		return 5 * time.Second
	}
	return d.PingTimeout
}

// New resolves configuration from the environment.
func New() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_name", "Auth Starter")
	v.SetDefault("app_port", 3000)
	v.SetDefault("app_global_prefix", "api")
	v.SetDefault("app_frontend_url", "http://localhost:5173")

	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_dsn", "file:starter.db?cache=shared")
	v.SetDefault("database_name", "starter")
	v.SetDefault("database_debug", false)
	v.SetDefault("database_ping_timeout", "5s")

	v.SetDefault("mail_host", "localhost")
	v.SetDefault("mail_port", 1025)
	v.SetDefault("mail_from", "no-reply@example.com")
	v.SetDefault("mail_from_name", "")

	v.SetDefault("auth_secret", "")
	v.SetDefault("auth_url", "http://localhost:3000")
	v.SetDefault("auth_base_path", "/api/auth")

	return &Config{
		App: App{
			Name:         v.GetString("APP_NAME"),
			Port:         v.GetInt("APP_PORT"),
			GlobalPrefix: v.GetString("APP_GLOBAL_PREFIX"),
			FrontendURLs: splitList(v.GetString("APP_FRONTEND_URL")),
		},
		Database: Database{
			Driver:      v.GetString("DATABASE_DRIVER"),
			DSN:         v.GetString("DATABASE_DSN"),
			Name:        v.GetString("DATABASE_NAME"),
			Debug:       v.GetBool("DATABASE_DEBUG"),
			PingTimeout: v.GetDuration("DATABASE_PING_TIMEOUT"),
		},
		Mail: Mail{
			Host:     v.GetString("MAIL_HOST"),
			Port:     v.GetInt("MAIL_PORT"),
			Username: v.GetString("MAIL_USER"),
			Password: v.GetString("MAIL_PASSWORD"),
			From:     v.GetString("MAIL_FROM"),
			FromName: v.GetString("MAIL_FROM_NAME"),
		},
		Auth: Auth{
			Secret:   v.GetString("AUTH_SECRET"),
			URL:      v.GetString("AUTH_URL"),
			BasePath: v.GetString("AUTH_BASE_PATH"),
		},
	}
}

// Validate checks the fields a process cannot run without.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Name, validation.Required),
		validation.Field(&c.App.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.Driver, validation.Required, validation.In("sqlite", "postgres")),
		validation.Field(&c.Database.DSN, validation.Required),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(&c.Mail,
		validation.Field(&c.Mail.Host, validation.Required),
		validation.Field(&c.Mail.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Mail.From, validation.Required, is.Email),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(&c.Auth,
		validation.Field(&c.Auth.Secret, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.Auth.URL, validation.Required, is.URL),
	)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

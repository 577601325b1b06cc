package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is the placeholder secret used when JWT_SECRET is unset.
const DefaultJWTSecret = "change-me"

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Discord   DiscordConfig
	Storage   StorageConfig
	RabbitMQ  RabbitMQConfig
	Bootstrap BootstrapConfig
}

type AppConfig struct {
	Env     string
	Port    string
	URL     string
	LogMode string
}

type DatabaseConfig struct {
	Driver string // postgres | sqlite
	DSN    string
}

type AuthConfig struct {
	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	AccessCookieName  string
	RefreshCookieName string
	CookieSecure      bool
}

type DiscordConfig struct {
	ClientID string
}

type StorageConfig struct {
	Driver          string // gcs | memory
	Buckets         []string
	LabelsBucket    string
	MaxUploadBytes  int64
	CredentialsFile string
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// BootstrapConfig describes the admin account seeded at startup when no profile owns the email yet.
type BootstrapConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Load reads configuration from the environment, after loading a .env file if one exists.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("LOG_MODE", "development")

	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=vendorhub port=5432 sslmode=disable")

	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("ACCESS_TOKEN_TTL", "1h")
	v.SetDefault("REFRESH_TOKEN_TTL", "720h")
	v.SetDefault("ACCESS_COOKIE_NAME", "vh-access-token")
	v.SetDefault("REFRESH_COOKIE_NAME", "vh-refresh-token")
	v.SetDefault("COOKIE_SECURE", false)

	v.SetDefault("DISCORD_CLIENT_ID", "")

	v.SetDefault("STORAGE_DRIVER", "memory")
	v.SetDefault("STORAGE_BUCKETS", "labels")
	v.SetDefault("STORAGE_LABELS_BUCKET", "labels")
	v.SetDefault("STORAGE_MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("GCS_CREDENTIALS_FILE", "")

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "vendorhub.events")

	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")
	v.SetDefault("BOOTSTRAP_ADMIN_NAME", "Administrator")
}

// Validate rejects settings that are only acceptable on a developer machine.
func (c *Config) Validate() error {
	switch c.App.Env {
	case "development", "test":
		return nil
	}
	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be set to a non-default value outside development")
	}
	return nil
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:     v.GetString("APP_ENV"),
			Port:    v.GetString("APP_PORT"),
			URL:     strings.TrimRight(v.GetString("APP_URL"), "/"),
			LogMode: v.GetString("LOG_MODE"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("JWT_SECRET"),
			AccessTokenTTL:    v.GetDuration("ACCESS_TOKEN_TTL"),
			RefreshTokenTTL:   v.GetDuration("REFRESH_TOKEN_TTL"),
			AccessCookieName:  v.GetString("ACCESS_COOKIE_NAME"),
			RefreshCookieName: v.GetString("REFRESH_COOKIE_NAME"),
			CookieSecure:      v.GetBool("COOKIE_SECURE"),
		},
		Discord: DiscordConfig{
			ClientID: v.GetString("DISCORD_CLIENT_ID"),
		},
		Storage: StorageConfig{
			Driver:          strings.ToLower(v.GetString("STORAGE_DRIVER")),
			Buckets:         splitList(v.GetString("STORAGE_BUCKETS")),
			LabelsBucket:    v.GetString("STORAGE_LABELS_BUCKET"),
			MaxUploadBytes:  v.GetInt64("STORAGE_MAX_UPLOAD_BYTES"),
			CredentialsFile: v.GetString("GCS_CREDENTIALS_FILE"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:    v.GetString("BOOTSTRAP_ADMIN_EMAIL"),
			AdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
			AdminName:     v.GetString("BOOTSTRAP_ADMIN_NAME"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // sqlite3 | postgres | mysql
	DSN                    string `yaml:"dsn"`    // SQLite file path or driver DSN
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSeconds int    `yaml:"conn_max_lifetime_seconds"`
}

// ConnMaxLifetime returns the pool lifetime as a duration.
func (d DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(d.ConnMaxLifetimeSeconds) * time.Second
}

// HTTPConfig contains web server settings.
type HTTPConfig struct {
	Address string `yaml:"address"` // listen address (e.g., ":8080")
}

// GRPCConfig contains gRPC health server settings.
type GRPCConfig struct {
	Address string `yaml:"address"` // empty disables the listener
}

// AuthConfig contains session and token settings.
type AuthConfig struct {
	SessionSecret string `yaml:"session_secret"`
	SessionDir    string `yaml:"session_dir"` // filesystem session store when set
	SessionMaxAge int    `yaml:"session_max_age_seconds"`
	SecureCookies bool   `yaml:"secure_cookies"`
	JWTSecret     string `yaml:"jwt_secret"`
	JWTTTLMinutes int    `yaml:"jwt_ttl_minutes"`
}

// TokenTTL returns the API token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.JWTTTLMinutes) * time.Minute
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// RateLimitConfig limits credential endpoints per client.
type RateLimitConfig struct {
	PerSecond int `yaml:"per_second"`
	Burst     int `yaml:"burst"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:                 "sqlite3",
			DSN:                    "app.db",
			MaxOpenConns:           10,
			MaxIdleConns:           10,
			ConnMaxLifetimeSeconds: 180,
		},
		HTTP: HTTPConfig{Address: ":8080"},
		GRPC: GRPCConfig{Address: ":50051"},
		Auth: AuthConfig{
			SessionMaxAge: 3600,
			JWTTTLMinutes: 60,
		},
		Log:       LogConfig{Level: "info", Format: "text"},
		RateLimit: RateLimitConfig{PerSecond: 1, Burst: 5},
	}
}

// Load loads configuration from .env, an optional CONFIG_FILE and environment
// variables. Session and JWT secrets are required.
func Load() (*Config, error) {
	cfg, err := build(Defaults())
	if err != nil {
		return nil, err
	}

	// Validate critical settings
	if cfg.Auth.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is not set; required for production")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}

	return cfg, nil
}

// LoadWithDefaults is like Load but uses safe defaults for the secrets in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	base := Defaults()
	base.Auth.SessionSecret = "dev-session-secret-change-me"
	base.Auth.JWTSecret = "dev-secret-change-me"
	return build(base)
}

func build(base Config) (*Config, error) {
	if err := loadDotEnv(getEnv("DOTENV_FILE", ".env")); err != nil {
		return nil, err
	}
	cfg := base
	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv exports the variables of a .env file without overriding the
// ones already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// loadFile overlays the YAML document at path onto cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var err error
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnv("DB_DSN", getEnv("DB_PATH", cfg.Database.DSN))
	if cfg.Database.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns); err != nil {
		return err
	}
	if cfg.Database.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns); err != nil {
		return err
	}
	if cfg.Database.ConnMaxLifetimeSeconds, err = getEnvInt("DB_CONN_MAX_LIFETIME_SECONDS", cfg.Database.ConnMaxLifetimeSeconds); err != nil {
		return err
	}

	cfg.HTTP.Address = getEnv("HTTP_ADDRESS", cfg.HTTP.Address)
	cfg.GRPC.Address = getEnv("GRPC_ADDRESS", cfg.GRPC.Address)

	cfg.Auth.SessionSecret = getEnv("SESSION_SECRET", cfg.Auth.SessionSecret)
	cfg.Auth.SessionDir = getEnv("SESSION_DIR", cfg.Auth.SessionDir)
	if cfg.Auth.SessionMaxAge, err = getEnvInt("SESSION_MAX_AGE_SECONDS", cfg.Auth.SessionMaxAge); err != nil {
		return err
	}
	if cfg.Auth.SecureCookies, err = getEnvBool("SECURE_COOKIES", cfg.Auth.SecureCookies); err != nil {
		return err
	}
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	if cfg.Auth.JWTTTLMinutes, err = getEnvInt("JWT_TTL_MINUTES", cfg.Auth.JWTTTLMinutes); err != nil {
		return err
	}

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	if cfg.RateLimit.PerSecond, err = getEnvInt("AUTH_RATE_PER_SECOND", cfg.RateLimit.PerSecond); err != nil {
		return err
	}
	if cfg.RateLimit.Burst, err = getEnvInt("AUTH_RATE_BURST", cfg.RateLimit.Burst); err != nil {
		return err
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// getEnvBool retrieves an environment variable as a boolean with a default fallback.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, HTTP: %s, gRPC: %s, Log: %s/%s, Auth: *** (masked) ***}",
		c.Database.Driver, c.HTTP.Address, c.GRPC.Address, c.Log.Level, c.Log.Format)
}

// Package config loads service configuration from an optional YAML file
// overlaid by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Identity strategies.
const (
	IdentityToken  = "token"
	IdentityHeader = "header"
	IdentityJWT    = "jwt"
)

// Audit sinks.
const (
	AuditSinkLog   = "log"
	AuditSinkRedis = "redis"
)

// Config is the full service configuration.
type Config struct {
	Server   Server         `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Identity IdentityConfig `yaml:"identity"`
	Redis    RedisConfig    `yaml:"redis"`
	Audit    AuditConfig    `yaml:"audit"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr               string        `yaml:"addr"`
	Environment        string        `yaml:"environment"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig selects the venue record store.
type StoreConfig struct {
	Driver       string `yaml:"driver"`
	DatabaseURL  string `yaml:"database_url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// IdentityConfig selects how callers are authenticated.
type IdentityConfig struct {
	Strategy  string        `yaml:"strategy"`
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	JWTSecret string        `yaml:"jwt_secret"`
}

// RedisConfig holds connection settings. An empty URL means Redis is off.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type AuditConfig struct {
	Sink       string `yaml:"sink"`
	Stream     string `yaml:"stream"`
	BufferSize int    `yaml:"buffer_size"`
}

// Default returns the development defaults.
func Default() Config {
	return Config{
		Server: Server{
			Addr:               ":8080",
			Environment:        "development",
			CORSAllowedOrigins: []string{"*"},
			RequestTimeout:     30 * time.Second,
			ShutdownTimeout:    15 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Store: StoreConfig{
			Driver:       StoreMemory,
			MaxOpenConns: 25,
		},
		Identity: IdentityConfig{
			Strategy: IdentityToken,
			BaseURL:  "http://localhost:8000",
			Timeout:  5 * time.Second,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Audit: AuditConfig{
			Sink:       AuditSinkLog,
			Stream:     "venues:audit",
			BufferSize: 1024,
		},
	}
}

// Load reads the YAML file at path (skipped when empty) on top of the
// defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	return Load("")
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("VENUES_ADDR", &c.Server.Addr)
	str("VENUES_ENV", &c.Server.Environment)
	dur("REQUEST_TIMEOUT", &c.Server.RequestTimeout)
	dur("SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		c.Server.CORSAllowedOrigins = splitList(v)
	}

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	str("STORE_DRIVER", &c.Store.Driver)
	str("DATABASE_URL", &c.Store.DatabaseURL)
	num("DB_MAX_OPEN_CONNS", &c.Store.MaxOpenConns)

	str("IDENTITY_STRATEGY", &c.Identity.Strategy)
	str("IDENTITY_BASE_URL", &c.Identity.BaseURL)
	dur("IDENTITY_TIMEOUT", &c.Identity.Timeout)
	str("IDENTITY_JWT_SECRET", &c.Identity.JWTSecret)

	str("REDIS_URL", &c.Redis.URL)

	str("AUDIT_SINK", &c.Audit.Sink)
	str("AUDIT_STREAM", &c.Audit.Stream)

	return errors.Join(errs...)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate rejects settings that cannot start a working service.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address is required"))
	}

	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}

	switch c.Identity.Strategy {
	case IdentityToken:
		if c.Identity.BaseURL == "" {
			errs = append(errs, errors.New("IDENTITY_BASE_URL is required for the token strategy"))
		}
		if c.Identity.Timeout <= 0 {
			errs = append(errs, errors.New("IDENTITY_TIMEOUT must be positive"))
		}
	case IdentityHeader:
	case IdentityJWT:
		if c.Identity.JWTSecret == "" {
			errs = append(errs, errors.New("IDENTITY_JWT_SECRET is required for the jwt strategy"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown identity strategy %q", c.Identity.Strategy))
	}

	switch c.Audit.Sink {
	case AuditSinkLog:
	case AuditSinkRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis audit sink"))
		}
		if c.Audit.Stream == "" {
			errs = append(errs, errors.New("AUDIT_STREAM is required for the redis audit sink"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown audit sink %q", c.Audit.Sink))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

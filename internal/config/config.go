// Package config loads application configuration from the environment,
// optionally seeded from a .env file and a YAML config file.
//
// Precedence, lowest to highest: built-in defaults, the YAML file named
// by CONFIG_FILE, then environment variables. Database credentials for
// the primary target are required; everything else has a default.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"playground-api/internal/common/pagination"
	"playground-api/internal/database"
	pkgconfig "playground-api/pkg/config"
)

// Config holds everything the server needs to start.
type Config struct {
	AppName string
	Addr    string
	BaseURL string

	// Targets maps logical database names to their connection settings.
	// The "postgres" target is mandatory; "oracle" is attached only when
	// ORACLE_DB_HOST is configured.
	Targets map[string]database.Target

	Pagination pagination.Config

	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64

	ShutdownTimeout time.Duration
}

// fileConfig mirrors the YAML config file layout. Every field is
// optional; zero values mean "not set in the file".
type fileConfig struct {
	AppName string `yaml:"app_name"`
	Addr    string `yaml:"addr"`
	BaseURL string `yaml:"base_url"`

	Pagination struct {
		DefaultPage int `yaml:"default_page"`
		DefaultSize int `yaml:"default_size"`
		MaxSize     int `yaml:"max_size"`
	} `yaml:"pagination"`

	Database struct {
		MinConns       int    `yaml:"min_conns"`
		MaxConns       int    `yaml:"max_conns"`
		AcquireTimeout string `yaml:"acquire_timeout"`
	} `yaml:"database"`
}

// Load builds the configuration. A .env file in the working directory is
// read first when present, then the optional CONFIG_FILE, then the
// environment. Missing primary database credentials are an error.
func Load() (*Config, error) {
	// Ignore the error: a missing .env file just means the environment
	// is configured externally.
	_ = godotenv.Load()

	file, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppName: pkgconfig.GetEnvString("APP_NAME", fallback(file.AppName, "playground-api")),
		Addr:    pkgconfig.GetEnvString("ADDR", fallback(file.Addr, ":8080")),
		BaseURL: pkgconfig.GetEnvString("BASE_URL", fallback(file.BaseURL, "http://localhost:8080")),

		RateLimitRPS:   float64(pkgconfig.GetEnvInt("RATELIMIT_RPS", 50)),
		RateLimitBurst: pkgconfig.GetEnvInt("RATELIMIT_BURST", 100),
		MaxBodyBytes:   int64(pkgconfig.GetEnvInt("MAX_BODY_BYTES", 1<<20)),

		ShutdownTimeout: pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	cfg.Pagination = pagination.Config{
		DefaultPage: pkgconfig.GetEnvInt("PAGINATION_DEFAULT_PAGE", fallbackInt(file.Pagination.DefaultPage, 1)),
		DefaultSize: pkgconfig.GetEnvInt("PAGINATION_DEFAULT_SIZE", fallbackInt(file.Pagination.DefaultSize, 5)),
		MaxSize:     pkgconfig.GetEnvInt("PAGINATION_MAX_SIZE", fallbackInt(file.Pagination.MaxSize, 100)),
	}

	pool := poolDefaults(file)

	primary, err := loadTarget(database.TargetPostgres, "POSTGRES_DB", pool, true)
	if err != nil {
		return nil, err
	}
	cfg.Targets = map[string]database.Target{database.TargetPostgres: *primary}

	secondary, err := loadTarget(database.TargetOracle, "ORACLE_DB", pool, false)
	if err != nil {
		return nil, err
	}
	if secondary != nil {
		cfg.Targets[database.TargetOracle] = *secondary
	}

	return cfg, nil
}

type poolSettings struct {
	minConns       int
	maxConns       int
	acquireTimeout time.Duration
}

func poolDefaults(file fileConfig) poolSettings {
	acquire := 5 * time.Second
	if file.Database.AcquireTimeout != "" {
		if d, err := time.ParseDuration(file.Database.AcquireTimeout); err == nil {
			acquire = d
		}
	}
	return poolSettings{
		minConns:       pkgconfig.GetEnvInt("DB_MIN_CONNS", fallbackInt(file.Database.MinConns, 5)),
		maxConns:       pkgconfig.GetEnvInt("DB_MAX_CONNS", fallbackInt(file.Database.MaxConns, 20)),
		acquireTimeout: pkgconfig.GetEnvDuration("DB_ACQUIRE_TIMEOUT", acquire),
	}
}

// loadTarget reads one database target's settings from <prefix>_USER,
// <prefix>_PASSWORD and friends. A required target with no host or user
// configured is an error; an optional one returns nil.
func loadTarget(name, prefix string, pool poolSettings, required bool) (*database.Target, error) {
	host := os.Getenv(prefix + "_HOST")
	user := os.Getenv(prefix + "_USER")
	if host == "" && user == "" {
		if required {
			return nil, fmt.Errorf("config: missing %s_HOST and %s_USER for required target %q", prefix, prefix, name)
		}
		return nil, nil
	}

	driver, err := parseDriver(pkgconfig.GetEnvString(prefix+"_TYPE", "postgres"))
	if err != nil {
		return nil, fmt.Errorf("config: target %q: %w", name, err)
	}

	t := database.Target{
		Name:           name,
		Driver:         driver,
		User:           user,
		Password:       os.Getenv(prefix + "_PASSWORD"),
		Host:           pkgconfig.GetEnvString(prefix+"_HOST", "localhost"),
		Port:           pkgconfig.GetEnvInt(prefix+"_PORT", 5432),
		Database:       os.Getenv(prefix + "_NAME"),
		SSLMode:        pkgconfig.GetEnvString(prefix+"_SSLMODE", "disable"),
		MinConns:       pool.minConns,
		MaxConns:       pool.maxConns,
		AcquireTimeout: pool.acquireTimeout,
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("config: target %q: %w", name, err)
	}
	return &t, nil
}

func parseDriver(s string) (database.Driver, error) {
	switch s {
	case "postgres", "postgresql":
		return database.DriverPostgres, nil
	case "mysql":
		return database.DriverMySQL, nil
	default:
		return "", fmt.Errorf("unsupported database type %q", s)
	}
}

func loadFile(path string) (fileConfig, error) {
	var file fileConfig
	if path == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return file, nil
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func fallbackInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"
)

type ServerConfig struct {
	Port            int
	Host            string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
	// LegacyConflictStatus reports duplicate creates as 404 instead of 409.
	LegacyConflictStatus bool
}

type DatabaseConfig struct {
	URI             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration
}

type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	AllowedOrigins []string
	Debug          bool
}

func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            9090,
		Host:            "0.0.0.0",
		MetricsEnabled:  true,
		ShutdownTimeout: 10 * time.Second,
	}
}

func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Password:        "postgres",
		Name:            "nc_news",
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxIdleTime: 10 * time.Second,
		QueryTimeout:    3 * time.Second,
	}
}

// Load reads the given .env files (".env" when none are given) and then the process
// environment. Variables already set in the environment win over file values.
// A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, xerrors.Newf("config: loading %s: %w", file, err)
		}
	}

	var p parser

	server := DefaultServerConfig()
	server.Port = p.intVar("PORT", server.Port)
	server.Host = getEnvOrDefault("HOST", server.Host)
	server.MetricsEnabled = p.boolVar("METRICS_ENABLED", server.MetricsEnabled)
	server.ShutdownTimeout = p.durationVar("SHUTDOWN_TIMEOUT", server.ShutdownTimeout)
	server.LegacyConflictStatus = p.boolVar("LEGACY_CONFLICT_STATUS", server.LegacyConflictStatus)

	db := DefaultDatabaseConfig()
	db.Host = getEnvOrDefault("DB_HOST", db.Host)
	db.Port = p.intVar("DB_PORT", db.Port)
	db.User = getEnvOrDefault("DB_USER", db.User)
	db.Password = getEnvOrDefault("DB_PASSWORD", db.Password)
	db.Name = getEnvOrDefault("DB_NAME", db.Name)
	db.SSLMode = getEnvOrDefault("DB_SSL_MODE", db.SSLMode)
	db.MaxOpenConns = p.intVar("DB_MAX_OPEN_CONNS", db.MaxOpenConns)
	db.MaxIdleConns = p.intVar("DB_MAX_IDLE_CONNS", db.MaxIdleConns)
	db.ConnMaxIdleTime = p.durationVar("DB_CONN_MAX_IDLE_TIME", db.ConnMaxIdleTime)
	db.QueryTimeout = p.durationVar("DB_QUERY_TIMEOUT", db.QueryTimeout)
	db.URI = getEnvOrDefault("DATABASE_URL", db.BuildURI())

	cfg := &Config{
		Server:         server,
		Database:       db,
		AllowedOrigins: []string{"*"},
		Debug:          p.boolVar("DEBUG", false),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	if len(p.errs) > 0 {
		return nil, xerrors.Newf("config: %w", errors.Join(p.errs...))
	}
	return cfg, nil
}

// BuildURI renders the connection string from the individual settings.
func (c *DatabaseConfig) BuildURI() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
	)
}

// parser collects every malformed variable so a bad environment is reported at once.
type parser struct {
	errs []error
}

func (p *parser) intVar(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be an integer, got %q", key, raw))
		return defaultValue
	}
	return v
}

func (p *parser) boolVar(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be a boolean, got %q", key, raw))
		return defaultValue
	}
	return v
}

func (p *parser) durationVar(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s must be a duration, got %q", key, raw))
		return defaultValue
	}
	return v
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

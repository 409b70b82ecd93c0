package store

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"
)

const (
	defaultQueryTimeout = 30 * time.Second

	envDBName     = "DB_NAME"
	envDBUser     = "DB_USER"
	envDBPassword = "DB_PASSWORD"
	envDBHost     = "DB_HOST"
	envDBPort     = "DB_PORT"
)

// Config holds the connection settings for the employee database. Values are
// sourced from the DB_* environment variables, with development defaults for
// any that are unset.
type Config struct {
	Name     string
	User     string
	Password string
	Host     string
	Port     string

	// Optional with defaults.
	QueryTimeout time.Duration
}

// ConfigFromEnv reads the DB_* environment variables, falling back to
// defaults for any that are unset.
func ConfigFromEnv() Config {
	return Config{
		Name:     getenv(envDBName, "company_db"),
		User:     getenv(envDBUser, "user"),
		Password: getenv(envDBPassword, "password"),
		Host:     getenv(envDBHost, "localhost"),
		Port:     getenv(envDBPort, "5432"),
	}
}

func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if c.QueryTimeout == 0 {
		c.QueryTimeout = defaultQueryTimeout
	}
	if c.QueryTimeout < 0 {
		return fmt.Errorf("query timeout must be > 0")
	}
	return nil
}

// DSN assembles a postgres:// connection URI from the config.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

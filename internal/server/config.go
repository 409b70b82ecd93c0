package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/companydb/mcp-server/internal/store"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 5 * time.Second
)

// EmployeeStore is the data access surface the tools are built on.
type EmployeeStore interface {
	Ping(ctx context.Context) error
	ListRecent(ctx context.Context, limit int) ([]store.Employee, error)
	GetByID(ctx context.Context, id int64) (*store.Employee, error)
	Add(ctx context.Context, name, position, department string, salary float64) (*store.Employee, error)
}

type Config struct {
	Logger *slog.Logger
	Store  EmployeeStore

	Version    string
	ListenAddr string

	// Optional with defaults.
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	AllowedTokens     []string // Bearer tokens allowed for MCP endpoint authentication
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaultReadHeaderTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	return nil
}

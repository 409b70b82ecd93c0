package store

import (
	"context"
	"database/sql"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ConnectionProvider yields a ready-to-use database handle. Every operation
// acquires its own handle and releases it before returning; handles are never
// shared or reused across invocations.
type ConnectionProvider interface {
	Acquire(ctx context.Context) (*sql.DB, error)
}

// Provider opens one fresh pgx-backed handle per Acquire call. There is no
// pooling: the handle is capped to a single underlying connection and the
// caller closes it when the invocation completes.
type Provider struct {
	log *slog.Logger
	cfg Config
}

func NewProvider(log *slog.Logger, cfg Config) *Provider {
	return &Provider{
		log: log,
		cfg: cfg,
	}
}

// Acquire opens a handle and verifies it with a ping, so connection failures
// surface here rather than on the first statement. The caller must Close the
// returned handle on every path.
func (p *Provider) Acquire(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", p.cfg.DSN())
	if err != nil {
		return nil, connectionError(err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, connectionError(err)
	}

	p.log.Debug("store: acquired connection", "host", p.cfg.Host, "database", p.cfg.Name)
	return db, nil
}

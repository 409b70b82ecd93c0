package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/companydb/mcp-server/internal/store"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// fakeStore implements EmployeeStore for handler tests.
type fakeStore struct {
	PingFunc       func(ctx context.Context) error
	ListRecentFunc func(ctx context.Context, limit int) ([]store.Employee, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*store.Employee, error)
	AddFunc        func(ctx context.Context, name, position, department string, salary float64) (*store.Employee, error)
}

func (f *fakeStore) Ping(ctx context.Context) error {
	if f.PingFunc == nil {
		return nil
	}
	return f.PingFunc(ctx)
}

func (f *fakeStore) ListRecent(ctx context.Context, limit int) ([]store.Employee, error) {
	return f.ListRecentFunc(ctx, limit)
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*store.Employee, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeStore) Add(ctx context.Context, name, position, department string, salary float64) (*store.Employee, error) {
	return f.AddFunc(ctx, name, position, department, salary)
}

func TestMCP_Server_New(t *testing.T) {
	t.Parallel()

	t.Run("registers tools and builds handler", func(t *testing.T) {
		t.Parallel()

		s, err := New(Config{
			Logger:     testLogger(t),
			Store:      &fakeStore{},
			Version:    "test",
			ListenAddr: "127.0.0.1:0",
		})
		require.NoError(t, err)
		require.NotNil(t, s)
	})

	t.Run("rejects missing store", func(t *testing.T) {
		t.Parallel()

		_, err := New(Config{
			Logger:     testLogger(t),
			ListenAddr: "127.0.0.1:0",
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "store is required")
	})
}

func TestMCP_Server_ReadyzHandler(t *testing.T) {
	t.Parallel()

	t.Run("ready when database reachable", func(t *testing.T) {
		t.Parallel()

		s := &Server{
			log: testLogger(t),
			cfg: Config{
				Logger: testLogger(t),
				Store:  &fakeStore{},
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rr := httptest.NewRecorder()
		s.readyzHandler(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "ok\n", rr.Body.String())
	})

	t.Run("not ready when database unreachable", func(t *testing.T) {
		t.Parallel()

		s := &Server{
			log: testLogger(t),
			cfg: Config{
				Logger: testLogger(t),
				Store: &fakeStore{
					PingFunc: func(ctx context.Context) error {
						return errors.New("connection refused")
					},
				},
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rr := httptest.NewRecorder()
		s.readyzHandler(rr, req)

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		require.Equal(t, "database not reachable\n", rr.Body.String())
	})
}

func TestMCP_Server_AuthMiddleware(t *testing.T) {
	t.Parallel()

	newAuthServer := func(t *testing.T) *Server {
		return &Server{
			log: testLogger(t),
			cfg: Config{
				Logger:        testLogger(t),
				Store:         &fakeStore{},
				AllowedTokens: []string{"token-a", "token-b"},
			},
		}
	}

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantCode   int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "invalid format",
			authHeader: "token-a",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer  ",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "unknown token",
			authHeader: "Bearer nope",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer token-b",
			wantCode:   http.StatusOK,
		},
		{
			name:       "case-insensitive scheme",
			authHeader: "bearer token-a",
			wantCode:   http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newAuthServer(t)
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			s.authMiddleware(okHandler).ServeHTTP(rr, req)
			require.Equal(t, tt.wantCode, rr.Code)
		})
	}
}

func TestMCP_Server_ConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("missing logger", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		err := cfg.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "logger is required")
	})

	t.Run("missing listen address", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Logger: testLogger(t),
			Store:  &fakeStore{},
		}
		err := cfg.Validate()
		require.Error(t, err)
		require.Contains(t, err.Error(), "listen address is required")
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Logger:     testLogger(t),
			Store:      &fakeStore{},
			ListenAddr: "127.0.0.1:0",
		}
		require.NoError(t, cfg.Validate())
		require.NotZero(t, cfg.ReadHeaderTimeout)
		require.NotZero(t, cfg.ShutdownTimeout)
	})
}

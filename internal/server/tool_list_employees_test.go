package server

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/companydb/mcp-server/internal/store"
)

func TestMCP_Server_ToolListEmployees_Register(t *testing.T) {
	t.Parallel()

	err := RegisterListEmployeesTool(testLogger(t), mcp.NewServer(&mcp.Implementation{
		Name:    "Test Server",
		Version: "1.0.0",
	}, nil), &fakeStore{})
	require.NoError(t, err)
}

func TestMCP_Server_ToolListEmployees_Handle(t *testing.T) {
	t.Parallel()

	hired := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("applies default limit when absent", func(t *testing.T) {
		t.Parallel()

		var gotLimit int
		st := &fakeStore{
			ListRecentFunc: func(ctx context.Context, limit int) ([]store.Employee, error) {
				gotLimit = limit
				return []store.Employee{
					{ID: 1, Name: "Ada", Position: "Engineer", Department: "R&D", Salary: 100000, HireDate: hired},
				}, nil
			},
		}

		out := handleListEmployees(t.Context(), testLogger(t), st, ListEmployeesInput{})
		require.Empty(t, out.Error)
		require.Equal(t, 5, gotLimit)
		require.Equal(t, 1, out.Count)
		require.Len(t, out.Employees, 1)
		require.Equal(t, int64(1), out.Employees[0].ID)
		require.Equal(t, "2024-03-01T09:30:00Z", out.Employees[0].HireDate)
	})

	t.Run("explicit zero limit passes through", func(t *testing.T) {
		t.Parallel()

		var gotLimit int
		st := &fakeStore{
			ListRecentFunc: func(ctx context.Context, limit int) ([]store.Employee, error) {
				gotLimit = limit
				return nil, nil
			},
		}

		zero := 0
		out := handleListEmployees(t.Context(), testLogger(t), st, ListEmployeesInput{Limit: &zero})
		require.Empty(t, out.Error)
		require.Equal(t, 0, gotLimit)
		require.Equal(t, 0, out.Count)
		require.Empty(t, out.Employees)
	})

	t.Run("store failure becomes error envelope", func(t *testing.T) {
		t.Parallel()

		st := &fakeStore{
			ListRecentFunc: func(ctx context.Context, limit int) ([]store.Employee, error) {
				return nil, &store.Error{Kind: store.KindConnection, Message: "failed to connect to database"}
			},
		}

		out := handleListEmployees(t.Context(), testLogger(t), st, ListEmployeesInput{})
		require.Empty(t, out.Employees)
		require.Contains(t, out.Error, "could not list employees")
		require.Contains(t, out.Error, "failed to connect to database")
	})
}

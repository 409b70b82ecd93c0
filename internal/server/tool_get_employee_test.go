package server

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/companydb/mcp-server/internal/store"
)

func TestMCP_Server_ToolGetEmployee_Register(t *testing.T) {
	t.Parallel()

	err := RegisterGetEmployeeTool(testLogger(t), mcp.NewServer(&mcp.Implementation{
		Name:    "Test Server",
		Version: "1.0.0",
	}, nil), &fakeStore{})
	require.NoError(t, err)
}

func TestMCP_Server_ToolGetEmployee_Handle(t *testing.T) {
	t.Parallel()

	hired := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("returns employee when found", func(t *testing.T) {
		t.Parallel()

		st := &fakeStore{
			GetByIDFunc: func(ctx context.Context, id int64) (*store.Employee, error) {
				require.Equal(t, int64(7), id)
				return &store.Employee{ID: 7, Name: "Ada", Position: "Engineer", Department: "R&D", Salary: 100000, HireDate: hired}, nil
			},
		}

		out := handleGetEmployee(t.Context(), testLogger(t), st, GetEmployeeInput{EmployeeID: 7})
		require.Empty(t, out.Error)
		require.True(t, out.Found)
		require.NotNil(t, out.Employee)
		require.Equal(t, int64(7), out.Employee.ID)
		require.Equal(t, "Ada", out.Employee.Name)
	})

	t.Run("absence is success, not error", func(t *testing.T) {
		t.Parallel()

		st := &fakeStore{
			GetByIDFunc: func(ctx context.Context, id int64) (*store.Employee, error) {
				return nil, nil
			},
		}

		out := handleGetEmployee(t.Context(), testLogger(t), st, GetEmployeeInput{EmployeeID: 999})
		require.Empty(t, out.Error)
		require.False(t, out.Found)
		require.Nil(t, out.Employee)
	})

	t.Run("store failure becomes error envelope", func(t *testing.T) {
		t.Parallel()

		st := &fakeStore{
			GetByIDFunc: func(ctx context.Context, id int64) (*store.Employee, error) {
				return nil, &store.Error{Kind: store.KindExecution, Message: "failed to query employee"}
			},
		}

		out := handleGetEmployee(t.Context(), testLogger(t), st, GetEmployeeInput{EmployeeID: 7})
		require.Nil(t, out.Employee)
		require.Contains(t, out.Error, "could not retrieve employee")
		require.Contains(t, out.Error, "failed to query employee")
	})
}

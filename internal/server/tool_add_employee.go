package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/companydb/mcp-server/internal/metrics"
	"github.com/companydb/mcp-server/internal/store"
)

type AddEmployeeInput struct {
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

type AddEmployeeOutput struct {
	Message  string    `json:"message,omitempty"`
	Employee *Employee `json:"employee,omitempty"`
	Error    string    `json:"error,omitempty"`
}

func RegisterAddEmployeeTool(log *slog.Logger, server *mcp.Server, st EmployeeStore) error {
	req, err := jsonschema.For[AddEmployeeInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create add_employee input schema: %w", err)
	}

	res, err := jsonschema.For[AddEmployeeOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create add_employee output schema: %w", err)
	}

	toolName := "add_employee"
	mcp.AddTool(server, &mcp.Tool{
		Name: toolName,
		Description: `
			Add a new employee to the company database.

			ARGUMENTS:
			- name (string): the employee's name. Must not be blank.
			- position (string): the employee's position. Must not be blank.
			- department (string): the employee's department. Must not be blank.
			- salary (number): the employee's salary. Must be a positive number.

			The hire date is assigned by the database at insert time. Returns the newly
			added employee including its generated id, or an error field describing the
			first validation failure or what went wrong.
		`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in AddEmployeeInput) (*mcp.CallToolResult, AddEmployeeOutput, error) {
		startTime := time.Now()
		out := handleAddEmployee(ctx, log, st, in)
		duration := time.Since(startTime).Seconds()

		status := "success"
		if out.Error != "" {
			status = "error"
		}
		metrics.ToolCallsTotal.WithLabelValues(toolName, status).Inc()
		metrics.ToolCallDuration.WithLabelValues(toolName).Observe(duration)
		return nil, out, nil
	})
	return nil
}

func handleAddEmployee(ctx context.Context, log *slog.Logger, st EmployeeStore, in AddEmployeeInput) AddEmployeeOutput {
	log.Debug("mcp/tool: adding employee", "department", in.Department, "position", in.Position)

	employee, err := st.Add(ctx, in.Name, in.Position, in.Department, in.Salary)
	if err != nil {
		// Validation messages are surfaced verbatim so callers get the exact
		// precondition that failed.
		var storeErr *store.Error
		if errors.As(err, &storeErr) && storeErr.Kind == store.KindValidation {
			return AddEmployeeOutput{Error: storeErr.Message}
		}
		return AddEmployeeOutput{Error: fmt.Sprintf("could not add employee: %v", err)}
	}

	view := employeeView(*employee)
	return AddEmployeeOutput{
		Message:  "Employee added successfully.",
		Employee: &view,
	}
}

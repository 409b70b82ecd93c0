package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/companydb/mcp-server/internal/metrics"
)

type GetEmployeeInput struct {
	EmployeeID int64 `json:"employee_id"`
}

type GetEmployeeOutput struct {
	Employee *Employee `json:"employee,omitempty"`
	Found    bool      `json:"found"`
	Error    string    `json:"error,omitempty"`
}

func RegisterGetEmployeeTool(log *slog.Logger, server *mcp.Server, st EmployeeStore) error {
	req, err := jsonschema.For[GetEmployeeInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create get_employee_by_id input schema: %w", err)
	}

	res, err := jsonschema.For[GetEmployeeOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create get_employee_by_id output schema: %w", err)
	}

	toolName := "get_employee_by_id"
	mcp.AddTool(server, &mcp.Tool{
		Name: toolName,
		Description: `
			Fetch a single employee's details by their id.

			ARGUMENTS:
			- employee_id (integer): the id of the employee to retrieve.

			Returns the employee when found. A missing employee is not an error: the
			result has found=false and no employee field.
		`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in GetEmployeeInput) (*mcp.CallToolResult, GetEmployeeOutput, error) {
		startTime := time.Now()
		out := handleGetEmployee(ctx, log, st, in)
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

func handleGetEmployee(ctx context.Context, log *slog.Logger, st EmployeeStore, in GetEmployeeInput) GetEmployeeOutput {
	log.Debug("mcp/tool: getting employee", "employee_id", in.EmployeeID)

	employee, err := st.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return GetEmployeeOutput{Error: fmt.Sprintf("could not retrieve employee: %v", err)}
	}
	if employee == nil {
		return GetEmployeeOutput{Found: false}
	}

	view := employeeView(*employee)
	return GetEmployeeOutput{
		Employee: &view,
		Found:    true,
	}
}

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

// defaultListLimit applies when the caller omits the limit argument.
const defaultListLimit = 5

type ListEmployeesInput struct {
	Limit *int `json:"limit,omitempty"`
}

type ListEmployeesOutput struct {
	Employees []Employee `json:"employees,omitempty"`
	Count     int        `json:"count"`
	Error     string     `json:"error,omitempty"`
}

func RegisterListEmployeesTool(log *slog.Logger, server *mcp.Server, st EmployeeStore) error {
	req, err := jsonschema.For[ListEmployeesInput](nil)
	if err != nil {
		return fmt.Errorf("failed to create list_employees input schema: %w", err)
	}

	res, err := jsonschema.For[ListEmployeesOutput](nil)
	if err != nil {
		return fmt.Errorf("failed to create list_employees output schema: %w", err)
	}

	toolName := "list_employees"
	mcp.AddTool(server, &mcp.Tool{
		Name: toolName,
		Description: `
			Fetch a list of employees from the company database, most recently hired first.

			ARGUMENTS:
			- limit (integer, default 5): the maximum number of employees to return.

			Returns the employees with their id, name, position, department, salary and
			hire date, or an error field describing what went wrong.
		`,
		InputSchema:  req,
		OutputSchema: res,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in ListEmployeesInput) (*mcp.CallToolResult, ListEmployeesOutput, error) {
		startTime := time.Now()
		out := handleListEmployees(ctx, log, st, in)
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

func handleListEmployees(ctx context.Context, log *slog.Logger, st EmployeeStore, in ListEmployeesInput) ListEmployeesOutput {
	limit := defaultListLimit
	if in.Limit != nil {
		limit = *in.Limit
	}

	log.Debug("mcp/tool: listing employees", "limit", limit)

	employees, err := st.ListRecent(ctx, limit)
	if err != nil {
		return ListEmployeesOutput{Error: fmt.Sprintf("could not list employees: %v", err)}
	}

	views := make([]Employee, 0, len(employees))
	for _, employee := range employees {
		views = append(views, employeeView(employee))
	}
	return ListEmployeesOutput{
		Employees: views,
		Count:     len(views),
	}
}

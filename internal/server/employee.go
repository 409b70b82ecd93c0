package server

import (
	"time"

	"github.com/companydb/mcp-server/internal/store"
)

// Employee is the wire shape of an employee record in tool results. The hire
// date is rendered as an RFC 3339 UTC string so the output schema stays a
// plain string rather than an opaque object.
type Employee struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
	HireDate   string  `json:"hire_date"`
}

func employeeView(e store.Employee) Employee {
	return Employee{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		Department: e.Department,
		Salary:     e.Salary,
		HireDate:   e.HireDate.UTC().Format(time.RFC3339Nano),
	}
}

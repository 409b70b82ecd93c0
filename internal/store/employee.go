package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Employee is one row of the employees table.
type Employee struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"`
	HireDate   time.Time `json:"hire_date"`
}

// Record is a column-name-keyed row, so nothing downstream depends on column
// ordering.
type Record map[string]any

// scanRecords drains rows into Records and closes them. Byte slices are
// converted to strings; everything else keeps the driver's representation.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var records []Record
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(Record)
		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				record[col] = string(v)
			default:
				record[col] = values[i]
			}
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

func employeeFromRecord(record Record) (Employee, error) {
	id, err := recordInt(record, "id")
	if err != nil {
		return Employee{}, err
	}
	name, err := recordString(record, "name")
	if err != nil {
		return Employee{}, err
	}
	position, err := recordString(record, "position")
	if err != nil {
		return Employee{}, err
	}
	department, err := recordString(record, "department")
	if err != nil {
		return Employee{}, err
	}
	salary, err := recordFloat(record, "salary")
	if err != nil {
		return Employee{}, err
	}
	hireDate, err := recordTime(record, "hire_date")
	if err != nil {
		return Employee{}, err
	}

	return Employee{
		ID:         id,
		Name:       name,
		Position:   position,
		Department: department,
		Salary:     salary,
		HireDate:   hireDate,
	}, nil
}

func recordInt(record Record, column string) (int64, error) {
	switch v := record[column].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("column %q: expected integer, got %T", column, record[column])
	}
}

func recordString(record Record, column string) (string, error) {
	v, ok := record[column].(string)
	if !ok {
		return "", fmt.Errorf("column %q: expected string, got %T", column, record[column])
	}
	return v, nil
}

// recordFloat tolerates the driver returning NUMERIC columns as text.
func recordFloat(record Record, column string) (float64, error) {
	switch v := record[column].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", column, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("column %q: expected number, got %T", column, record[column])
	}
}

func recordTime(record Record, column string) (time.Time, error) {
	switch v := record[column].(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("column %q: %w", column, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("column %q: expected timestamp, got %T", column, record[column])
	}
}

package store

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

const employeeColumns = "id, name, position, department, salary, hire_date"

// Store runs the employee operations. Each operation is stateless: it
// acquires its own connection, executes exactly one parameterized statement,
// and releases the connection before returning, on every path.
type Store struct {
	log      *slog.Logger
	provider ConnectionProvider
	timeout  time.Duration
}

func New(log *slog.Logger, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		log:      log,
		provider: NewProvider(log, cfg),
		timeout:  cfg.QueryTimeout,
	}, nil
}

// Ping verifies the database is reachable with the configured credentials.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	db, err := s.provider.Acquire(ctx)
	if err != nil {
		return err
	}
	return db.Close()
}

// ListRecent returns at most limit employees, most recently hired first. The
// limit is passed through to the database as a bound parameter, unvalidated:
// LIMIT 0 yields an empty result and the database rejects negative values,
// which surfaces as an execution error.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	db, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		ORDER BY hire_date DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, executionError("failed to query employees", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, executionError("failed to read employees", err)
	}

	employees := make([]Employee, 0, len(records))
	for _, record := range records {
		employee, err := employeeFromRecord(record)
		if err != nil {
			return nil, executionError("failed to decode employee row", err)
		}
		employees = append(employees, employee)
	}
	return employees, nil
}

// GetByID returns the employee with the given id, or (nil, nil) when no row
// matches. The id is not validated; a non-positive id simply matches nothing.
func (s *Store) GetByID(ctx context.Context, id int64) (*Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	db, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT `+employeeColumns+`
		FROM employees
		WHERE id = $1`, id)
	if err != nil {
		return nil, executionError("failed to query employee", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, executionError("failed to read employee", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	employee, err := employeeFromRecord(records[0])
	if err != nil {
		return nil, executionError("failed to decode employee row", err)
	}
	return &employee, nil
}

// Add validates the fields, then inserts one employee in a single committed
// transaction. The hire date is assigned by the database clock inside the
// insert, and the generated row is returned in the same statement round-trip.
// Validation failures are reported before any connection is opened.
func (s *Store) Add(ctx context.Context, name, position, department string, salary float64) (*Employee, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validationError("name cannot be empty.")
	}
	if strings.TrimSpace(position) == "" {
		return nil, validationError("position cannot be empty.")
	}
	if strings.TrimSpace(department) == "" {
		return nil, validationError("department cannot be empty.")
	}
	if salary <= 0 {
		return nil, validationError("salary must be a positive number.")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	db, err := s.provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, executionError("failed to begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx, `
		INSERT INTO employees (name, position, department, salary, hire_date)
		VALUES ($1, $2, $3, $4, now())
		RETURNING `+employeeColumns, name, position, department, salary)
	if err != nil {
		return nil, executionError("failed to insert employee", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, executionError("failed to read inserted employee", err)
	}
	if len(records) != 1 {
		return nil, executionError("insert did not return a row", nil)
	}

	employee, err := employeeFromRecord(records[0])
	if err != nil {
		return nil, executionError("failed to decode employee row", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, executionError("failed to commit insert", err)
	}

	s.log.Debug("store: employee added", "id", employee.ID, "department", employee.Department)
	return &employee, nil
}

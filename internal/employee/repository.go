package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

// Repository persists employees in sqlite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a Repository over an opened database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ErrNotFound is returned when a lookup matches no employee.
var ErrNotFound = errors.New("employee not found")

const employeeColumns = `id, emp_code, name, joining_date, current_status,
	status_change_date, upcoming_status, basic_pay_monthly, transport_monthly,
	accommodation_monthly, other_monthly, paid_leave_daily, vacation_pay_daily,
	total_salary_monthly`

// NextCode generates the next employee code (EMP01, EMP02, ...) from the
// highest existing row id.
func (r *Repository) NextCode(ctx context.Context) (string, error) {
	var lastID sql.NullInt64
	err := r.db.QueryRowContext(ctx, "SELECT MAX(id) FROM employees").Scan(&lastID)
	if err != nil {
		return "", fmt.Errorf("query last employee id: %w", err)
	}
	next := int64(1)
	if lastID.Valid {
		next = lastID.Int64 + 1
	}
	return EmpCodeFor(next), nil
}

// Insert stores a new employee and sets its row id.
func (r *Repository) Insert(ctx context.Context, e *Employee) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (emp_code, name, joining_date, current_status,
			status_change_date, upcoming_status, basic_pay_monthly, transport_monthly,
			accommodation_monthly, other_monthly, paid_leave_daily, vacation_pay_daily,
			total_salary_monthly)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EmpCode, e.Name, e.JoiningDate.Format(dateFormat), string(e.CurrentStatus),
		nullDate(e.StatusChangeDate), nullStatus(e.UpcomingStatus),
		e.BasicPayMonthly, e.TransportMonthly, e.AccommodationMonthly, e.OtherMonthly,
		e.PaidLeaveDaily, e.VacationPayDaily, e.TotalSalaryMonthly,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("employee insert id: %w", err)
	}
	e.ID = id
	return nil
}

// Update rewrites the mutable fields of an existing employee.
func (r *Repository) Update(ctx context.Context, e *Employee) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE employees SET current_status = ?, status_change_date = ?, upcoming_status = ?
		WHERE id = ?`,
		string(e.CurrentStatus), nullDate(e.StatusChangeDate), nullStatus(e.UpcomingStatus), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update employee %s: %w", e.EmpCode, err)
	}
	return nil
}

// GetByCode finds an employee by its generated code.
func (r *Repository) GetByCode(ctx context.Context, code string) (*Employee, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE emp_code = ?", code)
	e, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query employee %s: %w", code, err)
	}
	return e, nil
}

// List returns all employees in insertion order.
func (r *Repository) List(ctx context.Context) ([]*Employee, error) {
	return r.query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY id")
}

// ListByStatus returns all employees with the given current status.
func (r *Repository) ListByStatus(ctx context.Context, status Status) ([]*Employee, error) {
	return r.query(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE current_status = ? ORDER BY id",
		string(status))
}

// DueStatusChanges returns employees whose scheduled change is due today.
func (r *Repository) DueStatusChanges(ctx context.Context, today time.Time) ([]*Employee, error) {
	return r.query(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE status_change_date = ? AND upcoming_status IS NOT NULL ORDER BY id",
		today.Format(dateFormat))
}

// InactiveJoinedBy returns Inactive employees whose joining date has arrived.
func (r *Repository) InactiveJoinedBy(ctx context.Context, today time.Time) ([]*Employee, error) {
	return r.query(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE current_status = ? AND joining_date <= ? ORDER BY id",
		string(StatusInactive), today.Format(dateFormat))
}

// DeleteAll wipes the roster. Used by the admin reset.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM employees"); err != nil {
		return fmt.Errorf("delete employees: %w", err)
	}
	// Reset the autoincrement counter so codes start over at EMP01.
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = 'employees'"); err != nil {
		return fmt.Errorf("reset employee sequence: %w", err)
	}
	return nil
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]*Employee, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	var employees []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return employees, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*Employee, error) {
	var e Employee
	var joining string
	var changeDate, upcoming sql.NullString
	var status string

	err := row.Scan(&e.ID, &e.EmpCode, &e.Name, &joining, &status,
		&changeDate, &upcoming, &e.BasicPayMonthly, &e.TransportMonthly,
		&e.AccommodationMonthly, &e.OtherMonthly, &e.PaidLeaveDaily,
		&e.VacationPayDaily, &e.TotalSalaryMonthly)
	if err != nil {
		return nil, err
	}

	e.CurrentStatus = Status(status)
	e.JoiningDate, err = time.Parse(dateFormat, joining)
	if err != nil {
		return nil, fmt.Errorf("parse joining date %q: %w", joining, err)
	}
	if changeDate.Valid {
		d, err := time.Parse(dateFormat, changeDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse status change date %q: %w", changeDate.String, err)
		}
		e.StatusChangeDate = &d
	}
	if upcoming.Valid {
		s := Status(upcoming.String)
		e.UpcomingStatus = &s
	}
	return &e, nil
}

func nullDate(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(dateFormat)
}

func nullStatus(s *Status) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

// Repository persists attendance rows in sqlite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a Repository over an opened database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the marked status for an employee on a date, or ok=false
// when the day is unmarked.
func (r *Repository) Get(ctx context.Context, employeeID int64, date time.Time) (Status, bool, error) {
	var status string
	err := r.db.QueryRowContext(ctx,
		"SELECT status FROM attendance WHERE employee_id = ? AND attendance_date = ?",
		employeeID, date.Format(dateFormat),
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query attendance: %w", err)
	}
	return Status(status), true, nil
}

// Upsert writes the status for an employee on a date, one row per pair.
func (r *Repository) Upsert(ctx context.Context, item Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance (employee_id, attendance_date, status) VALUES (?, ?, ?)
		ON CONFLICT(employee_id, attendance_date) DO UPDATE SET status = excluded.status`,
		item.EmployeeID, item.AttendanceDate.Format(dateFormat), string(item.Status),
	)
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// MarkedDates returns the set of dates in [from, to] that have at least
// one attendance row.
func (r *Repository) MarkedDates(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT attendance_date FROM attendance WHERE attendance_date >= ? AND attendance_date <= ?",
		from.Format(dateFormat), to.Format(dateFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("query marked dates: %w", err)
	}
	defer rows.Close()

	marked := make(map[string]bool)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		marked[d] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return marked, nil
}

// DeleteAll wipes all attendance rows. Used by the admin reset.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM attendance"); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

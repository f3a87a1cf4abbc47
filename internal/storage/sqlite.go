// Package storage opens the shared sqlite database and applies the schema.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (creating if necessary) the sqlite database at dbPath and
// applies the schema. Use ":memory:" for an in-memory database in tests.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// modernc.org/sqlite serializes access per connection; a single
	// connection avoids SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		emp_code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		joining_date TEXT NOT NULL,
		current_status TEXT NOT NULL,
		status_change_date TEXT,
		upcoming_status TEXT,
		basic_pay_monthly REAL NOT NULL,
		transport_monthly REAL NOT NULL,
		accommodation_monthly REAL NOT NULL,
		other_monthly REAL NOT NULL,
		paid_leave_daily REAL NOT NULL,
		vacation_pay_daily REAL NOT NULL,
		total_salary_monthly REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_employees_status ON employees(current_status);

	CREATE TABLE IF NOT EXISTS attendance (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id INTEGER NOT NULL REFERENCES employees(id),
		attendance_date TEXT NOT NULL,
		status TEXT NOT NULL,
		UNIQUE(employee_id, attendance_date)
	);
	CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(attendance_date);

	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		stream_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		payload BLOB NOT NULL,
		metadata TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_events_stream ON events(stream_id);
	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
	`
	_, err := db.Exec(schema)
	return err
}

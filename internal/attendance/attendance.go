// Package attendance tracks one attendance row per employee per date and
// answers the day's marking sheet for active employees.
package attendance

import "time"

// Status enumerates attendance markings.
type Status string

const (
	StatusPresent     Status = "Present"
	StatusPaidLeave   Status = "PaidLeave"
	StatusUnpaidLeave Status = "UnpaidLeave"
)

// ValidStatus reports whether s is a known marking.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPresent, StatusPaidLeave, StatusUnpaidLeave:
		return true
	}
	return false
}

// Row is one line of the day's marking sheet, joined with employee identity.
type Row struct {
	EmployeeID     int64     `json:"employee_id"`
	EmpCode        string    `json:"emp_code"`
	Name           string    `json:"name"`
	AttendanceDate time.Time `json:"attendance_date"`
	Status         Status    `json:"status"`
}

// Item is one attendance record to be saved or updated.
type Item struct {
	EmployeeID     int64     `json:"employee_id"`
	AttendanceDate time.Time `json:"attendance_date"`
	Status         Status    `json:"status"`
}

// DaySummary reports whether any attendance exists for a date.
type DaySummary struct {
	Date   time.Time `json:"date"`
	Marked bool      `json:"marked"`
}

// MonthSummary aggregates day summaries for one calendar month.
type MonthSummary struct {
	Month string       `json:"month"` // YYYY-MM
	Days  []DaySummary `json:"days"`
}

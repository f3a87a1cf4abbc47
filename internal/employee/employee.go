// Package employee implements the employee roster: creation with generated
// codes, salary totals, and scheduled status transitions driven by the
// locked today date.
package employee

import (
	"fmt"
	"time"
)

// Status enumerates employee lifecycle states.
type Status string

const (
	StatusActive     Status = "Active"
	StatusInactive   Status = "Inactive"
	StatusOffboarded Status = "Offboarded"
	StatusVacation   Status = "Vacation"
)

// ValidStatus reports whether s is a known status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusOffboarded, StatusVacation:
		return true
	}
	return false
}

// Employee is one roster entry.
type Employee struct {
	ID          int64     `json:"id"`
	EmpCode     string    `json:"emp_code"`
	Name        string    `json:"name"`
	JoiningDate time.Time `json:"joining_date"`

	CurrentStatus    Status     `json:"current_status"`
	StatusChangeDate *time.Time `json:"status_change_date,omitempty"` // when UpcomingStatus takes effect
	UpcomingStatus   *Status    `json:"upcoming_status,omitempty"`

	// Monthly salary components
	BasicPayMonthly      float64 `json:"basic_pay_monthly"`
	TransportMonthly     float64 `json:"transport_monthly"`
	AccommodationMonthly float64 `json:"accommodation_monthly"`
	OtherMonthly         float64 `json:"other_monthly"`

	// Daily rates
	PaidLeaveDaily   float64 `json:"paid_leave_daily"`
	VacationPayDaily float64 `json:"vacation_pay_daily"`

	TotalSalaryMonthly float64 `json:"total_salary_monthly"`
}

// CreateInput carries the fields a caller provides when creating an employee.
type CreateInput struct {
	Name        string    `json:"name"`
	JoiningDate time.Time `json:"joining_date"`

	BasicPayMonthly      float64 `json:"basic_pay_monthly"`
	TransportMonthly     float64 `json:"transport_monthly"`
	AccommodationMonthly float64 `json:"accommodation_monthly"`
	OtherMonthly         float64 `json:"other_monthly"`

	PaidLeaveDaily   float64 `json:"paid_leave_daily"`
	VacationPayDaily float64 `json:"vacation_pay_daily"`
}

// EmpCodeFor formats the generated employee code for a row id.
func EmpCodeFor(id int64) string {
	return fmt.Sprintf("EMP%02d", id)
}

// Package responses defines the JSON response types used by the HTTP handlers.
package responses

import "time"

// ServiceStatusResponse is the root endpoint response.
type ServiceStatusResponse struct {
	Message string `json:"message"`
}

// SystemTodayResponse carries the locked today date, null when unset.
type SystemTodayResponse struct {
	Today *string `json:"today"`
}

// EmployeeResponse is the wire shape of one employee.
type EmployeeResponse struct {
	ID          int64  `json:"id"`
	EmpCode     string `json:"emp_code"`
	Name        string `json:"name"`
	JoiningDate string `json:"joining_date"`

	CurrentStatus    string  `json:"current_status"`
	StatusChangeDate *string `json:"status_change_date"`
	UpcomingStatus   *string `json:"upcoming_status"`

	BasicPayMonthly      float64 `json:"basic_pay_monthly"`
	TransportMonthly     float64 `json:"transport_monthly"`
	AccommodationMonthly float64 `json:"accommodation_monthly"`
	OtherMonthly         float64 `json:"other_monthly"`
	PaidLeaveDaily       float64 `json:"paid_leave_daily"`
	VacationPayDaily     float64 `json:"vacation_pay_daily"`
	TotalSalaryMonthly   float64 `json:"total_salary_monthly"`
}

// AttendanceRowResponse is one line of the day's marking sheet.
type AttendanceRowResponse struct {
	EmployeeID     int64  `json:"employee_id"`
	EmpCode        string `json:"emp_code"`
	Name           string `json:"name"`
	AttendanceDate string `json:"attendance_date"`
	Status         string `json:"status"`
}

// AttendanceSaveResponse reports the number of upserted rows.
type AttendanceSaveResponse struct {
	Updated int `json:"updated"`
}

// DaySummaryResponse reports whether a date has any attendance.
type DaySummaryResponse struct {
	Date   string `json:"date"`
	Marked bool   `json:"marked"`
}

// MonthSummaryResponse aggregates day summaries for one month.
type MonthSummaryResponse struct {
	Month string               `json:"month"`
	Days  []DaySummaryResponse `json:"days"`
}

// ResetResponse acknowledges an admin reset.
type ResetResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

package eventstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event type names recorded by the service.
const (
	TypeTodayChanged          = "TodayChanged"
	TypeEmployeeCreated       = "EmployeeCreated"
	TypeEmployeeStatusChanged = "EmployeeStatusChanged"
	TypeAttendanceSaved       = "AttendanceSaved"
)

// TodayChangedPayload is the payload for TodayChanged events.
type TodayChangedPayload struct {
	Previous string `json:"previous,omitempty"`
	Current  string `json:"current"`
}

// AppendTodayChanged records a change of the locked today date.
func AppendTodayChanged(ctx context.Context, store Store, previous, current string) error {
	payload, err := json.Marshal(TodayChangedPayload{Previous: previous, Current: current})
	if err != nil {
		return fmt.Errorf("marshal TodayChanged payload: %w", err)
	}
	return store.Append(ctx, StreamSystem, TypeTodayChanged, payload, nil)
}

// EmployeeCreatedPayload is the payload for EmployeeCreated events.
type EmployeeCreatedPayload struct {
	EmpCode       string `json:"emp_code"`
	Name          string `json:"name"`
	JoiningDate   string `json:"joining_date"`
	InitialStatus string `json:"initial_status"`
}

// AppendEmployeeCreated records the creation of an employee.
func AppendEmployeeCreated(ctx context.Context, store Store, p EmployeeCreatedPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal EmployeeCreated payload: %w", err)
	}
	return store.Append(ctx, p.EmpCode, TypeEmployeeCreated, payload, nil)
}

// EmployeeStatusChangedPayload is the payload for EmployeeStatusChanged events.
type EmployeeStatusChangedPayload struct {
	EmpCode string `json:"emp_code"`
	From    string `json:"from"`
	To      string `json:"to"`
	Date    string `json:"date"`
}

// AppendEmployeeStatusChanged records a status transition.
func AppendEmployeeStatusChanged(ctx context.Context, store Store, p EmployeeStatusChangedPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal EmployeeStatusChanged payload: %w", err)
	}
	return store.Append(ctx, p.EmpCode, TypeEmployeeStatusChanged, payload, nil)
}

// AttendanceSavedPayload is the payload for AttendanceSaved events. A bulk
// save may mix dates, so rows are counted per attendance date.
type AttendanceSavedPayload struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// AppendAttendanceSaved records a bulk attendance save.
func AppendAttendanceSaved(ctx context.Context, store Store, p AttendanceSavedPayload) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal AttendanceSaved payload: %w", err)
	}
	return store.Append(ctx, StreamSystem, TypeAttendanceSaved, payload, nil)
}

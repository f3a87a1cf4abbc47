package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestHRErrorMessage(t *testing.T) {
	err := New(CategoryValidation, SeverityWarning, "bad input")
	if !strings.Contains(err.Error(), "validation") {
		t.Errorf("expected category in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "bad input") {
		t.Errorf("expected message text, got %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, CategoryStorage, SeverityError, "write failed")

	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestWithContext(t *testing.T) {
	err := NotFoundError("employee not found").WithContext("emp_code", "EMP01")
	if err.Context["emp_code"] != "EMP01" {
		t.Errorf("expected context emp_code=EMP01, got %v", err.Context)
	}
}

func TestCategoryHelpers(t *testing.T) {
	err := ConflictError("row already exists")
	if !IsCategory(err, CategoryConflict) {
		t.Error("expected conflict category")
	}
	if IsCategory(err, CategoryStorage) {
		t.Error("did not expect storage category")
	}
	if GetCategory(errors.New("plain")) != CategoryInternal {
		t.Error("plain errors should map to internal")
	}
}

func TestRetryable(t *testing.T) {
	err := WrapRetryable(errors.New("timeout"), CategoryMessaging, SeverityWarning, "publish failed")
	if !IsRetryable(err) {
		t.Error("expected retryable")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", ValidationError("bad"), http.StatusBadRequest},
		{"not found", NotFoundError("missing"), http.StatusNotFound},
		{"conflict", ConflictError("duplicate"), http.StatusConflict},
		{"method not allowed", MethodNotAllowedError("bad method"), http.StatusMethodNotAllowed},
		{"storage", StorageError("db"), http.StatusInternalServerError},
		{"daemon", DaemonError("down"), http.StatusServiceUnavailable},
		{"plain", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := adapter.StatusCodeFor(tc.err); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestCLIExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	if code := adapter.ExitCodeFor(nil); code != 0 {
		t.Errorf("expected 0 for nil, got %d", code)
	}
	if code := adapter.ExitCodeFor(ValidationError("bad")); code != 2 {
		t.Errorf("expected 2 for validation, got %d", code)
	}
	if code := adapter.ExitCodeFor(New(CategoryConfig, SeverityError, "cfg")); code != 7 {
		t.Errorf("expected 7 for config, got %d", code)
	}
	if code := adapter.ExitCodeFor(errors.New("plain")); code != 1 {
		t.Errorf("expected 1 for plain, got %d", code)
	}
}

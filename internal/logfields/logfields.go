package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyEmpCode    = "emp_code"
	KeyEmployeeID = "employee_id"
	KeyStatus     = "status"
	KeyDate       = "date"
	KeyToday      = "today"
	KeyJobID      = "job_id"
	KeySubject    = "subject"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyHTTPStatus = "http_status"
	KeyRemoteAddr = "remote_addr"
	KeyUserAgent  = "user_agent"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func EmpCode(c string) slog.Attr     { return slog.String(KeyEmpCode, c) }
func EmployeeID(id int64) slog.Attr  { return slog.Int64(KeyEmployeeID, id) }
func Status(s string) slog.Attr      { return slog.String(KeyStatus, s) }
func Date(d string) slog.Attr        { return slog.String(KeyDate, d) }
func Today(d string) slog.Attr       { return slog.String(KeyToday, d) }
func JobID(id string) slog.Attr      { return slog.String(KeyJobID, id) }
func Subject(s string) slog.Attr     { return slog.String(KeySubject, s) }
func Method(m string) slog.Attr      { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func HTTPStatus(code int) slog.Attr  { return slog.Int(KeyHTTPStatus, code) }
func RemoteAddr(a string) slog.Attr  { return slog.String(KeyRemoteAddr, a) }
func UserAgent(ua string) slog.Attr  { return slog.String(KeyUserAgent, ua) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

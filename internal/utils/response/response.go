// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client (the
// CSV export is the one exception). Rather than repeating the same three
// lines (set header, set status, encode JSON) in every handler, we
// centralise them here.
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aanand-mishra/student-records/internal/records"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Error responses always look like:
//
//	{ "status": "error", "error": "A student with this email already exists." }
//
// Validation failures also carry the broken rule and fields, so a form can
// highlight them:
//
//	{ "status": "error", "error": "...", "rule": "age_range", "fields": ["age"] }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string       `json:"status"`
	Error  string       `json:"error"`
	Rule   records.Rule `json:"rule,omitempty"`
	Fields []string     `json:"fields,omitempty"`
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for unexpected errors (storage failures, decode errors, etc.)
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// Message wraps a user-facing message into the error Response shape.
func Message(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError converts a rejected submission into a Response that
// carries the message the user sees plus the rule and fields for the form.
//
// Example output:
//
//	{ "status": "error", "error": "Please fill in all fields.", "rule": "required", "fields": ["name", "phone"] }
func ValidationError(verr *records.ValidationError) Response {
	return Response{
		Status: StatusError,
		Error:  verr.Message(),
		Rule:   verr.Rule,
		Fields: verr.Fields,
	}
}

// Attachment writes body as a file download.
func Attachment(w http.ResponseWriter, filename, contentType string, body []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+strings.ReplaceAll(filename, `"`, "")+`"`)
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(body)
	return err
}

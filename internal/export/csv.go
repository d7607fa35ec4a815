// Package export renders the roster as a downloadable CSV document.
package export

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aanand-mishra/student-records/internal/types"
)

// ErrNothingToExport is returned when the roster is empty.
var ErrNothingToExport = errors.New("no data to export")

// DefaultDateLayout renders Date Added as an en-US short date (10/19/2026).
const DefaultDateLayout = "1/2/2006"

// Header is the first row of every export.
var Header = []string{"Name", "Age", "Email", "Course", "Phone", "Date Added"}

// Options controls date rendering.
type Options struct {
	// DateLayout is a time layout for the Date Added column.
	// Empty means DefaultDateLayout.
	DateLayout string

	// Location is the zone Date Added is shown in. Nil means time.Local.
	Location *time.Location
}

// Document is a finished export, ready to be sent as a file download.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// CSV renders records in the order given. Text fields are always quoted,
// the age is not. now names the file.
func CSV(records []types.Student, now time.Time, opts Options) (Document, error) {
	if len(records) == 0 {
		return Document{}, ErrNothingToExport
	}

	layout := opts.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(Header, ","))
	for _, r := range records {
		lines = append(lines, strings.Join([]string{
			quote(r.Name),
			strconv.Itoa(r.Age),
			quote(r.Email),
			quote(r.Course),
			quote(r.Phone),
			quote(r.DateAdded.In(loc).Format(layout)),
		}, ","))
	}

	return Document{
		Filename:    Filename(now),
		ContentType: "text/csv",
		Content:     []byte(strings.Join(lines, "\n")),
	}, nil
}

// Filename is student_records_<YYYY-MM-DD>.csv for the UTC date of now.
func Filename(now time.Time) string {
	return "student_records_" + now.UTC().Format(time.DateOnly) + ".csv"
}

// quote wraps s in double quotes, doubling any quote inside it.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

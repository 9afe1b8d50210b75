// internal/app/system/csvutil/export.go
package csvutil

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TimeLayout is the timestamp format written to exported cells.
const TimeLayout = "2006-01-02 15:04:05"

// Attach sets the download headers for a CSV file named name plus the
// current date, and returns a writer on w.
func Attach(w http.ResponseWriter, name string, now time.Time) *csv.Writer {
	filename := fmt.Sprintf("%s_%s.csv", name, now.UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Cache-Control", "no-store")
	return csv.NewWriter(w)
}

// Cell neutralizes values a spreadsheet would evaluate as a formula.
func Cell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

// Join writes a list into a single cell.
func Join(xs []string) string {
	return Cell(strings.Join(xs, "; "))
}

// Time formats t, or "" for nil.
func Time(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

package csvutil

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestCell(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"Jane Doe":      "Jane Doe",
		"=SUM(A1:A9)":   "'=SUM(A1:A9)",
		"+15550100":     "'+15550100",
		"-1":            "'-1",
		"@cmd":          "'@cmd",
		"jane@site.com": "jane@site.com",
	}
	for in, want := range tests {
		if got := Cell(in); got != want {
			t.Errorf("Cell(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAttach_SetsHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := Attach(rec, "users", time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC))
	_ = cw.Write([]string{"a", "b"})
	cw.Flush()

	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="users_20260309.csv"` {
		t.Errorf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != "a,b\n" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestTime(t *testing.T) {
	if Time(nil) != "" {
		t.Error("nil time should be empty")
	}
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := Time(&ts); got != "2026-01-02 03:04:05" {
		t.Errorf("Time = %q", got)
	}
}

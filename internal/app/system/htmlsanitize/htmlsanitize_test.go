package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/mediateam/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize("   "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	got := htmlsanitize.Sanitize("Sound check at 8")
	if got != "Sound check at 8" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Agenda</p><script>alert('xss')</script>")
	if got != "<p>Agenda</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="javascript:alert('xss')">Click</a>`)
	if strings.Contains(got, "javascript:") {
		t.Errorf("expected javascript: URL removed, got %q", got)
	}
}

func TestPlainText(t *testing.T) {
	got := htmlsanitize.PlainText("<p>Hello <b>team</b></p>")
	if got != "Hello team" {
		t.Errorf("PlainText: got %q, want %q", got, "Hello team")
	}
}

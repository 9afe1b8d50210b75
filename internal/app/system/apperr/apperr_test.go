package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrConflict, "role already assigned")
	if err.Error() != "role already assigned" {
		t.Errorf("message: got %q", err.Error())
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("expected errors.Is(err, ErrConflict)")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("unexpected match on ErrNotFound")
	}

	wrapped := fmt.Errorf("assign: %w", err)
	if !errors.Is(wrapped, err) || !errors.Is(wrapped, ErrConflict) {
		t.Error("wrapping should preserve both matches")
	}
}

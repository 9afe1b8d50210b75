package timeouts

import (
	"context"
	"testing"
	"time"
)

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	defer Reset()

	Configure(Config{Short: 7 * time.Second})

	got := Current()
	if got.Short != 7*time.Second {
		t.Errorf("Short: got %v, want %v", got.Short, 7*time.Second)
	}
	if got.Medium != DefaultMedium {
		t.Errorf("Medium: got %v, want %v", got.Medium, DefaultMedium)
	}
	if got.Ping != DefaultPing {
		t.Errorf("Ping: got %v, want %v", got.Ping, DefaultPing)
	}
}

func TestReset(t *testing.T) {
	Configure(Config{Ping: time.Second, Short: time.Second, Medium: time.Second, Long: time.Second})
	Reset()

	if Long() != DefaultLong {
		t.Errorf("Long after Reset: got %v, want %v", Long(), DefaultLong)
	}
}

func TestWithTimeout_CancelsContext(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Minute, nil, "test")
	cancel()
	if ctx.Err() != context.Canceled {
		t.Errorf("ctx.Err(): got %v, want %v", ctx.Err(), context.Canceled)
	}
}

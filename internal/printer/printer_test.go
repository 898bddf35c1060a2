package printer

import (
	"strings"
	"testing"
)

func TestNoColorPassthrough(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		name string
		fn   func(string) string
	}{
		{"faint", Faint},
		{"bold", Bold},
		{"success", Success},
		{"error", Error},
		{"warning", Warning},
		{"info", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn("1.3.dev54"); got != "1.3.dev54" {
				t.Errorf("expected plain text with colors disabled, got %q", got)
			}
		})
	}
}

func TestStyledOutputContainsText(t *testing.T) {
	SetNoColor(false)

	for name, fn := range map[string]func(string) string{
		"success": Success,
		"error":   Error,
	} {
		if got := fn("probe"); !strings.Contains(got, "probe") {
			t.Errorf("%s: expected styled output to contain text, got %q", name, got)
		}
	}
}

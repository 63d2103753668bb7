package output

import (
	"bytes"
	"os"
	"testing"
)

func TestNewColorScheme(t *testing.T) {
	tests := []struct {
		name             string
		noColor          bool
		expectedDisabled bool
	}{
		{
			name:             "colors disabled with noColor flag",
			noColor:          true,
			expectedDisabled: true,
		},
		{
			name:             "colors disabled for non-TTY",
			noColor:          false,
			expectedDisabled: true, // bytes.Buffer is not a TTY
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewColorScheme(&bytes.Buffer{}, tt.noColor)

			if cs == nil {
				t.Fatal("NewColorScheme returned nil")
			}

			if cs.Disabled != tt.expectedDisabled {
				t.Errorf("Disabled = %v, want %v", cs.Disabled, tt.expectedDisabled)
			}

			for name, fn := range map[string]func(string, ...interface{}) string{
				"Backend":  cs.Backend,
				"Success":  cs.Success,
				"Error":    cs.Error,
				"Warning":  cs.Warning,
				"Header":   cs.Header,
				"Duration": cs.Duration,
			} {
				if fn == nil {
					t.Fatalf("%s function is nil", name)
				}
				if got := fn("%s-%d", "x", 1); got != "x-1" {
					t.Errorf("%s() = %q, want plain text", name, got)
				}
			}
		})
	}
}

func TestIsTTY(t *testing.T) {
	if isTTY(&bytes.Buffer{}) {
		t.Error("bytes.Buffer should not be a TTY")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if isTTY(f) {
		t.Error("regular file should not be a TTY")
	}
}

func TestStatusColor(t *testing.T) {
	cs := NewColorScheme(&bytes.Buffer{}, true)

	if got := cs.StatusColor(true)("%s", "Failed"); got != "Failed" {
		t.Errorf("StatusColor(true) = %q", got)
	}
	if got := cs.StatusColor(false)("%s", "Success"); got != "Success" {
		t.Errorf("StatusColor(false) = %q", got)
	}
}

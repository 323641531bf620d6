package shared

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestIsUUID(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want bool
	}{
		{name: "canonical", in: "6f1c2b8e-3a4d-4f5e-9a6b-7c8d9e0f1a2b", want: true},
		{name: "generated", in: GenerateID(), want: true},
		{name: "numeric", in: "12345", want: false},
		{name: "braced", in: "{6f1c2b8e-3a4d-4f5e-9a6b-7c8d9e0f1a2b}", want: false},
		{name: "urn", in: "urn:uuid:6f1c2b8e-3a4d-4f5e-9a6b-7c8d9e0f1a2b", want: false},
		{name: "empty", in: "", want: false},
		{name: "path traversal", in: "../../../../etc/passwd-aaaaaaaaaaaaa", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUUID(tt.in); got != tt.want {
				t.Errorf("IsUUID(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]int{"a": 1}

	compact, err := MarshalJSON(v, false)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(compact) != `{"a":1}` {
		t.Errorf("compact = %s", compact)
	}

	pretty, err := MarshalJSON(v, true)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(pretty) != "{\n  \"a\": 1\n}" {
		t.Errorf("pretty = %q", pretty)
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tui.log")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Info("hello")
}

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCommand
	t.Cleanup(func() { getRuntime, startCommand = origRuntime, origStart })

	var started *exec.Cmd
	startCommand = func(cmd *exec.Cmd) error { started = cmd; return nil }

	t.Run("rejects non-http schemes", func(t *testing.T) {
		for _, u := range []string{"file:///etc/passwd", "javascript:alert(1)", "not a url", "/relative"} {
			if err := OpenBrowser(u); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("OpenBrowser(%q) error = %v, want ErrInvalidArgument", u, err)
			}
		}
	})

	t.Run("linux uses xdg-open", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenBrowser("https://www.youtube.com/watch?v=abc123"); err != nil {
			t.Fatalf("OpenBrowser() error = %v", err)
		}
		if started == nil || started.Args[0] != "xdg-open" {
			t.Errorf("expected xdg-open command, got %+v", started)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}

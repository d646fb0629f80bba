package cli

import (
	"bytes"
	"strings"
	"testing"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestStatusLines(t *testing.T) {
	tests := []struct {
		name  string
		print func()
		want  []string
	}{
		{"success", func() { printSuccess("Wrote %d frames", 12) }, []string{"✓", "Wrote 12 frames"}},
		{"error", func() { printError("Redis unavailable") }, []string{"✗", "Redis unavailable"}},
		{"warning", func() { printWarning("using cached deck") }, []string{"!", "using cached deck"}},
		{"info", func() { printInfo("Serving") }, []string{"›", "Serving"}},
		{"file", func() { printFile("ring.svg") }, []string{"→", "ring.svg"}},
		{"key value", func() { printKeyValue("Cache", "memory") }, []string{"Cache", "memory"}},
		{"next step", func() { printNextStep("Open a session", "curl") }, []string{"Open a session:", "curl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStdout(t)
			tt.print()
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
			if !strings.HasSuffix(out, "\n") {
				t.Error("output not newline terminated")
			}
		})
	}
}

func TestPrintStats(t *testing.T) {
	buf := captureStdout(t)
	printStats(12, 450, true)
	printStats(12, 180, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"12 cards", "radius 450", "cached"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("cached line %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "fresh") {
		t.Errorf("fresh line %q missing origin", lines[1])
	}
}

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = prev })
	return &buf
}

func TestPrintHelpers(t *testing.T) {
	tests := []struct {
		name  string
		print func()
		want  string
	}{
		{"success", func() { printSuccess("Rendered %d frames", 3) }, "Rendered 3 frames"},
		{"error", func() { printError("bad %s", "input") }, "bad input"},
		{"warning", func() { printWarning("cache off") }, "cache off"},
		{"info", func() { printInfo("peak %.1f", 0.2) }, "peak 0.2"},
		{"detail", func() { printDetail("dir %s", "/tmp") }, "dir /tmp"},
		{"file", func() { printFile("out.svg") }, "out.svg"},
		{"key value", func() { printKeyValue("Seed", "42") }, "42"},
		{"next step", func() { printNextStep("Try", "stargaze explore") }, "stargaze explore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureUI(t)
			tt.print()
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrintSceneStats(t *testing.T) {
	buf := captureUI(t)
	printSceneStats(150, 150, 0.2, true)
	out := buf.String()
	for _, want := range []string{"150 anchors", "150 edges", "reveal 0.200"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats %q missing %q", out, want)
		}
	}
}

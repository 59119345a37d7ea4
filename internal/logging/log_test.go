package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestWarnWritesToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Stderr: &buf})
	t.Cleanup(func() { Init(Options{}) })

	Warn("pid file removal failed", "path", "/tmp/x.pid")

	out := buf.String()
	if !strings.Contains(out, "pid file removal failed") {
		t.Fatalf("warn output missing message: %q", out)
	}
	if !strings.Contains(out, "/tmp/x.pid") {
		t.Fatalf("warn output missing attr: %q", out)
	}
}

func TestDebugSuppressedUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Stderr: &buf})
	t.Cleanup(func() { Init(Options{}) })

	Debug("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("debug output emitted without verbose: %q", buf.String())
	}

	Init(Options{Stderr: &buf, Verbose: true})
	Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("debug output missing under verbose: %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Stderr: &buf, JSONFormat: true})
	t.Cleanup(func() { Init(Options{}) })

	Warn("structured")
	if !strings.Contains(buf.String(), `"msg":"structured"`) {
		t.Fatalf("expected JSON record, got %q", buf.String())
	}
}

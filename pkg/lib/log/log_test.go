package log

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	defer ResetLevels()
	defer SetOutput(os.Stderr)

	buf := &bytes.Buffer{}
	SetOutput(buf)

	l := Logger("test")
	l.Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected log message in buffer, got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("expected key=value in buffer, got: %s", output)
	}
	if !strings.Contains(output, "component=test") {
		t.Errorf("expected component=test in buffer, got: %s", output)
	}
}

func TestLazyLogger_ExistingLoggerFollowsOutput(t *testing.T) {
	defer ResetLevels()
	defer SetOutput(os.Stderr)

	// 在切换输出之前创建
	l := Logger("test2")

	buf := &bytes.Buffer{}
	SetOutput(buf)
	l.Info("after switch")

	if !strings.Contains(buf.String(), "after switch") {
		t.Errorf("expected log message in buffer, got: %s", buf.String())
	}
}

func TestComponentLevel(t *testing.T) {
	defer ResetLevels()
	defer SetOutput(os.Stderr)

	buf := &bytes.Buffer{}
	SetOutput(buf)

	SetComponentLevel("core/converter", slog.LevelDebug)
	Logger("core/converter").Debug("visible")
	Logger("core/eventbus").Debug("hidden")

	output := buf.String()
	if !strings.Contains(output, "visible") {
		t.Errorf("component debug message missing: %s", output)
	}
	if strings.Contains(output, "hidden") {
		t.Errorf("default level should filter debug: %s", output)
	}
}

func TestParseLevelSpec(t *testing.T) {
	def, components := ParseLevelSpec("core/converter=debug, core/eventbus=warn,error,bogus=loud")

	if def != slog.LevelError {
		t.Errorf("default level = %v, want error", def)
	}
	if components["core/converter"] != slog.LevelDebug {
		t.Errorf("converter level = %v, want debug", components["core/converter"])
	}
	if components["core/eventbus"] != slog.LevelWarn {
		t.Errorf("eventbus level = %v, want warn", components["core/eventbus"])
	}
	if _, ok := components["bogus"]; ok {
		t.Error("invalid level entry should be skipped")
	}
}

func TestParseLevel(t *testing.T) {
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if lvl, err := ParseLevel("WARNING"); err != nil || lvl != slog.LevelWarn {
		t.Errorf("ParseLevel(WARNING) = %v, %v", lvl, err)
	}
}

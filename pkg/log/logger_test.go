package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
)

func TestLoggerLevels(t *testing.T) {
	logger, buffer := NewTestLogger(LevelDebug)

	logger.Debug("debug message", "key1", "value1", "number", 42)
	logger.Info("info message", OperationKey, OperationFit)
	logger.Warn("warning message", DroppedKey, 3)
	logger.Error("error message", errors.New("boom"), LevelKey, 2)

	if buffer.Len() == 0 {
		t.Fatal("Expected log output, got empty string")
	}
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !logger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}
	if !logger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !logger.ContainsField("number", 42.0) {
		t.Error("Expected field number=42 not found")
	}
	if !logger.ContainsField(ErrAttrKey, "boom") {
		t.Error("error field should carry the error message")
	}
}

func TestLoggerErrorDetail(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)

	logger.Error("bad threshold", errors.NewValidationError("min_support", "must be in (0, 1]", 0.0))

	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	detail, ok := entries[0]["error_detail"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error_detail object, got %v", entries[0]["error_detail"])
	}
	if detail["param_name"] != "min_support" {
		t.Errorf("param_name = %v", detail["param_name"])
	}
}

func TestErrAttr(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)

	logger.Warn("export skipped", ErrAttr(errors.New("disk full")), PathKey, "/tmp/out")
	logger.Error("mine failed", ErrAttr(errors.NewValueError("Apriori.Fit", "boom")))

	if !logger.ContainsField(ErrAttrKey, "disk full") {
		t.Error("Attr field should be written under its key")
	}
	if !logger.ContainsField(PathKey, "/tmp/out") {
		t.Error("pairs after an Attr should still be written")
	}
	entries, err := logger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if _, ok := entries[1]["error"]; !ok {
		t.Error("Error with ErrAttr should attach the error field")
	}
}

func TestLoggerWith(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)

	scoped := logger.With(ComponentKey, "mining.apriori", MinSupportKey, 0.5)
	scoped.Info("level complete", LevelKey, 1)

	if !logger.ContainsField(ComponentKey, "mining.apriori") {
		t.Error("component context not found")
	}
	if !logger.ContainsField(MinSupportKey, 0.5) {
		t.Error("min_support context not found")
	}
	if !logger.ContainsField(LevelKey, 1.0) {
		t.Error("level field not found")
	}
}

func TestLoggerEnabled(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !logger.Enabled(ctx, LevelInfo) || !logger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Info and Error")
	}
	if logger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	logger.Debug("hidden")
	logger.Info("shown")
	if logger.ContainsMessage("hidden") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !logger.ContainsMessage("shown") {
		t.Error("Info message should appear when level is Info")
	}

	logger.Clear()
	if logger.ContainsMessage("shown") {
		t.Error("Clear should drop captured output")
	}
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ToLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ToLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupLoggerRoutesWarnings(t *testing.T) {
	var buf bytes.Buffer
	if err := SetupLogger("info", "json", &buf); err != nil {
		t.Fatal(err)
	}
	defer errors.SetZerologWarnFunc(nil)

	GetLoggerWithName("dataset.loader").Info("loaded", TransactionsKey, 4)
	errors.Warn(errors.NewDroppedRowWarning(3, "1000", "empty item label"))

	out := buf.String()
	if !strings.Contains(out, `"component":"dataset.loader"`) {
		t.Errorf("component missing from %s", out)
	}
	if !strings.Contains(out, `"type":"DroppedRowWarning"`) {
		t.Errorf("warning detail missing from %s", out)
	}

	if err := SetupLogger("info", "xml", &buf); err == nil {
		t.Error("unknown format should be rejected")
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" || Level(99).String() != "UNKNOWN" {
		t.Error("unexpected level names")
	}
}

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger(level, format)

	fn()

	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info log",
			level:    "info",
			logFn:    func() { Info("fetching artifact") },
			contains: []string{"fetching artifact", "level=INFO"},
		},
		{
			name:     "debug log with debug level",
			level:    "debug",
			logFn:    func() { Debug("no install script") },
			contains: []string{"no install script", "level=DEBUG"},
		},
		{
			name:     "debug log with info level",
			level:    "info",
			logFn:    func() { Debug("no install script") },
			excludes: []string{"no install script"},
		},
		{
			name:     "warn hidden at error level",
			level:    "error",
			logFn:    func() { Warn("hash missing") },
			excludes: []string{"hash missing"},
		},
		{
			name:     "error log",
			level:    "error",
			logFn:    func() { Error("extraction failed") },
			contains: []string{"extraction failed", "level=ERROR"},
		},
		{
			name:  "warn log with fields",
			level: "warn",
			logFn: func() {
				Warn("no hash supplied, skipping verification", Fields{"package": "foo", "attempt": 1})
			},
			contains: []string{"no hash supplied", "level=WARN", "package=foo", "attempt=1"},
		},
		{
			name:     "success log",
			level:    "info",
			logFn:    func() { Success("installed", Fields{"package": "foo"}) },
			contains: []string{"installed", "package=foo", "status=success"},
		},
		{
			name:     "formatted info log",
			level:    "info",
			logFn:    func() { Infof("installing %s %s", "foo", "1.0.0") },
			contains: []string{"installing foo 1.0.0"},
		},
		{
			name:  "formatted debug with fields",
			level: "debug",
			logFn: func() {
				DebugfWithFields(Fields{"path": "/tmp/foo.zip"}, "copying %d bytes", 42)
			},
			contains: []string{"copying 42 bytes", "path=/tmp/foo.zip"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	out := captureOutput(t, "info", FormatJSON, func() {
		Info("committed", Fields{
			"package": "foo",
			"files":   42,
			"script":  true,
		})
	})

	assert.Contains(t, out, `"msg":"committed"`)
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"package":"foo"`)
	assert.Contains(t, out, `"files":42`)
	assert.Contains(t, out, `"script":true`)
}

func TestErrorFieldRendersMessage(t *testing.T) {
	out := captureOutput(t, "info", FormatText, func() {
		Warn("cleanup failed", Fields{"error": errors.New("permission denied")})
	})
	assert.Contains(t, out, `error="permission denied"`)
}

func TestSetOutputFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger("debug", FormatText)
	Info("first")
	assert.Contains(t, buf.String(), "level=INFO")

	buf.Reset()
	SetOutputFormat(FormatJSON)
	Debug("second")
	assert.Contains(t, buf.String(), `"msg":"second"`)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestSetLevel(t *testing.T) {
	out := captureOutput(t, "info", FormatText, func() {
		Debug("before")
		SetLevel("debug")
		Debug("after")
	})
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "after")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	logger = nil
	assert.NotPanics(t, func() {
		lg := GetLogger()
		assert.NotNil(t, lg)
	})
}

func TestMergeFields(t *testing.T) {
	tests := []struct {
		name   string
		fields []Fields
		expect map[string]interface{}
	}{
		{
			name:   "single field",
			fields: []Fields{{"key1": "value1"}},
			expect: map[string]interface{}{"key1": "value1"},
		},
		{
			name:   "multiple fields",
			fields: []Fields{{"key1": "value1"}, {"key2": 123, "key3": true}},
			expect: map[string]interface{}{"key1": "value1", "key2": 123, "key3": true},
		},
		{
			name:   "overwrite fields",
			fields: []Fields{{"key1": "value1"}, {"key1": "new value", "key2": 123}},
			expect: map[string]interface{}{"key1": "new value", "key2": 123},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := mergeFields(tt.fields...)
			assert.Len(t, attrs, len(tt.expect)*2)
			result := make(map[string]interface{})
			for i := 0; i < len(attrs); i += 2 {
				result[attrs[i].(string)] = attrs[i+1]
			}
			assert.Equal(t, tt.expect, result)
		})
	}
}

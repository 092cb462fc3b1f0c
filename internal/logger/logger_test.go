package logger

import (
	"bytes"
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
			name:  "info log",
			level: "info",
			logFn: func() {
				Info("loaded definitions")
			},
			contains: []string{"loaded definitions"},
		},
		{
			name:  "debug suppressed at info level",
			level: "info",
			logFn: func() {
				Debug("skipping snapshot")
			},
			excludes: []string{"skipping snapshot"},
		},
		{
			name:  "warn log with fields",
			level: "warn",
			logFn: func() {
				Warn("fetch failed", Fields{"repo": "cs8-appstream-aarch64", "status": 404})
			},
			contains: []string{"fetch failed", "level=WARN", "repo=cs8-appstream-aarch64", "status=404"},
		},
		{
			name:  "success log",
			level: "info",
			logFn: func() {
				Success("summary written")
			},
			contains: []string{"summary written", "status=success"},
		},
		{
			name:  "formatted debug with fields",
			level: "debug",
			logFn: func() {
				DebugfWithFields(Fields{"timestamp": "20210414"}, "fetching %s", "repomd.xml")
			},
			contains: []string{"fetching repomd.xml", "timestamp=20210414"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, output, notWant)
			}
		})
	}
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	logger = nil
	assert.NotPanics(t, func() {
		lg := GetLogger()
		assert.NotNil(t, lg)
	})
}

func TestSetOutputFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger("debug", FormatText)
	Info("test message 1")
	assert.Contains(t, buf.String(), "INFO")

	buf.Reset()
	SetOutputFormat(FormatJSON)
	Debug("test message 2")
	assert.Contains(t, buf.String(), `"msg":"test message 2"`)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`, "level survives a format switch")
}

func TestJSONFormat(t *testing.T) {
	output := captureOutput(t, "info", FormatJSON, func() {
		Info("fetched snapshot", Fields{
			"repo":    "el9-baseos-x86_64",
			"bytes":   42,
			"skipped": false,
		})
	})

	assert.Contains(t, output, `"msg":"fetched snapshot"`)
	assert.Contains(t, output, `"repo":"el9-baseos-x86_64"`)
	assert.Contains(t, output, `"bytes":42`)
	assert.Contains(t, output, `"skipped":false`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "WARN", ParseLevel("warning").String())
	assert.Equal(t, "ERROR", ParseLevel("ERROR").String())
	assert.Equal(t, "INFO", ParseLevel("bogus").String())
}

func TestMergeFields(t *testing.T) {
	attrs := mergeFields(Fields{"key1": "value1"}, Fields{"key1": "new value", "key2": 123})
	result := make(map[string]interface{})
	for i := 0; i < len(attrs); i += 2 {
		result[attrs[i].(string)] = attrs[i+1]
	}
	assert.Equal(t, map[string]interface{}{"key1": "new value", "key2": 123}, result)
}

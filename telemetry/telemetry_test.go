package telemetry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want LogFormat
	}{
		{"json", LogFormatJSON},
		{"JSON", LogFormatJSON},
		{"pretty", LogFormatPretty},
		{"xml", LogFormatUndefined},
		{"", LogFormatUndefined},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLogFormat(tt.in), tt.in)
	}
	assert.Equal(t, "json", LogFormatJSON.String())
	assert.Equal(t, "undefined", LogFormat(9).String())
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"valid", Options{ServiceName: "demo", LogLevel: "debug", LogFormat: LogFormatJSON}, false},
		{"missing service", Options{LogLevel: "debug", LogFormat: LogFormatJSON}, true},
		{"bad level", Options{ServiceName: "demo", LogLevel: "chatty", LogFormat: LogFormatJSON}, true},
		{"missing format", Options{ServiceName: "demo", LogLevel: "info"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	tel, err := New(Options{ServiceName: "demo", LogLevel: "warn", LogFormat: LogFormatJSON, Writer: &buf})
	require.NoError(t, err)

	logger := tel.GetLogger("panel")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`)
	assert.Contains(t, out, `"component":"demo.panel"`)
}

func TestNewRejectsBadEnv(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := New(Options{ServiceName: "demo"})
	require.Error(t, err)
}

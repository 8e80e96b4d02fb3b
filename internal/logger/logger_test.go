package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"input": "tokens.json", "stage": "walk"})
	log.Info("walking token document")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "walking token document", entry["message"])
	require.Equal(t, "tokens.json", entry["input"])
	require.Equal(t, "walk", entry["stage"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithField("path", "color.bad")
	log.Error(errors.New("boom"), "conversion failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "conversion failed", entry["message"])
	require.Equal(t, "color.bad", entry["path"])
	require.Equal(t, "boom", entry["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNilAndNopLoggersAreSilent(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	require.NotPanics(t, func() {
		nilLogger.Info("ignored")
		nilLogger.Error(errors.New("ignored"), "ignored")
		require.Nil(t, nilLogger.WithField("k", "v"))
	})

	require.NotPanics(t, func() {
		Nop().WithField("k", "v").Warn("ignored")
	})
}

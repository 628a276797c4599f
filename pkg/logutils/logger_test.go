package logutils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
	closer()
}

func TestNew_FileAppends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "linemark.log")

	for _, msg := range []string{"first", "second"} {
		l, closer, err := New("info", file, nil)
		require.NoError(t, err)
		l.Info().Msg(msg)
		l.Debug().Msg("hidden")
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "second", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New("debug", "", &buf)
	require.NoError(t, err)
	defer closer()

	l.Debug().Str("doc", "a.txt").Msg("activated")

	assert.Contains(t, buf.String(), "DBG")
	assert.Contains(t, buf.String(), "activated")
	assert.Contains(t, buf.String(), "doc=a.txt")
}

func TestNewWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(zerolog.WarnLevel, &buf)

	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

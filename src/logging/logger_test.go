package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "json")
	t.Cleanup(func() { SetLogLevel("info") })

	SetLogLevel("warn")
	assert.Equal(t, LevelWarn, GetLogLevel())
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 2")

	SetLogLevel("bogus")
	assert.Equal(t, LevelWarn, GetLogLevel(), "unknown level names are ignored")
}

func TestPercentWithoutArgsIsLiteral(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "json")
	SetLogLevel("debug")
	t.Cleanup(func() { SetLogLevel("info") })

	infof := Infof // called through a value so a literal % needs no args
	infof("change +10.0%")
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "change +10.0%", rec["message"])
	assert.Equal(t, "info", rec["level"])

	buf.Reset()
	TimeTrack(time.Now(), "render")
	assert.Contains(t, buf.String(), `"message":"render"`)
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel(" Warning ")
	assert.True(t, ok)
	assert.Equal(t, LevelWarn, l)
	_, ok = ParseLevel("trace")
	assert.False(t, ok)
}

func TestAutoFormatFallsBackToJSONOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "auto")
	defer SetOutput(os.Stderr, "auto")
	SetLogLevel("info")
	Infof("hello %d", 3)
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "hello 3", rec["message"])
}

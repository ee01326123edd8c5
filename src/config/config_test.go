package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

// chdir mirrors testing.T.Chdir (Go 1.24+): it switches the working
// directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.ShowSubject)
	assert.True(t, cfg.ShowTrendline)
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	p := writeFile(t, dir, "c.yaml", "width: 1200\nheight: 500\nformats: [png, svg]\nshow_trendline: false\nlog_format: json\n")
	t.Setenv("LISTINGCHARTS_WIDTH", "1000")
	t.Setenv("LISTINGCHARTS_SHOW_SUBJECT", "false")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Width, "env beats yaml")
	assert.Equal(t, 500, cfg.Height)
	assert.Equal(t, 420, cfg.LandHeight, "untouched fields keep defaults")
	assert.Equal(t, []string{"png", "svg"}, cfg.Formats)
	assert.False(t, cfg.ShowTrendline)
	assert.False(t, cfg.ShowSubject)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, ".env", "LISTINGCHARTS_FORMATS=svg, PNG\n")
	t.Setenv("LISTINGCHARTS_FORMATS", "")
	require.NoError(t, os.Unsetenv("LISTINGCHARTS_FORMATS"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"svg", "png"}, cfg.Formats)
}

func TestLoadMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, ".env", "LISTING-CHARTS=1\n")

	_, err := Load("")
	assert.ErrorContains(t, err, ".env")
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadBadEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LISTINGCHARTS_HEIGHT", "tall")
	_, err := Load("")
	assert.ErrorContains(t, err, "LISTINGCHARTS_HEIGHT")
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Width = 0
	c.Formats = []string{"gif"}
	c.Theme = "neon"
	err := c.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "chart sizes must be positive")
	assert.ErrorContains(t, err, `unknown output format "gif"`)
	assert.ErrorContains(t, err, `unknown theme "neon"`)
	assert.NoError(t, Default().Validate())
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymap/internal/mapview"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	c, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, mapview.DefaultStyle, c.Style)
	assert.Equal(t, 16*time.Millisecond, c.FrameInterval)
	assert.Equal(t, 1024, c.PNGWidth)
	assert.False(t, c.FallbackOnDegenerate)
	assert.Equal(t, 4.0, c.TUIPadding)
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := "padding: 20\nhover_fill: \"#ff8800\"\nmax_scale: 500\nframe_interval: 40ms\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "polymap.yaml"), []byte(yaml), 0o644))
	t.Setenv("POLYMAP_STROKE_WIDTH", "3")
	t.Setenv("POLYMAP_PADDING", "25")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse([]string{"--png-width", "640", "--fallback"}))

	c, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, 25.0, c.Style.Padding, "env beats file")
	assert.Equal(t, "#ff8800", c.Style.HoverFill)
	assert.Equal(t, 500.0, c.Style.MaxScale)
	assert.Equal(t, 3.0, c.Style.StrokeWidth)
	assert.Equal(t, 40*time.Millisecond, c.FrameInterval)
	assert.Equal(t, 640, c.PNGWidth)
	assert.Equal(t, 768, c.PNGHeight)
	assert.True(t, c.FallbackOnDegenerate)
	assert.Equal(t, mapview.DefaultStyle.DefaultFill, c.Style.DefaultFill)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))
	_, err := Load(fs)
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

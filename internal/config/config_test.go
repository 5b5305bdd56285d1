package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecgview/internal/drawing"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestOpenTOML(t *testing.T) {
	p := write(t, "ecg.toml", `
[display]
signal_scale = 20
hover_throttle_ms = 40

[styles.signal]
stroke = "#FF0000"
opacity = 0.5
`)
	c, err := Open(p)
	require.NoError(t, err)
	assert.Equal(t, 20.0, c.Display.SignalScale)
	assert.Equal(t, 40*time.Millisecond, c.Display.HoverThrottle())
	assert.Equal(t, "#FF0000", c.Styles.Signal.Stroke)
	assert.Equal(t, 0.5, c.Styles.Signal.Opacity)
	// untouched fields keep defaults
	def := Default()
	assert.Equal(t, def.Display.Margin, c.Display.Margin)
	assert.Equal(t, def.Styles.Grid, c.Styles.Grid)
}

func TestOpenYAML(t *testing.T) {
	p := write(t, "ecg.yml", "display:\n  scroll_step: 7\nstyles:\n  cursor:\n    stroke: \"#00FF00\"\n")
	c, err := Open(p)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Display.ScrollStep)
	assert.Equal(t, "#00FF00", c.Styles.Cursor.Stroke)
	assert.Equal(t, Default().Display.ZoomStep, c.Display.ZoomStep)
}

func TestOpenEmpty(t *testing.T) {
	c, err := Open(write(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(write(t, "ecg.ini", "x=1"))
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Open(write(t, "bad.toml", "[display\n"))
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	var v struct {
		Name string `toml:"name" yaml:"name"`
	}
	require.NoError(t, Read(&v, strings.NewReader(`name = "x"`), TOML))
	assert.Equal(t, "x", v.Name)
	require.NoError(t, Read(&v, strings.NewReader("name: y\n"), YAML))
	assert.Equal(t, "y", v.Name)
}

func TestApplyAndOptions(t *testing.T) {
	c := Default()
	c.Styles.Signal.Stroke = "#123456"
	c.Styles.BeatBandOdd = "#654321"
	c.Display.SignalScale = 30

	clients := drawing.DefaultClients()
	c.Apply(clients)
	for _, cl := range clients {
		switch r := cl.(type) {
		case *drawing.SignalClient:
			assert.Equal(t, "#123456", r.Style.Stroke)
		case *drawing.BeatsClient:
			assert.Equal(t, "#654321", r.BandOdd)
		}
	}

	p := drawing.NewProxy(c.ProxyOptions()...)
	assert.Equal(t, 30.0, p.State().SignalScale)
}

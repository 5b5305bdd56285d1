// Package config loads viewer settings from TOML or YAML files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"ecgview/internal/drawing"
)

// Decoder is implemented by the toml and yaml decoders.
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc creates a Decoder reading from r.
type DecoderFunc func(r io.Reader) Decoder

// NewDecoderFunc adapts a concrete decoder constructor.
func NewDecoderFunc[T Decoder](f func(r io.Reader) T) DecoderFunc {
	return func(r io.Reader) Decoder { return f(r) }
}

var (
	TOML = NewDecoderFunc(toml.NewDecoder)
	YAML = NewDecoderFunc(yaml.NewDecoder)
)

// ErrFormat is returned for files whose extension names no known format.
var ErrFormat = errors.New("config: unknown file format")

// Display holds the viewport settings.
type Display struct {
	Margin          float64 `toml:"margin" yaml:"margin"`
	SignalScale     float64 `toml:"signal_scale" yaml:"signal_scale"`
	PxPerSample     float64 `toml:"px_per_sample" yaml:"px_per_sample"`
	HoverThrottleMs int     `toml:"hover_throttle_ms" yaml:"hover_throttle_ms"`
	ZoomStep        float64 `toml:"zoom_step" yaml:"zoom_step"`
	MinZoom         float64 `toml:"min_zoom" yaml:"min_zoom"`
	MaxZoom         float64 `toml:"max_zoom" yaml:"max_zoom"`
	ScrollStep      int     `toml:"scroll_step" yaml:"scroll_step"`
}

// Styles has one entry per renderer.
type Styles struct {
	Grid        drawing.Style `toml:"grid" yaml:"grid"`
	Axis        drawing.Style `toml:"axis" yaml:"axis"`
	Signal      drawing.Style `toml:"signal" yaml:"signal"`
	BeatMarker  drawing.Style `toml:"beat_marker" yaml:"beat_marker"`
	BeatBand    drawing.Style `toml:"beat_band" yaml:"beat_band"`
	BeatBandOdd string        `toml:"beat_band_odd" yaml:"beat_band_odd"`
	Annotation  drawing.Style `toml:"annotation" yaml:"annotation"`
	WaveTick    drawing.Style `toml:"wave_tick" yaml:"wave_tick"`
	WavePeak    drawing.Style `toml:"wave_peak" yaml:"wave_peak"`
	Clickable   drawing.Style `toml:"clickable" yaml:"clickable"`
	Cursor      drawing.Style `toml:"cursor" yaml:"cursor"`
	Cell        drawing.Style `toml:"cell" yaml:"cell"`
	CellHidden  drawing.Style `toml:"cell_hidden" yaml:"cell_hidden"`
}

type Config struct {
	Display Display `toml:"display" yaml:"display"`
	Styles  Styles  `toml:"styles" yaml:"styles"`
}

// Default returns the built in settings. The styles are the renderers' own;
// the margin is in braille dots.
func Default() Config {
	grid, beats := drawing.NewGridClient(), drawing.NewBeatsClient()
	wave, cell := drawing.NewWavePointClient(), drawing.NewCellClient()
	return Config{
		Display: Display{
			Margin:          4,
			SignalScale:     drawing.DefaultSignalScale,
			PxPerSample:     drawing.DefaultPxPerSample,
			HoverThrottleMs: 16,
			ZoomStep:        1.25,
			MinZoom:         1,
			MaxZoom:         200,
			ScrollStep:      50,
		},
		Styles: Styles{
			Grid:        grid.Style,
			Axis:        grid.Axis,
			Signal:      drawing.NewSignalClient().Style,
			BeatMarker:  beats.Marker,
			BeatBand:    beats.Band,
			BeatBandOdd: beats.BandOdd,
			Annotation:  drawing.NewAnnotationClient().Style,
			WaveTick:    wave.Tick,
			WavePeak:    wave.Peaks,
			Clickable:   drawing.NewClickablePointClient().Style,
			Cursor:      drawing.NewCursorClient().Style,
			Cell:        cell.Style,
			CellHidden:  cell.Hidden,
		},
	}
}

// DecoderFor picks the decoder by file extension.
func DecoderFor(filename string) (DecoderFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}

// Open reads filename on top of the defaults, so fields the file leaves
// out keep their default value.
func Open(filename string) (Config, error) {
	c := Default()
	f, err := DecoderFor(filename)
	if err != nil {
		return c, err
	}
	fp, err := os.Open(filename)
	if err != nil {
		return c, err
	}
	defer fp.Close()
	if err := Read(&c, bufio.NewReader(fp), f); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", filepath.Base(filename), err)
	}
	return c, nil
}

// Read decodes r into v. An empty document is not an error.
func Read(v any, r io.Reader, f DecoderFunc) error {
	err := f(r).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// HoverThrottle is the hover throttle as a duration.
func (d Display) HoverThrottle() time.Duration {
	return time.Duration(max(d.HoverThrottleMs, 0)) * time.Millisecond
}

// ProxyOptions turns the display settings into proxy options.
func (c Config) ProxyOptions() []drawing.Option {
	s := drawing.NewState()
	if c.Display.SignalScale > 0 {
		s.SignalScale = c.Display.SignalScale
	}
	if c.Display.PxPerSample > 0 {
		s.PxPerSample = c.Display.PxPerSample
	}
	return []drawing.Option{
		drawing.WithState(s),
		drawing.WithMargin(c.Display.Margin),
		drawing.WithHoverThrottle(c.Display.HoverThrottle()),
		drawing.WithZoom(c.Display.ZoomStep, c.Display.MinZoom, c.Display.MaxZoom),
	}
}

// Apply copies the styles onto the matching renderers.
func (c Config) Apply(clients []drawing.Client) {
	st := c.Styles
	for _, cl := range clients {
		switch r := cl.(type) {
		case *drawing.GridClient:
			r.Style, r.Axis = st.Grid, st.Axis
		case *drawing.SignalClient:
			r.Style = st.Signal
		case *drawing.BeatsClient:
			r.Marker, r.Band, r.BandOdd = st.BeatMarker, st.BeatBand, st.BeatBandOdd
		case *drawing.AnnotationClient:
			r.Style = st.Annotation
		case *drawing.WavePointClient:
			r.Tick, r.Peaks = st.WaveTick, st.WavePeak
		case *drawing.ClickablePointClient:
			r.Style = st.Clickable
		case *drawing.CursorClient:
			r.Style = st.Cursor
		case *drawing.CellClient:
			r.Style, r.Hidden = st.Cell, st.CellHidden
		}
	}
}

package drawing

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"ecgview/internal/geom"
)

// Line join names accepted in Style.Join.
const (
	JoinMiter = "miter"
	JoinRound = "round"
	JoinBevel = "bevel"
)

// Style is the drawing configuration of a renderer. It is plain data; the
// surface decides how much of it it can honour.
type Style struct {
	Stroke  string  `toml:"stroke" yaml:"stroke"`
	Fill    string  `toml:"fill" yaml:"fill"`
	Opacity float64 `toml:"opacity" yaml:"opacity"`
	Width   float64 `toml:"width" yaml:"width"`
	Join    string  `toml:"join" yaml:"join"`
	Radius  float64 `toml:"radius" yaml:"radius"`
	Labels  bool    `toml:"labels" yaml:"labels"`
}

// WithFill returns a copy with another fill colour and opacity.
func (s Style) WithFill(fill string, opacity float64) Style {
	s.Fill = fill
	s.Opacity = opacity
	return s
}

// Surface receives the primitives of a render pass. Coordinates are
// device pixels. Implementations are the host's raster layer.
type Surface interface {
	// Clip limits subsequent output to r until the next Clip call.
	Clip(r rect.Rect)
	Stroke(p *path.Data, st Style)
	Fill(r geom.Rect, st Style)
	Marker(at geom.Point, st Style)
	Text(at geom.Point, s string, st Style)
}

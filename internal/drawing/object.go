package drawing

import (
	"fmt"

	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

// Kind tags the drawing object variants.
type Kind int

const (
	KindSignal Kind = iota
	KindGrid
	KindBeatsRange
	KindCursor
	KindWavePoint
	KindPeak
	KindAnnotation
	KindClickablePoint
	KindCell
)

var kindNames = [...]string{"signal", "grid", "beats", "cursor", "wavepoint", "peak", "annotation", "clickable", "cell"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Object is a positioned drawing primitive produced by a Client. The set
// of implementations is closed: every variant embeds Base.
//
// Geometry never changes after Produce; scrolling only changes which
// partition an object belongs to.
type Object interface {
	Kind() Kind
	// Bounds is the object's container. Only its horizontal extent,
	// MinOx..MaxOx in data pixels, takes part in culling.
	Bounds() geom.Rect
	Owner() Client
	HUD() bool
	Hidden() bool
	base() *Base
}

// Base carries the fields shared by every variant.
type Base struct {
	Container geom.Rect
	// Lead is the grid cell the object belongs to, -1 for all of them.
	Lead int

	owner  Client
	hidden bool
	hud    bool
	seq    int
}

func newBase(owner Client, container geom.Rect, lead int, hud bool) Base {
	return Base{
		Container: geom.NewRect(container.Left, container.Top, container.Width, container.Height),
		Lead:      lead,
		owner:     owner,
		hud:       hud,
		seq:       -1,
	}
}

func (b *Base) Bounds() geom.Rect { return b.Container }
func (b *Base) Owner() Client     { return b.owner }
func (b *Base) HUD() bool         { return b.hud }
func (b *Base) Hidden() bool      { return b.hidden }
func (b *Base) base() *Base       { return b }

// Signal holds one polyline per lead. Points are (data px, microvolts).
type Signal struct {
	Base
	Polylines []geom.Polyline
}

func (*Signal) Kind() Kind { return KindSignal }

// Grid holds the gridlines of one lead cell, in device pixels. VLines are
// laid out from the container's left edge at Spacing; the renderer shifts
// them by the window phase.
type Grid struct {
	Base
	HLines  []geom.Line
	VLines  []geom.Line
	Axes    []geom.Line
	Spacing float64
}

func (*Grid) Kind() Kind { return KindGrid }

// BeatsRange is one beat: a marker per lead at the peak and the labelled
// onset..offset range. Index drives the alternating background bands.
type BeatsRange struct {
	Base
	Index   int
	Beat    ecg.Beat
	Range   geom.Range
	Markers []geom.Point
	Text    string
}

func (*BeatsRange) Kind() Kind { return KindBeatsRange }

// MarkerX is the data pixel of the beat's peak.
func (b *BeatsRange) MarkerX() float64 {
	if len(b.Markers) == 0 {
		return b.Range.From
	}
	return b.Markers[0].X
}

// Cursor follows the pointer. Line is in device pixels, markers are
// (data px, microvolts), one per lead.
type Cursor struct {
	Base
	Active  bool
	Sample  int
	Line    geom.Line
	Markers []geom.Point
	Values  []float64
}

func (*Cursor) Kind() Kind { return KindCursor }

// refresh snaps the cursor to the sample column under the pointer.
func (c *Cursor) refresh(rec *ecg.Record, s *State) {
	p, ok := s.Pointer()
	n := rec.Len()
	if !ok || n == 0 || !s.Ready() {
		c.Active = false
		return
	}
	sample := s.NearestSample(float64(s.MinPx) + p.X)
	sample = min(max(sample, 0), n-1)
	px := s.SampleToPx(sample)
	x := s.DeviceX(px)
	c.Active = true
	c.Sample = sample
	c.Line = geom.Line{A: geom.Pt(x, s.Container.Top), B: geom.Pt(x, s.Container.Bottom())}
	c.Markers = c.Markers[:0]
	c.Values = c.Values[:0]
	for i := range s.GridCells {
		v, _ := rec.Value(i, sample)
		c.Markers = append(c.Markers, geom.Pt(px, v))
		c.Values = append(c.Values, v)
	}
}

// WavePoint marks a wave boundary (onset or offset) on one lead.
type WavePoint struct {
	Base
	Type ecg.WaveType
	At   geom.Point
}

func (*WavePoint) Kind() Kind { return KindWavePoint }

// Peak marks a wave peak on one lead.
type Peak struct {
	Base
	Type ecg.WaveType
	At   geom.Point
}

func (*Peak) Kind() Kind { return KindPeak }

// Annotation is a labelled interval below the traces.
type Annotation struct {
	Base
	Range geom.Range
	Code  string
	Text  string
}

func (*Annotation) Kind() Kind { return KindAnnotation }

// ClickablePoint is a hit target around a beat peak on one lead.
type ClickablePoint struct {
	Base
	At     geom.Point
	Radius float64
	Beat   int
}

func (*ClickablePoint) Kind() Kind { return KindClickablePoint }

// Cell is the caption box of a lead cell, in device pixels.
type Cell struct {
	Base
	Label string
}

func (*Cell) Kind() Kind { return KindCell }

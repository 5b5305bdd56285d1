package drawing

import (
	"errors"
	"math"
	"slices"

	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

var (
	ErrNoContainer = errors.New("drawing: container is not set")
	ErrNoLeads     = errors.New("drawing: no leads to lay out")
	ErrNoData      = errors.New("drawing: no record loaded")
)

// Defaults for a fresh State.
const (
	DefaultSignalScale = 10.0 // px per millivolt
	DefaultPxPerSample = 1.0
)

// GridCell is the layout of one lead: its band of the container, the
// vertical position of the zero line and the amplitude scale.
type GridCell struct {
	Lead    ecg.LeadCode
	Label   string
	Rect    geom.Rect
	CenterY float64
	Scale   float64 // px per microvolt
	Hidden  bool
}

// State is the single source of truth for what part of the record is on
// screen and how it maps to device pixels.
//
// The horizontal axis is measured in data pixels: sample i sits at
// i*PxPerSample. [MinPx, MaxPx] is the visible window and always spans
// LimitPx pixels once SetLimit has been called.
type State struct {
	MinPx   int
	MaxPx   int
	LimitPx int

	// Container is the plotting area on the drawing surface, Screen the same
	// area in the coordinate space of pointer events.
	Container geom.Rect
	Screen    geom.Rect

	GridCells []GridCell
	LeadCodes []ecg.LeadCode

	SampleRate  float64
	SignalScale float64 // px per millivolt
	PxPerSample float64

	pointer    geom.Point
	hasPointer bool
	client     geom.Point
	anchor     geom.Point
	dragging   bool
}

// NewState returns a state with default scales and no container.
func NewState() *State {
	return &State{
		SignalScale: DefaultSignalScale,
		PxPerSample: DefaultPxPerSample,
	}
}

// Scroll shifts the window by delta pixels keeping its width. Positive
// values reveal later samples. It does not clamp.
func (s *State) Scroll(delta int) {
	s.MinPx += delta
	s.MaxPx += delta
}

// SetLimit sets the window width and re-derives MaxPx.
func (s *State) SetLimit(px int) {
	if px < 0 {
		px = 0
	}
	s.LimitPx = px
	s.MaxPx = s.MinPx + px
}

// ScrollTo places the window start at px.
func (s *State) ScrollTo(px int) {
	s.Scroll(px - s.MinPx)
}

// PrepareGridCells stacks one cell per lead inside the container, each
// taking an equal share of its height. Hidden flags of leads already laid
// out survive the call.
func (s *State) PrepareGridCells(codes []ecg.LeadCode, labels []string) error {
	if s.Container.IsEmpty() {
		return ErrNoContainer
	}
	if len(codes) == 0 {
		return ErrNoLeads
	}
	hidden := make(map[ecg.LeadCode]bool, len(s.GridCells))
	for _, c := range s.GridCells {
		hidden[c.Lead] = c.Hidden
	}
	n := float64(len(codes))
	h := s.Container.Height / n
	scale := s.SignalScale / 1000
	cells := make([]GridCell, len(codes))
	for i, code := range codes {
		label := code.Label()
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		r := geom.Rect{Left: s.Container.Left, Top: s.Container.Top + float64(i)*h, Width: s.Container.Width, Height: h}
		cells[i] = GridCell{
			Lead:    code,
			Label:   label,
			Rect:    r,
			CenterY: r.Top + r.Height/2,
			Scale:   scale,
			Hidden:  hidden[code],
		}
	}
	s.GridCells = cells
	s.LeadCodes = slices.Clone(codes)
	return nil
}

// SavePointerPosition records the pointer in container-local coordinates.
func (s *State) SavePointerPosition(x, y float64) {
	s.pointer = geom.Pt(x, y)
	s.hasPointer = true
}

// SaveClientPosition records the pointer in host coordinates.
func (s *State) SaveClientPosition(x, y float64) {
	s.client = geom.Pt(x, y)
}

// ClearPointer forgets the pointer, e.g. when it leaves the surface.
func (s *State) ClearPointer() {
	s.hasPointer = false
}

// Pointer returns the last container-local pointer position.
func (s *State) Pointer() (geom.Point, bool) { return s.pointer, s.hasPointer }

// Client returns the last pointer position in host coordinates.
func (s *State) Client() geom.Point { return s.client }

// StartDrag records the drag anchor in host coordinates.
func (s *State) StartDrag(p geom.Point) {
	s.anchor = p
	s.dragging = true
}

// MoveAnchor moves an active drag anchor.
func (s *State) MoveAnchor(p geom.Point) {
	if s.dragging {
		s.anchor = p
	}
}

// ResetDrag clears the drag anchor. Safe to call repeatedly.
func (s *State) ResetDrag() {
	s.anchor = geom.Point{}
	s.dragging = false
}

// DragAnchor returns the anchor and whether a drag is in progress.
func (s *State) DragAnchor() (geom.Point, bool) { return s.anchor, s.dragging }

func (s *State) pxPerSample() float64 {
	if s.PxPerSample <= 0 {
		return DefaultPxPerSample
	}
	return s.PxPerSample
}

// SampleToPx maps a sample index onto the data pixel axis.
func (s *State) SampleToPx(i int) float64 { return float64(i) * s.pxPerSample() }

// PxToSample is the first sample at or after data pixel px.
func (s *State) PxToSample(px float64) int {
	return int(math.Ceil(px/s.pxPerSample() - 1e-9))
}

// NearestSample is the sample closest to data pixel px.
func (s *State) NearestSample(px float64) int {
	return int(math.Round(px / s.pxPerSample()))
}

// DeviceX maps a data pixel to a device pixel inside the container.
func (s *State) DeviceX(px float64) float64 {
	return px - float64(s.MinPx) + s.Container.Left
}

// LeadTransform maps (data px, microvolt) points of a lead onto the device.
func (s *State) LeadTransform(c GridCell) geom.Transform {
	return geom.ScaleTranslate(1, -c.Scale, s.Container.Left-float64(s.MinPx), c.CenterY)
}

// WidthPx is the extent of n samples on the data axis.
func (s *State) WidthPx(n int) int {
	return int(math.Ceil(s.SampleToPx(n)))
}

// Ready reports whether the layout needed for drawing exists.
func (s *State) Ready() bool {
	return !s.Container.IsEmpty() && len(s.GridCells) > 0
}

// Snapshot returns a copy that shares nothing mutable with s.
func (s *State) Snapshot() State {
	c := *s
	c.GridCells = slices.Clone(s.GridCells)
	c.LeadCodes = slices.Clone(s.LeadCodes)
	return c
}

// Cell returns the layout of lead i.
func (s *State) Cell(i int) (GridCell, bool) {
	if i < 0 || i >= len(s.GridCells) {
		return GridCell{}, false
	}
	return s.GridCells[i], true
}

package drawing

import (
	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

// Client is a renderer: it manufactures drawing objects from a record and
// draws batches of them.
//
// Produce must be a pure function of its arguments. Called twice with the
// same inputs it returns equivalent objects in the same order. Render gets
// exactly the objects the proxy currently assigns to the client and must not
// modify them.
//
// Clients are registered by pointer and used as map keys by the proxy.
type Client interface {
	Name() string
	Produce(rec *ecg.Record, s *State) []Object
	Render(objs []Object, s *State, surf Surface)
}

// DefaultClients returns one instance of every renderer in the usual
// z-order: grid at the back, cursor and captions on top.
func DefaultClients() []Client {
	return []Client{
		NewGridClient(),
		NewBeatsClient(),
		NewAnnotationClient(),
		NewSignalClient(),
		NewWavePointClient(),
		NewClickablePointClient(),
		NewCursorClient(),
		NewCellClient(),
	}
}

// visibleCell returns the layout of lead i when it is drawn.
func visibleCell(s *State, i int) (GridCell, bool) {
	c, ok := s.Cell(i)
	if !ok || c.Hidden {
		return GridCell{}, false
	}
	return c, true
}

// pointBase is the container of a single point with a horizontal radius.
func pointBase(owner Client, at geom.Point, r float64, lead int) Base {
	return newBase(owner, geom.RectFromSpan(at.X-r, at.Y, at.X+r, at.Y), lead, false)
}

func inWindow(s *State, x float64) bool {
	return x >= float64(s.MinPx) && x <= float64(s.MaxPx)
}

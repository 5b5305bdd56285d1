package drawing

import (
	"math"

	"ecgview/internal/geom"
)

// DefaultMargin is the gap between the surface edge and the container.
const DefaultMargin = 33.0

// WithMargin sets the gap Resize keeps around the container.
func WithMargin(m float64) Option {
	return func(p *Proxy) {
		if m >= 0 {
			p.margin = m
		}
	}
}

// Resize lays the container out on a surfaceW x surfaceH surface, keeping
// the margin on every side. screen is the whole surface in pointer
// coordinates; the container's pointer area is derived from it.
func (p *Proxy) Resize(surfaceW, surfaceH float64, screen geom.Rect) {
	m := p.margin
	if 2*m >= surfaceW || 2*m >= surfaceH {
		m = 0
	}
	container := geom.NewRect(m, m, surfaceW-2*m, surfaceH-2*m)
	var sc geom.Rect
	if surfaceW > 0 && surfaceH > 0 {
		sx, sy := screen.Width/surfaceW, screen.Height/surfaceH
		sc = geom.NewRect(screen.Left+m*sx, screen.Top+m*sy, container.Width*sx, container.Height*sy)
	}
	Logger().Debug("drawing: resize", "w", surfaceW, "h", surfaceH, "container", container)
	p.SetContainer(container, sc)
}

// toLocal converts a pointer position into container device pixels. Points
// outside the container are rejected.
func (p *Proxy) toLocal(at geom.Point) (geom.Point, bool) {
	sc, c := p.state.Screen, p.state.Container
	if sc.IsEmpty() || c.IsEmpty() {
		return geom.Point{}, false
	}
	x, y := at.X-sc.Left, at.Y-sc.Top
	if x < 0 || y < 0 || x > sc.Width || y > sc.Height {
		return geom.Point{}, false
	}
	return geom.Pt(x*c.Width/sc.Width, y*c.Height/sc.Height), true
}

// pointerScale is the number of device pixels per pointer unit.
func (p *Proxy) pointerScale() float64 {
	sc, c := p.state.Screen, p.state.Container
	if sc.Width <= 0 || c.Width <= 0 {
		return 1
	}
	return c.Width / sc.Width
}

// PointerDown starts a drag at at, in pointer coordinates. Presses outside
// the container are dropped.
func (p *Proxy) PointerDown(at geom.Point) {
	if _, ok := p.toLocal(at); !ok {
		return
	}
	p.state.SaveClientPosition(at.X, at.Y)
	p.state.StartDrag(at)
}

// PointerMove drags the window while a drag is active and moves the cursor
// otherwise. A drag scrolls by anchor minus endpoint, so dragging left
// reveals later samples.
//
// Hover moves inside the throttle window still move the cursor; only the
// notification is held back until FlushHover or the next unthrottled move.
func (p *Proxy) PointerMove(at geom.Point) {
	if anchor, dragging := p.state.DragAnchor(); dragging {
		p.drag(anchor, at)
		return
	}
	if !p.moveCursor(at) {
		return
	}
	now := p.now()
	if p.throttle > 0 && !p.lastHover.IsZero() && now.Sub(p.lastHover) < p.throttle {
		p.hoverPending = true
		return
	}
	p.lastHover = now
	p.hoverPending = false
	p.emit(ChangeHover, SenderHover)
}

// HoverPending reports a throttled hover whose notification is still owed.
func (p *Proxy) HoverPending() bool { return p.hoverPending }

// FlushHover emits the notification held back by the hover throttle. It
// reports false when nothing was pending.
func (p *Proxy) FlushHover() bool {
	if !p.hoverPending {
		return false
	}
	p.hoverPending = false
	p.lastHover = p.now()
	p.emit(ChangeHover, SenderHover)
	return true
}

func (p *Proxy) drag(anchor, at geom.Point) {
	delta := int(math.Round((anchor.X - at.X) * p.pointerScale()))
	if delta == 0 {
		return
	}
	delta = p.clampDelta(delta)
	// the anchor follows the pointer even at the edges so reversing the
	// drag responds at once
	p.state.MoveAnchor(at)
	p.state.SaveClientPosition(at.X, at.Y)
	if delta == 0 {
		return
	}
	p.state.Scroll(delta)
	p.Rescroll()
	p.moveCursor(at)
	p.emit(ChangeScroll, SenderDrag)
}

// moveCursor stores the pointer, in both coordinate spaces, and refreshes
// the HUD. It reports false, leaving the state alone, when the pointer is
// outside the container.
func (p *Proxy) moveCursor(at geom.Point) bool {
	local, ok := p.toLocal(at)
	if !ok {
		return false
	}
	p.state.SaveClientPosition(at.X, at.Y)
	p.state.SavePointerPosition(local.X, local.Y)
	p.refreshHUD()
	return true
}

// Dragging reports whether a drag is in progress.
func (p *Proxy) Dragging() bool {
	_, ok := p.state.DragAnchor()
	return ok
}

// PointerUp ends a drag.
func (p *Proxy) PointerUp() {
	p.state.ResetDrag()
}

// PointerLeave ends any drag and hides the cursor.
func (p *Proxy) PointerLeave() {
	p.state.ResetDrag()
	_, had := p.state.Pointer()
	p.state.ClearPointer()
	p.hoverPending = false
	if !had {
		return
	}
	p.refreshHUD()
	p.emit(ChangeForceRefresh, SenderHover)
}

// Wheel zooms the amplitude axis by one ZoomStep per notch, positive
// notches zooming in, then lays the leads out again and rebuilds.
func (p *Proxy) Wheel(notches int) bool {
	if notches == 0 {
		return false
	}
	cur := p.state.SignalScale
	next := cur * math.Pow(p.zoomStep, float64(notches))
	next = min(max(next, p.minScale), p.maxScale)
	if next == cur {
		return false
	}
	p.state.SignalScale = next
	p.relayout()
	p.Rebuild()
	p.emit(ChangeForceRefresh, SenderProgrammatic)
	return true
}

// ClickableAt returns the clickable point under the pointer, if any.
func (p *Proxy) ClickableAt() (*ClickablePoint, bool) {
	for i, c := range p.clients {
		if _, ok := c.(*ClickablePointClient); !ok {
			continue
		}
		if cp, ok := HitClickable(p.groups[i], p.state); ok {
			return cp, true
		}
	}
	return nil, false
}

package drawing

// Frame is what a render pass needs: the clients in z-order and, index
// aligned with them, the HUD objects and visible objects each one draws.
// A Frame shares no mutable state with the proxy that built it, except for
// the HUD objects, which the proxy refreshes in place on pointer moves.
type Frame struct {
	State   State
	Clients []Client
	Groups  [][]Object
	HUD     [][]Object
}

// Objects returns the batch client i renders: its HUD objects first.
func (f *Frame) Objects(i int) []Object {
	var hud, vis []Object
	if i >= 0 && i < len(f.HUD) {
		hud = f.HUD[i]
	}
	if i >= 0 && i < len(f.Groups) {
		vis = f.Groups[i]
	}
	if len(hud) == 0 {
		return vis
	}
	if len(vis) == 0 {
		return hud
	}
	out := make([]Object, 0, len(hud)+len(vis))
	out = append(out, hud...)
	return append(out, vis...)
}

// Draw renders every client's batch in z-order.
func (f *Frame) Draw(surf Surface) {
	if !f.State.Ready() {
		return
	}
	for i, c := range f.Clients {
		objs := f.Objects(i)
		if len(objs) == 0 {
			continue
		}
		c.Render(objs, &f.State, surf)
	}
}

// Empty reports whether nothing would be drawn.
func (f *Frame) Empty() bool {
	for i := range f.Clients {
		if len(f.Objects(i)) > 0 {
			return false
		}
	}
	return true
}

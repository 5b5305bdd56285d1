package drawing

import (
	"slices"
	"time"

	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

// Option configures a Proxy.
type Option func(*Proxy)

// WithState uses s instead of a fresh NewState.
func WithState(s *State) Option {
	return func(p *Proxy) {
		if s != nil {
			p.state = s
		}
	}
}

// WithHoverThrottle holds back hover notifications that arrive within d of
// the last one. Drags are never throttled.
func WithHoverThrottle(d time.Duration) Option {
	return func(p *Proxy) { p.throttle = d }
}

// WithClock replaces time.Now, for timestamps and throttling.
func WithClock(now func() time.Time) Option {
	return func(p *Proxy) {
		if now != nil {
			p.now = now
		}
	}
}

// WithZoom sets the wheel zoom step and the SignalScale bounds.
func WithZoom(step, minScale, maxScale float64) Option {
	return func(p *Proxy) {
		if step > 1 {
			p.zoomStep = step
		}
		if minScale > 0 && maxScale >= minScale {
			p.minScale, p.maxScale = minScale, maxScale
		}
	}
}

// WithScrollClamp turns clamping of the window to the record on or off.
func WithScrollClamp(on bool) Option {
	return func(p *Proxy) { p.clamp = on }
}

// Proxy owns the viewport state, the renderers and the partition of their
// objects into visible, hidden-left and hidden-right sets.
//
// A Proxy is confined to one goroutine: every operation runs to completion
// and emits its notifications before returning.
type Proxy struct {
	state   *State
	data    *ecg.Record
	clients []Client
	index   map[Client]int

	built    bool
	all      []Object
	visible  []Object
	hidLeft  []Object
	hidRight []Object
	hud      []Object
	groups   [][]Object
	hudGrps  [][]Object

	changes  Feed[Event]
	prepared Feed[Frame]

	now          func() time.Time
	throttle     time.Duration
	lastHover    time.Time
	hoverPending bool
	zoomStep     float64
	minScale     float64
	maxScale     float64
	margin       float64
	clamp        bool
}

// NewProxy returns a proxy with no renderers and no data.
func NewProxy(opts ...Option) *Proxy {
	p := &Proxy{
		state:    NewState(),
		index:    map[Client]int{},
		now:      time.Now,
		zoomStep: 1.25,
		minScale: 1,
		maxScale: 200,
		margin:   DefaultMargin,
		clamp:    true,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// PushClients appends renderers. Registration order is the z-order and the
// index of each renderer's group. A renderer registered twice is ignored.
func (p *Proxy) PushClients(clients ...Client) {
	for _, c := range clients {
		if c == nil {
			continue
		}
		if _, dup := p.index[c]; dup {
			Logger().Warn("drawing: renderer registered twice", "renderer", c.Name())
			continue
		}
		p.index[c] = len(p.clients)
		p.clients = append(p.clients, c)
	}
	p.groups = make([][]Object, len(p.clients))
	p.hudGrps = make([][]Object, len(p.clients))
	if p.built {
		p.Rebuild()
	}
}

// Clients returns the registered renderers in z-order.
func (p *Proxy) Clients() []Client { return slices.Clone(p.clients) }

// Changes is the redraw notification stream.
func (p *Proxy) Changes() *Feed[Event] { return &p.changes }

// Prepared streams a Frame after every change.
func (p *Proxy) Prepared() *Feed[Frame] { return &p.prepared }

// State returns a snapshot of the viewport state.
func (p *Proxy) State() State { return p.state.Snapshot() }

// Record returns the loaded record, nil before the first Load.
func (p *Proxy) Record() *ecg.Record { return p.data }

// Rebuild asks every renderer for fresh objects, sets HUD objects aside and
// partitions the rest against the window. Without data it does nothing.
func (p *Proxy) Rebuild() {
	if p.data == nil {
		Logger().Debug("drawing: rebuild skipped, no record")
		return
	}
	var all, hud []Object
	for _, c := range p.clients {
		for _, o := range c.Produce(p.data, p.state) {
			if o == nil {
				continue
			}
			b := o.base()
			if b.owner != c {
				Logger().Warn("drawing: object owner differs from producer", "renderer", c.Name(), "kind", o.Kind())
				b.owner = c
			}
			b.hidden = false
			if b.hud {
				b.seq = -1
				hud = append(hud, o)
				continue
			}
			b.seq = len(all)
			all = append(all, o)
		}
	}
	p.all, p.hud = all, hud
	p.built = true
	p.partition()
	Logger().Debug("drawing: rebuild", "all", len(p.all), "hud", len(p.hud), "visible", len(p.visible))
}

// Rescroll re-partitions the existing objects against the current window.
// It never calls Produce.
func (p *Proxy) Rescroll() {
	if !p.built {
		return
	}
	p.partition()
	Logger().Debug("drawing: rescroll", "visible", len(p.visible), "left", len(p.hidLeft), "right", len(p.hidRight))
}

// partition classifies every object of all and regroups the visible ones
// by owner. Fresh slices are built on every pass so frames handed out
// earlier stay intact.
func (p *Proxy) partition() {
	lo, hi := float64(p.state.MinPx), float64(p.state.MaxPx)
	visible := make([]Object, 0, len(p.visible))
	left := make([]Object, 0, len(p.hidLeft))
	right := make([]Object, 0, len(p.hidRight))
	for _, o := range p.all {
		b := o.base()
		switch r := b.Container; {
		case r.MaxOx() < lo:
			b.hidden = true
			left = append(left, o)
		case r.MinOx() > hi:
			b.hidden = true
			right = append(right, o)
		default:
			b.hidden = false
			visible = append(visible, o)
		}
	}
	p.visible, p.hidLeft, p.hidRight = visible, left, right

	groups := make([][]Object, len(p.clients))
	for _, o := range visible {
		b := o.base()
		if b.seq < 0 || b.seq >= len(p.all) || p.all[b.seq] != o || b.hidden {
			Logger().Warn("drawing: visible object missing from object list", "kind", o.Kind(), "seq", b.seq)
			continue
		}
		i, ok := p.index[b.owner]
		if !ok {
			Logger().Warn("drawing: visible object has unregistered owner", "kind", o.Kind())
			continue
		}
		groups[i] = append(groups[i], o)
	}
	p.groups = groups

	hud := make([][]Object, len(p.clients))
	for _, o := range p.hud {
		if i, ok := p.index[o.Owner()]; ok {
			hud[i] = append(hud[i], o)
		}
	}
	p.hudGrps = hud
}

// All returns every non-HUD object in production order.
func (p *Proxy) All() []Object { return slices.Clone(p.all) }

// Visible returns the objects overlapping the window.
func (p *Proxy) Visible() []Object { return slices.Clone(p.visible) }

// HiddenLeft returns the objects ending before the window.
func (p *Proxy) HiddenLeft() []Object { return slices.Clone(p.hidLeft) }

// HiddenRight returns the objects starting after the window.
func (p *Proxy) HiddenRight() []Object { return slices.Clone(p.hidRight) }

// HUD returns the objects exempt from culling.
func (p *Proxy) HUD() []Object { return slices.Clone(p.hud) }

// Groups returns the visible objects of each renderer, index aligned with
// Clients.
func (p *Proxy) Groups() [][]Object { return cloneGroups(p.groups, len(p.clients)) }

func cloneGroups(g [][]Object, n int) [][]Object {
	out := make([][]Object, n)
	for i := range out {
		if i < len(g) {
			out[i] = slices.Clone(g[i])
		}
		if out[i] == nil {
			out[i] = []Object{}
		}
	}
	return out
}

// CanDraw reports whether a render pass would produce anything.
func (p *Proxy) CanDraw() bool {
	if len(p.hud) > 0 {
		return true
	}
	for _, g := range p.groups {
		if len(g) > 0 {
			return true
		}
	}
	return false
}

// Frame bundles the current groups for a render pass.
func (p *Proxy) Frame() Frame {
	return Frame{
		State:   p.state.Snapshot(),
		Clients: slices.Clone(p.clients),
		Groups:  cloneGroups(p.groups, len(p.clients)),
		HUD:     cloneGroups(p.hudGrps, len(p.clients)),
	}
}

// emit publishes the frame first so change subscribers can pull it.
func (p *Proxy) emit(kind ChangeKind, sender ChangeSender) {
	p.prepared.Emit(p.Frame())
	p.changes.Emit(Event{Kind: kind, Sender: sender, At: p.now()})
}

// Refresh requests a redraw without changing anything.
func (p *Proxy) Refresh() {
	p.emit(ChangeForceRefresh, SenderProgrammatic)
}

// Load replaces the record, lays out its leads, resets the window to the
// start and rebuilds all objects.
func (p *Proxy) Load(rec *ecg.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	p.data = rec
	p.state.SampleRate = rec.SampleRate
	p.state.LeadCodes = slices.Clone(rec.Leads)
	if err := p.state.PrepareGridCells(rec.Leads, ecg.Labels(rec.Leads)); err != nil {
		Logger().Warn("drawing: leads not laid out yet", "err", err)
	}
	p.state.ScrollTo(0)
	p.Rebuild()
	p.emit(ChangeForceRefresh, SenderProgrammatic)
	return nil
}

// SetContainer sets the plotting area on the surface and the same area in
// pointer coordinates, then re-lays out the leads and the window width.
func (p *Proxy) SetContainer(container, screen geom.Rect) {
	p.state.Container = container
	p.state.Screen = screen
	p.state.SetLimit(int(container.Width))
	p.relayout()
	p.clampWindow()
	p.Rebuild()
	p.emit(ChangeForceRefresh, SenderProgrammatic)
}

// SetLimit sets the window width in pixels.
func (p *Proxy) SetLimit(px int) {
	p.state.SetLimit(px)
	p.clampWindow()
	p.Rescroll()
	p.emit(ChangeForceRefresh, SenderProgrammatic)
}

// SetLeads lays out cells for the given leads and rebuilds.
func (p *Proxy) SetLeads(codes []ecg.LeadCode, labels []string) error {
	if err := p.state.PrepareGridCells(codes, labels); err != nil {
		Logger().Warn("drawing: set leads", "err", err)
		return err
	}
	p.Rebuild()
	p.emit(ChangeForceRefresh, SenderProgrammatic)
	return nil
}

// ToggleLead flips the hidden display state of lead i. Geometry is kept;
// renderers skip hidden cells.
func (p *Proxy) ToggleLead(i int) bool {
	if i < 0 || i >= len(p.state.GridCells) {
		return false
	}
	p.state.GridCells[i].Hidden = !p.state.GridCells[i].Hidden
	p.emit(ChangeForceRefresh, SenderProgrammatic)
	return true
}

func (p *Proxy) relayout() {
	codes := p.state.LeadCodes
	if len(codes) == 0 {
		return
	}
	labels := make([]string, len(p.state.GridCells))
	for i, c := range p.state.GridCells {
		labels[i] = c.Label
	}
	if err := p.state.PrepareGridCells(codes, labels); err != nil {
		Logger().Warn("drawing: relayout", "err", err)
	}
}

// DataWidthPx is the extent of the loaded record on the data axis.
func (p *Proxy) DataWidthPx() int {
	if p.data == nil {
		return 0
	}
	return p.state.WidthPx(p.data.Len())
}

// clampDelta limits a scroll so the window stays over the record. The
// window may start at 0 even when the record is narrower than it.
func (p *Proxy) clampDelta(delta int) int {
	if !p.clamp || p.data == nil {
		return delta
	}
	maxMin := max(0, p.DataWidthPx()-p.state.LimitPx)
	target := min(max(p.state.MinPx+delta, 0), maxMin)
	return target - p.state.MinPx
}

func (p *Proxy) clampWindow() {
	if d := p.clampDelta(0); d != 0 {
		p.state.Scroll(d)
	}
}

// Scroll moves the window by delta pixels, clamped to the record, then
// re-partitions. It returns false when the window did not move.
func (p *Proxy) Scroll(delta int) bool {
	return p.scroll(delta, SenderProgrammatic)
}

// ScrollTo moves the window start to px.
func (p *Proxy) ScrollTo(px int) bool {
	return p.Scroll(px - p.state.MinPx)
}

func (p *Proxy) scroll(delta int, sender ChangeSender) bool {
	delta = p.clampDelta(delta)
	if delta == 0 {
		return false
	}
	p.state.Scroll(delta)
	p.Rescroll()
	p.refreshHUD()
	p.emit(ChangeScroll, sender)
	return true
}

// refreshHUD lets HUD objects follow the pointer and window.
func (p *Proxy) refreshHUD() {
	for _, o := range p.hud {
		if c, ok := o.(*Cursor); ok {
			c.refresh(p.data, p.state)
		}
	}
}

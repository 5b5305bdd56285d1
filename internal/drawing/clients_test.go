package drawing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"ecgview/internal/ecg"
	"ecgview/internal/geom"
)

type strokeOp struct {
	segs  [][2]geom.Point
	style Style
}

type textOp struct {
	at   geom.Point
	text string
}

// recordSurface keeps every primitive it is given.
type recordSurface struct {
	clips   []rect.Rect
	strokes []strokeOp
	fills   []geom.Rect
	markers []geom.Point
	texts   []textOp
}

func (s *recordSurface) Clip(r rect.Rect) { s.clips = append(s.clips, r) }

func (s *recordSurface) Stroke(p *path.Data, st Style) {
	op := strokeOp{style: st}
	geom.Walk(p, func(a, b geom.Point) { op.segs = append(op.segs, [2]geom.Point{a, b}) })
	s.strokes = append(s.strokes, op)
}

func (s *recordSurface) Fill(r geom.Rect, _ Style) { s.fills = append(s.fills, r) }

func (s *recordSurface) Marker(at geom.Point, _ Style) { s.markers = append(s.markers, at) }

func (s *recordSurface) Text(at geom.Point, t string, _ Style) {
	s.texts = append(s.texts, textOp{at, t})
}

func readyState(t *testing.T, leads int) *State {
	t.Helper()
	s := NewState()
	s.Container = geom.NewRect(0, 0, 500, 300)
	s.SampleRate = 500
	s.SetLimit(500)
	require.NoError(t, s.PrepareGridCells(allLeads[:leads], nil))
	return s
}

func TestSignalRendersVisibleSpan(t *testing.T) {
	s := readyState(t, 2)
	s.ScrollTo(100)
	s.SetLimit(100)
	rec := testRecord(2, 1000, 0)
	c := NewSignalClient()
	objs := c.Produce(rec, s)
	require.Len(t, objs, 1)
	assert.Equal(t, 0.0, objs[0].Bounds().MinOx())
	assert.Equal(t, 999.0, objs[0].Bounds().MaxOx())

	surf := &recordSurface{}
	c.Render(objs, s, surf)
	require.Len(t, surf.strokes, 2)
	// samples 99..200, one past each window edge
	segs := surf.strokes[0].segs
	require.Len(t, segs, 101)
	assert.Equal(t, -1.0, segs[0][0].X)
	assert.Equal(t, 100.0, segs[len(segs)-1][1].X)
	assert.Equal(t, s.GridCells[0].CenterY, segs[0][0].Y)
}

func TestSignalSkipsHiddenLead(t *testing.T) {
	s := readyState(t, 3)
	s.GridCells[1].Hidden = true
	c := NewSignalClient()
	surf := &recordSurface{}
	c.Render(c.Produce(testRecord(3, 600, 0), s), s, surf)
	assert.Len(t, surf.strokes, 2)
}

func TestGridPhase(t *testing.T) {
	assert.Equal(t, 0.0, phase(0, 100))
	assert.Equal(t, 30.0, phase(130, 100))
	assert.Equal(t, 70.0, phase(-30, 100))
}

func TestGridStopsAtRightEdge(t *testing.T) {
	s := readyState(t, 1)
	c := NewGridClient()
	objs := c.Produce(nil, s)
	require.Len(t, objs, 1)
	assert.True(t, objs[0].HUD())
	// 0.2 s at 500 Hz
	assert.Equal(t, 100.0, c.Spacing(s))

	s.ScrollTo(130)
	surf := &recordSurface{}
	c.Render(objs, s, surf)
	require.Len(t, surf.strokes, 3)
	vlines := surf.strokes[1].segs
	xs := make([]float64, len(vlines))
	for i, l := range vlines {
		xs[i] = l[0].X
	}
	assert.Equal(t, []float64{70, 170, 270, 370, 470}, xs)
}

func TestGridSpacingFloor(t *testing.T) {
	s := readyState(t, 1)
	s.PxPerSample = 0.03125
	c := NewGridClient()
	assert.Equal(t, 6.25, c.Spacing(s))
}

func TestBeatsTwoPasses(t *testing.T) {
	s := readyState(t, 2)
	rec := testRecord(2, 2000, 0,
		ecg.Beat{Onset: 100, Peak: 120, Offset: 150, Label: "N"},
		ecg.Beat{Onset: 480, Peak: 490, Offset: 520, Label: "V"},
		ecg.Beat{Onset: 900, Peak: 910, Offset: 950, Label: "N"},
	)
	c := NewBeatsClient()
	objs := c.Produce(rec, s)
	require.Len(t, objs, 3)
	assert.Equal(t, "N 100ms", objs[0].(*BeatsRange).Text)

	surf := &recordSurface{}
	c.Render(objs[:2], s, surf)
	// only the first beat is fully inside [0, 500], one band per lead
	assert.Len(t, surf.fills, 2)
	// both peaks are inside, one marker per lead
	assert.Len(t, surf.markers, 4)
	// one label per beat
	assert.Len(t, surf.texts, 2)
}

func TestCursorSnapsToSample(t *testing.T) {
	s := readyState(t, 2)
	rec := testRecord(2, 1000, 300)
	c := NewCursorClient()
	objs := c.Produce(rec, s)
	require.Len(t, objs, 1)
	cur := objs[0].(*Cursor)
	assert.False(t, cur.Active)

	s.SavePointerPosition(12.6, 40)
	cur.refresh(rec, s)
	require.True(t, cur.Active)
	assert.Equal(t, 13, cur.Sample)
	assert.Equal(t, 13.0, cur.Line.A.X)

	surf := &recordSurface{}
	c.Render(objs, s, surf)
	assert.Len(t, surf.strokes, 1)
	assert.Len(t, surf.markers, 2)
	assert.Equal(t, "300µV", surf.texts[0].text)
	assert.Equal(t, "0.026s", surf.texts[len(surf.texts)-1].text)

	s.SavePointerPosition(5000, 40)
	cur.refresh(rec, s)
	assert.Equal(t, 999, cur.Sample)
}

func TestWavePointsExpandAllLeads(t *testing.T) {
	s := readyState(t, 3)
	rec := testRecord(3, 1000, 0)
	rec.WavePoints = []ecg.WavePoint{
		{Type: ecg.WaveRPeak, Sample: 50, Lead: -1},
		{Type: ecg.WaveQRSOnset, Sample: 40, Lead: 2},
		{Type: ecg.WaveTOffset, Sample: 80, Lead: 9},
	}
	c := NewWavePointClient()
	objs := c.Produce(rec, s)
	require.Len(t, objs, 4)
	peaks := 0
	for _, o := range objs {
		if o.Kind() == KindPeak {
			peaks++
		}
	}
	assert.Equal(t, 3, peaks)

	surf := &recordSurface{}
	c.Render(objs, s, surf)
	assert.Len(t, surf.markers, 3)
	assert.Len(t, surf.strokes, 1)
}

func TestAnnotationClipsToContainer(t *testing.T) {
	s := readyState(t, 1)
	s.ScrollTo(200)
	rec := testRecord(1, 1000, 0)
	rec.Annotations = []ecg.Annotation{{Code: "AF", Start: 100, End: 300, Text: "run"}}
	c := NewAnnotationClient()
	objs := c.Produce(rec, s)
	require.Len(t, objs, 1)

	surf := &recordSurface{}
	c.Render(objs, s, surf)
	require.Len(t, surf.strokes, 1)
	assert.Equal(t, 0.0, surf.strokes[0].segs[0][0].X)
	assert.Equal(t, 100.0, surf.strokes[0].segs[0][1].X)
	require.Len(t, surf.texts, 1)
	assert.Equal(t, "AF run", surf.texts[0].text)
}

func TestCellLabels(t *testing.T) {
	s := readyState(t, 2)
	s.GridCells[1].Hidden = true
	c := NewCellClient()
	objs := c.Produce(nil, s)
	require.Len(t, objs, 2)
	surf := &recordSurface{}
	c.Render(objs, s, surf)
	require.Len(t, surf.texts, 2)
	assert.Equal(t, "I", surf.texts[0].text)
	assert.Equal(t, "II off", surf.texts[1].text)
}

func TestObjectBoundsNormalised(t *testing.T) {
	c := NewSignalClient()
	b := newBase(c, geom.Rect{Left: 10, Width: -4, Height: 1}, 0, false)
	assert.LessOrEqual(t, b.Container.MinOx(), b.Container.MaxOx())
	assert.Equal(t, 6.0, b.Container.MinOx())
	assert.Equal(t, "beats", KindBeatsRange.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

package ecg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestParseJSON(t *testing.T) {
	rec, err := ParseJSON([]byte(`{
		"sampleRate": 250,
		"leads": ["I", " aVR "],
		"signal": [[1, 2, 3], [4, 5]],
		"beats": [{"onset": 0, "peak": 1, "offset": 2, "label": "N"}],
		"wavePoints": [
			{"type": "R", "sample": 1},
			{"type": "Toff", "sample": 2, "lead": 1},
			{"type": "bogus", "sample": 2}
		],
		"annotations": [{"code": "AF", "start": 0, "end": 2, "text": "run"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 250.0, rec.SampleRate)
	assert.Equal(t, []LeadCode{LeadI, LeadAVR}, rec.Leads)
	assert.Equal(t, 3, rec.Len())
	assert.Equal(t, []Beat{{Onset: 0, Peak: 1, Offset: 2, Label: "N"}}, rec.Beats)
	assert.Equal(t, []WavePoint{
		{Type: WaveRPeak, Sample: 1, Lead: -1},
		{Type: WaveTOffset, Sample: 2, Lead: 1},
	}, rec.WavePoints)
	assert.Equal(t, "AF", rec.Annotations[0].Code)
}

func TestParseJSONErrors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"sampleRate": 500, "leads": ["I"], "signal": [[1, "x"]]}`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"sampleRate": 500, "leads": ["I", "II"], "signal": [[1]]}`))
	assert.ErrorIs(t, err, ErrLeadMismatch)

	_, err = ParseJSON([]byte(`{"leads": ["I"], "signal": [[1]]}`))
	assert.ErrorIs(t, err, ErrSampleRate)

	_, err = ParseJSON([]byte(`{"sampleRate": 500}`))
	assert.ErrorIs(t, err, ErrNoLeads)
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "rec.csv", "time,I,II\n0,10,20\n0.004,11,21\n0.006,x,2\n0.008,12,22\n")
	rec, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "rec.csv", rec.Name)
	assert.Equal(t, []LeadCode{LeadI, LeadII}, rec.Leads)
	assert.Equal(t, [][]float64{{10, 11, 12}, {20, 21, 22}}, rec.Samples)
	assert.InDelta(t, 250, rec.SampleRate, 1e-6)
}

func TestLoadCSVWithoutTime(t *testing.T) {
	p := writeFile(t, "rec.csv", "V1\n1\n2\n")
	rec, err := LoadCSV(p)
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultSampleRate), rec.SampleRate)
	assert.Equal(t, 2, rec.Len())
}

func TestLoadDispatch(t *testing.T) {
	p := writeFile(t, "r.json", `{"sampleRate": 500, "leads": ["II"], "signal": [[0, 1]]}`)
	rec, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "r.json", rec.Name)

	_, err = Load(writeFile(t, "r.txt", ""))
	assert.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestRecordAccessors(t *testing.T) {
	rec := &Record{
		SampleRate: 100,
		Leads:      []LeadCode{LeadI},
		Samples:    [][]float64{{5, 6, 7}},
		Beats:      []Beat{{Onset: 0, Peak: 1, Offset: 1}, {Onset: 10, Peak: 12, Offset: 14}},
	}
	v, ok := rec.Value(0, 99)
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)
	_, ok = rec.Value(3, 0)
	assert.False(t, ok)
	assert.InDelta(t, 0.03, rec.Duration(), 1e-12)

	i, ok := rec.BeatAt(11)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	i, _ = rec.BeatAt(4)
	assert.Equal(t, 0, i)

	var empty *Record
	assert.Zero(t, empty.Len())
	_, ok = empty.BeatAt(0)
	assert.False(t, ok)
}

func TestWaveTypeNames(t *testing.T) {
	for w := WavePOnset; w <= WaveTOffset; w++ {
		got, ok := ParseWaveType(w.String())
		require.True(t, ok)
		assert.Equal(t, w, got)
	}
	assert.True(t, WaveTPeak.IsPeak())
	assert.False(t, WaveQRSOffset.IsPeak())
	assert.Equal(t, []string{"aVF", "V2", "?"}, Labels([]LeadCode{LeadAVF, LeadV2, ""}))
}

func TestSynthetic(t *testing.T) {
	rec := Synthetic(nil, 0, 4, 0)
	require.NoError(t, rec.Validate())
	assert.Equal(t, 3, len(rec.Leads))
	assert.Equal(t, 2000, rec.Len())
	assert.Len(t, rec.Beats, 5)
	for _, b := range rec.Beats {
		assert.LessOrEqual(t, b.Onset, b.Peak)
		assert.LessOrEqual(t, b.Peak, b.Offset)
		assert.Less(t, b.Offset, rec.Len())
	}
	for _, a := range rec.Annotations {
		assert.Less(t, a.End, rec.Len())
	}
	again := Synthetic(nil, 0, 4, 0)
	assert.Equal(t, rec.Samples, again.Samples)
}

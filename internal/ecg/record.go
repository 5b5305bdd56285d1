package ecg

import (
	"errors"
	"fmt"
)

// LeadCode identifies one signal derivation.
type LeadCode string

// Standard 12 lead codes plus the Holter channel names seen in records.
const (
	LeadI   LeadCode = "I"
	LeadII  LeadCode = "II"
	LeadIII LeadCode = "III"
	LeadAVR LeadCode = "aVR"
	LeadAVL LeadCode = "aVL"
	LeadAVF LeadCode = "aVF"
	LeadV1  LeadCode = "V1"
	LeadV2  LeadCode = "V2"
	LeadV3  LeadCode = "V3"
	LeadV4  LeadCode = "V4"
	LeadV5  LeadCode = "V5"
	LeadV6  LeadCode = "V6"
)

var leadLabels = map[LeadCode]string{
	LeadAVR: "aVR",
	LeadAVL: "aVL",
	LeadAVF: "aVF",
}

// Label is the display name of the lead.
func (c LeadCode) Label() string {
	if l, ok := leadLabels[c]; ok {
		return l
	}
	if c == "" {
		return "?"
	}
	return string(c)
}

// Labels maps codes to their display labels, index aligned.
func Labels(codes []LeadCode) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = c.Label()
	}
	return out
}

// WaveType classifies a fiducial point of a beat.
type WaveType int

const (
	WavePOnset WaveType = iota
	WavePPeak
	WavePOffset
	WaveQRSOnset
	WaveRPeak
	WaveQRSOffset
	WaveTOnset
	WaveTPeak
	WaveTOffset
)

var waveNames = [...]string{"Pon", "P", "Poff", "QRSon", "R", "QRSoff", "Ton", "T", "Toff"}

func (w WaveType) String() string {
	if w < 0 || int(w) >= len(waveNames) {
		return fmt.Sprintf("wave(%d)", int(w))
	}
	return waveNames[w]
}

// IsPeak reports whether the wave point marks a peak rather than a boundary.
func (w WaveType) IsPeak() bool {
	return w == WavePPeak || w == WaveRPeak || w == WaveTPeak
}

// ParseWaveType accepts the names produced by String.
func ParseWaveType(s string) (WaveType, bool) {
	for i, n := range waveNames {
		if n == s {
			return WaveType(i), true
		}
	}
	return 0, false
}

// Beat is one detected heart beat, all positions are sample indexes.
type Beat struct {
	Onset  int    `json:"onset"`
	Peak   int    `json:"peak"`
	Offset int    `json:"offset"`
	Label  string `json:"label"`
}

// WavePoint is a fiducial point. Lead -1 applies to every lead.
type WavePoint struct {
	Type   WaveType `json:"-"`
	Sample int      `json:"sample"`
	Lead   int      `json:"lead"`
}

// Annotation is a labelled interval of the record.
type Annotation struct {
	Code  string `json:"code"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Record is one loaded ECG: per-lead sample arrays in microvolts plus the
// beats and annotations derived from them.
type Record struct {
	Name        string
	SampleRate  float64
	Leads       []LeadCode
	Samples     [][]float64
	Beats       []Beat
	WavePoints  []WavePoint
	Annotations []Annotation
}

var (
	ErrNoLeads      = errors.New("ecg: record has no leads")
	ErrLeadMismatch = errors.New("ecg: lead codes and sample arrays differ in count")
	ErrSampleRate   = errors.New("ecg: sample rate must be positive")
)

// Validate checks the structural invariants every consumer relies on.
func (r *Record) Validate() error {
	if r == nil || len(r.Leads) == 0 {
		return ErrNoLeads
	}
	if len(r.Leads) != len(r.Samples) {
		return fmt.Errorf("%w: %d codes, %d arrays", ErrLeadMismatch, len(r.Leads), len(r.Samples))
	}
	if r.SampleRate <= 0 {
		return ErrSampleRate
	}
	return nil
}

// Len is the number of samples of the longest lead.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.Samples {
		n = max(n, len(s))
	}
	return n
}

// Value returns the amplitude of lead at sample i, clamping i to the lead.
func (r *Record) Value(lead, i int) (float64, bool) {
	if r == nil || lead < 0 || lead >= len(r.Samples) {
		return 0, false
	}
	s := r.Samples[lead]
	if len(s) == 0 {
		return 0, false
	}
	i = min(max(i, 0), len(s)-1)
	return s[i], true
}

// Duration of the record in seconds.
func (r *Record) Duration() float64 {
	if r == nil || r.SampleRate <= 0 {
		return 0
	}
	return float64(r.Len()) / r.SampleRate
}

// BeatAt returns the index of the beat whose onset..offset covers sample,
// or the nearest peak when no beat covers it.
func (r *Record) BeatAt(sample int) (int, bool) {
	if r == nil || len(r.Beats) == 0 {
		return 0, false
	}
	best, bestD := -1, 1<<31-1
	for i, b := range r.Beats {
		if sample >= b.Onset && sample <= b.Offset {
			return i, true
		}
		d := b.Peak - sample
		if d < 0 {
			d = -d
		}
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best, best >= 0
}

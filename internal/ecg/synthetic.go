package ecg

import "math"

type wave struct {
	at, width, amp float64 // seconds from beat start, seconds, millivolts
}

// one PQRST complex, times relative to the beat start
var complexShape = []wave{
	{0.10, 0.025, 0.15},  // P
	{0.19, 0.008, -0.10}, // Q
	{0.21, 0.010, 1.10},  // R
	{0.23, 0.009, -0.25}, // S
	{0.45, 0.045, 0.30},  // T
}

var leadGain = map[LeadCode]float64{
	LeadI: 0.7, LeadII: 1.0, LeadIII: 0.5, LeadAVR: -0.8, LeadAVL: 0.4, LeadAVF: 0.7,
	LeadV1: -0.6, LeadV2: 0.9, LeadV3: 1.1, LeadV4: 1.3, LeadV5: 1.1, LeadV6: 0.9,
}

// Synthetic builds a deterministic record with regular beats, used when the
// viewer starts without a file. rr is the beat interval in seconds.
func Synthetic(leads []LeadCode, sampleRate, seconds, rr float64) *Record {
	if len(leads) == 0 {
		leads = []LeadCode{LeadI, LeadII, LeadV1}
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if rr <= 0 {
		rr = 0.8
	}
	n := int(seconds * sampleRate)
	rec := &Record{
		Name:       "synthetic",
		SampleRate: sampleRate,
		Leads:      append([]LeadCode(nil), leads...),
		Samples:    make([][]float64, len(leads)),
	}
	for li, code := range leads {
		gain, ok := leadGain[code]
		if !ok {
			gain = 1
		}
		s := make([]float64, n)
		for i := range s {
			t := float64(i) / sampleRate
			k := math.Floor(t / rr)
			local := t - k*rr
			v := 0.0
			for _, w := range complexShape {
				d := (local - w.at) / w.width
				v += w.amp * math.Exp(-0.5*d*d)
			}
			// slow baseline wander so the trace is not perfectly periodic
			v += 0.05 * math.Sin(2*math.Pi*0.3*t+float64(li))
			s[i] = math.Round(v * gain * 1000)
		}
		rec.Samples[li] = s
	}
	at := func(sec float64) int { return int(math.Round(sec * sampleRate)) }
	for k := 0; ; k++ {
		start := float64(k) * rr
		off := at(start + 0.27)
		if off >= n {
			break
		}
		b := Beat{Onset: at(start + 0.17), Peak: at(start + 0.21), Offset: off, Label: "N"}
		rec.Beats = append(rec.Beats, b)
		rec.WavePoints = append(rec.WavePoints,
			WavePoint{Type: WavePOnset, Sample: at(start + 0.05), Lead: -1},
			WavePoint{Type: WavePPeak, Sample: at(start + 0.10), Lead: -1},
			WavePoint{Type: WavePOffset, Sample: at(start + 0.15), Lead: -1},
			WavePoint{Type: WaveQRSOnset, Sample: b.Onset, Lead: -1},
			WavePoint{Type: WaveRPeak, Sample: b.Peak, Lead: -1},
			WavePoint{Type: WaveQRSOffset, Sample: b.Offset, Lead: -1},
		)
		if t := at(start + 0.45); t < n {
			rec.WavePoints = append(rec.WavePoints, WavePoint{Type: WaveTPeak, Sample: t, Lead: -1})
		}
	}
	if n > 0 {
		rec.Annotations = []Annotation{
			{Code: "SR", Start: 0, End: n / 2, Text: "sinus rhythm"},
			{Code: "ART", Start: n / 2, End: min(n-1, n/2+at(1.5)), Text: "artifact"},
		}
	}
	return rec
}

package ecg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadJSON reads a record file. The document carries "sampleRate",
// "leads" (codes), "signal" (one array per lead, microvolts) and optional
// "beats", "wavePoints" and "annotations" lists.
func LoadJSON(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	rec, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	rec.Name = filepath.Base(path)
	return rec, nil
}

// ParseJSON decodes a record document.
func ParseJSON(data []byte) (*Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	rec := &Record{}
	num := func(v any) (float64, bool) {
		f, ok := v.(float64)
		return f, ok
	}
	integer := func(m map[string]any, key string) int {
		f, _ := num(m[key])
		return int(f)
	}
	str := func(m map[string]any, key string) string {
		s, _ := m[key].(string)
		return s
	}
	objects := func(key string) []map[string]any {
		arr, _ := raw[key].([]any)
		out := make([]map[string]any, 0, len(arr))
		for _, el := range arr {
			if m, ok := el.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}

	if sr, ok := num(raw["sampleRate"]); ok {
		rec.SampleRate = sr
	}
	if leads, ok := raw["leads"].([]any); ok {
		for _, l := range leads {
			if s, ok := l.(string); ok {
				rec.Leads = append(rec.Leads, LeadCode(strings.TrimSpace(s)))
			}
		}
	}
	if sig, ok := raw["signal"].([]any); ok {
		for _, lead := range sig {
			arr, ok := lead.([]any)
			if !ok {
				return nil, errors.New("signal: lead is not an array")
			}
			samples := make([]float64, 0, len(arr))
			for _, v := range arr {
				f, ok := num(v)
				if !ok {
					return nil, errors.New("signal: sample is not a number")
				}
				samples = append(samples, f)
			}
			rec.Samples = append(rec.Samples, samples)
		}
	}
	for _, b := range objects("beats") {
		rec.Beats = append(rec.Beats, Beat{
			Onset:  integer(b, "onset"),
			Peak:   integer(b, "peak"),
			Offset: integer(b, "offset"),
			Label:  str(b, "label"),
		})
	}
	for _, w := range objects("wavePoints") {
		t, ok := ParseWaveType(str(w, "type"))
		if !ok {
			continue
		}
		lead := -1
		if _, has := w["lead"]; has {
			lead = integer(w, "lead")
		}
		rec.WavePoints = append(rec.WavePoints, WavePoint{Type: t, Sample: integer(w, "sample"), Lead: lead})
	}
	for _, a := range objects("annotations") {
		rec.Annotations = append(rec.Annotations, Annotation{
			Code:  str(a, "code"),
			Start: integer(a, "start"),
			End:   integer(a, "end"),
			Text:  str(a, "text"),
		})
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

package ecg

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultSampleRate is used for CSV files, which carry no rate of their own
// unless a time column lets us derive it.
const DefaultSampleRate = 500

// LoadCSV reads one column per lead, header row holding the lead codes.
// A leading time column (t|time|sec|seconds, case-insensitive) is skipped
// and used to derive the sample rate.
func LoadCSV(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	header := recs[0]
	idxTime := -1
	var cols []int
	rec := &Record{Name: filepath.Base(path), SampleRate: DefaultSampleRate}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "t", "time", "sec", "seconds":
			if idxTime == -1 {
				idxTime = i
				continue
			}
		}
		cols = append(cols, i)
		rec.Leads = append(rec.Leads, LeadCode(strings.TrimSpace(h)))
	}
	if len(cols) == 0 {
		return nil, errors.New("csv: no lead columns found")
	}
	rec.Samples = make([][]float64, len(cols))
	var t0, t1 float64
	rows := 0
	for _, row := range recs[1:] {
		ok := true
		vals := make([]float64, len(cols))
		for j, c := range cols {
			if c >= len(row) {
				ok = false
				break
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		if idxTime >= 0 && idxTime < len(row) {
			if t, err := strconv.ParseFloat(strings.TrimSpace(row[idxTime]), 64); err == nil {
				if rows == 0 {
					t0 = t
				}
				t1 = t
			}
		}
		for j, v := range vals {
			rec.Samples[j] = append(rec.Samples[j], v)
		}
		rows++
	}
	if rows == 0 {
		return nil, errors.New("csv: no valid sample rows parsed")
	}
	if idxTime >= 0 && rows > 1 && t1 > t0 {
		rec.SampleRate = float64(rows-1) / (t1 - t0)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Load dispatches on the file extension.
func Load(path string) (*Record, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, errors.New("unsupported record file: " + ext)
	}
}

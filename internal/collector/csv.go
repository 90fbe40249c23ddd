package collector

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"ChecklistSentinel/internal/model"
)

// CSVSource reads bars from a local CSV file with a header row
// (Date or Time, Open, High, Low, Close, optional Volume). The file is re-read on every fetch.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source for the given file.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return "csv" }

// FetchBars returns at most limit of the most recent bars. limit <= 0 returns all of them.
func (s *CSVSource) FetchBars(_ string, limit int) ([]model.OHLCV, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open bars: %w", err)
	}
	defer f.Close()

	bars, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseCSV decodes bars from CSV text and sorts them chronologically.
func ParseCSV(r io.Reader) ([]model.OHLCV, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	timeCol, ok := cols["date"]
	if !ok {
		if timeCol, ok = cols["time"]; !ok {
			return nil, errors.New("missing Date or Time column")
		}
	}
	for _, c := range []string{"open", "high", "low", "close"} {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing %s column", c)
		}
	}
	volCol, hasVol := cols["volume"]

	var bars []model.OHLCV
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ts, err := parseTime(rec[timeCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bar := model.OHLCV{Time: ts}
		fields := []struct {
			col string
			dst *float64
		}{
			{"open", &bar.Open}, {"high", &bar.High}, {"low", &bar.Low}, {"close", &bar.Close},
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[f.col]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, f.col, err)
			}
			*f.dst = v
		}
		if hasVol && volCol < len(rec) && strings.TrimSpace(rec[volCol]) != "" {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[volCol]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: volume: %w", line, err)
			}
			bar.Volume = v
		}
		bars = append(bars, bar)
	}

	// Ensure chronological order
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	if sec, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if sec > 1e12 {
			return time.UnixMilli(sec).UTC(), nil
		}
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", raw)
}

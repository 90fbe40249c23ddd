package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// BarSeries holds the bars read for one evaluation, oldest first.
type BarSeries struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Last returns the most recent bar and its index, or false when the series is empty.
func (s *BarSeries) Last() (OHLCV, int, bool) {
	if s == nil || len(s.Bars) == 0 {
		return OHLCV{}, -1, false
	}
	i := len(s.Bars) - 1
	return s.Bars[i], i, true
}

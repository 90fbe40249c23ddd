package collector

import (
	"fmt"
	"math"
	"time"

	"ChecklistSentinel/internal/model"
	"ChecklistSentinel/internal/strategy"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Price float64
	Bars  []model.OHLCV
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchBars(_ string, limit int) ([]model.OHLCV, error) {
	if m.Bars != nil {
		if limit > 0 && len(m.Bars) > limit {
			return m.Bars[len(m.Bars)-limit:], nil
		}
		return m.Bars, nil
	}
	if limit <= 0 {
		limit = 200
	}
	return generateMockBars(m.Price, limit), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	now := time.Now().Truncate(time.Hour)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.02*math.Sin(float64(i)/5))
		bars[i] = model.OHLCV{
			Time:   now.Add(-time.Duration(count-i) * time.Hour),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Result is one evaluation of the latest closed bar.
type Result struct {
	Series  *model.BarSeries
	Signals *model.BarSignals
}

// Collector orchestrates bar reading and divergence evaluation.
type Collector struct {
	Source    BarSource
	Symbol    string
	Limit     int
	Evaluator *strategy.Evaluator
}

// NewCollector creates a new Collector.
func NewCollector(source BarSource, symbol string, limit int, ev *strategy.Evaluator) *Collector {
	return &Collector{Source: source, Symbol: symbol, Limit: limit, Evaluator: ev}
}

// Collect reads bars and evaluates the divergence rules on the most recent one.
func (c *Collector) Collect() (*Result, error) {
	bars, err := c.Source.FetchBars(c.Symbol, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetch bars: %s returned no bars", c.Source.Name())
	}
	sig, err := c.Evaluator.Evaluate(bars)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	return &Result{
		Series:  &model.BarSeries{Symbol: c.Symbol, Bars: bars, FetchedAt: time.Now()},
		Signals: sig,
	}, nil
}

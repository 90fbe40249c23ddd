package strategy

import (
	"testing"
	"time"

	"ChecklistSentinel/internal/model"
)

func TestCrossover(t *testing.T) {
	tests := []struct {
		name                           string
		fastPrev, slowPrev, fast, slow float64
		up, down                       bool
	}{
		{"cross up", 9, 10, 11, 10, true, false},
		{"cross up from touch", 10, 10, 10.5, 10, true, false},
		{"cross down", 11, 10, 9, 10, false, true},
		{"cross down from touch", 10, 10, 9.5, 10, false, true},
		{"stays above", 11, 10, 12, 10, false, false},
		{"stays below", 9, 10, 8, 10, false, false},
		{"lands on slow", 9, 10, 10, 10, false, false},
	}
	for _, tt := range tests {
		up, down := Crossover(tt.fastPrev, tt.slowPrev, tt.fast, tt.slow)
		if up != tt.up || down != tt.down {
			t.Errorf("%s: expected (%v, %v), got (%v, %v)", tt.name, tt.up, tt.down, up, down)
		}
	}
}

func flatBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.OHLCV{Time: t0.Add(time.Duration(i) * time.Hour), Open: 100, High: 101, Low: 99, Close: 100}
	}
	return bars
}

func TestBreakout(t *testing.T) {
	bars := flatBars(25)
	if up, down := Breakout(bars, 24, 20); up || down {
		t.Error("close inside the range must not break out")
	}

	bars[24].Close = 101.5
	if up, down := Breakout(bars, 24, 20); !up || down {
		t.Errorf("expected high breakout, got (%v, %v)", up, down)
	}
	bars[24].Close = 101
	if up, _ := Breakout(bars, 24, 20); up {
		t.Error("close equal to the prior high is not a breakout")
	}
	bars[24].Close = 98.5
	if up, down := Breakout(bars, 24, 20); up || !down {
		t.Errorf("expected low breakout, got (%v, %v)", up, down)
	}

	// A spike older than the window does not widen the range.
	bars[2].High = 200
	bars[24].Close = 101.5
	if up, _ := Breakout(bars, 24, 20); !up {
		t.Error("bars outside the window must be ignored")
	}
	if up, down := Breakout(bars, 19, 20); up || down {
		t.Error("fewer than window prior bars must not signal")
	}
}

func TestEvaluate_CrossoverAndBreakout(t *testing.T) {
	e, err := NewEvaluator(Config{Crossovers: true, FastMA: 3, SlowMA: 5, Breakouts: true})
	if err != nil {
		t.Fatal(err)
	}
	bars := flatBars(40)
	bars = append(bars, model.OHLCV{Time: bars[39].Time.Add(time.Hour), Open: 100, High: 111, Low: 100, Close: 110})

	sig, err := e.Evaluate(bars)
	if err != nil {
		t.Fatal(err)
	}
	if !sig.Ready {
		t.Fatal("expected ready signals")
	}
	if !sig.CrossUp || sig.CrossDown {
		t.Errorf("expected fast SMA to cross above slow, fast=%.2f slow=%.2f", sig.FastMA, sig.SlowMA)
	}
	if !sig.BreakoutHigh || sig.BreakoutLow {
		t.Error("expected a high breakout")
	}

	kinds := map[model.SignalKind]bool{}
	for _, ev := range sig.Events() {
		kinds[ev.Kind] = true
	}
	if !kinds[model.CrossUp] || !kinds[model.BreakoutHigh] {
		t.Errorf("events missing crossover or breakout: %v", kinds)
	}
}

func TestNewEvaluator_TrendValidation(t *testing.T) {
	bad := []Config{
		{FastMA: 21, SlowMA: 9},
		{FastMA: 1, SlowMA: 5},
		{FastMA: 10, SlowMA: 10},
		{BreakoutWindow: -1},
	}
	for _, cfg := range bad {
		if _, err := NewEvaluator(cfg); err == nil {
			t.Errorf("%+v: expected validation error", cfg)
		}
	}
	e, err := NewEvaluator(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if c := e.Config(); c.FastMA != 9 || c.SlowMA != 21 || c.BreakoutWindow != 20 {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

package strategy

import "ChecklistSentinel/internal/model"

// DefaultBreakoutWindow is the look-back of the breakout rule.
const DefaultBreakoutWindow = 20

// Crossover reports whether the fast average crossed the slow one between the previous and the current bar.
// Touching counts as the starting side, so a cross needs a strict move through the slow average.
func Crossover(fastPrev, slowPrev, fast, slow float64) (up, down bool) {
	up = fastPrev <= slowPrev && fast > slow
	down = fastPrev >= slowPrev && fast < slow
	return up, down
}

// Breakout reports whether the close of bar i leaves the range of the window bars before it.
// It returns false for both when fewer than window bars precede i.
func Breakout(bars []model.OHLCV, i, window int) (up, down bool) {
	if window < 1 || i < window || i >= len(bars) {
		return false, false
	}
	hi, lo := bars[i-window].High, bars[i-window].Low
	for _, b := range bars[i-window+1 : i] {
		if b.High > hi {
			hi = b.High
		}
		if b.Low < lo {
			lo = b.Low
		}
	}
	c := bars[i].Close
	return c > hi, c < lo
}

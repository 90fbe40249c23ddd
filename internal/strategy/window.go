package strategy

import "ChecklistSentinel/internal/model"

// Window is the three-bar view the divergence rules read.
// Index 0 is the current bar, 1 the previous bar, 2 two bars prior.
type Window struct {
	Osc   [3]float64
	High  [3]float64
	Low   [3]float64
	Close [3]float64
}

// WindowAt builds the window ending at bar i. It returns false when fewer than three bars exist.
func WindowAt(osc []float64, bars []model.OHLCV, i int) (Window, bool) {
	if i < 2 || i >= len(bars) || i >= len(osc) {
		return Window{}, false
	}
	var w Window
	for k := 0; k < 3; k++ {
		b := bars[i-k]
		w.Osc[k] = osc[i-k]
		w.High[k] = b.High
		w.Low[k] = b.Low
		w.Close[k] = b.Close
	}
	return w, true
}

package strategy

// BullishDivergence fires when the oscillator rises through the previous bar
// while the previous bar printed a lower high.
//
//	osc[1] > osc[2] && osc[1] < osc[0] && high[1] < high[2]
func BullishDivergence(w Window) bool {
	return w.Osc[1] > w.Osc[2] && w.Osc[1] < w.Osc[0] && w.High[1] < w.High[2]
}

// BearishDivergence mirrors BullishDivergence on the lows.
//
//	osc[1] < osc[2] && osc[1] > osc[0] && low[1] > low[2]
func BearishDivergence(w Window) bool {
	return w.Osc[1] < w.Osc[2] && w.Osc[1] > w.Osc[0] && w.Low[1] > w.Low[2]
}

// SimpleBullish is the legacy rule: close falls while the oscillator rises.
// No price-extreme comparison.
func SimpleBullish(w Window) bool {
	return w.Close[0] < w.Close[1] && w.Osc[0] > w.Osc[1]
}

// SimpleBearish is the legacy rule: close rises while the oscillator falls.
func SimpleBearish(w Window) bool {
	return w.Close[0] > w.Close[1] && w.Osc[0] < w.Osc[1]
}

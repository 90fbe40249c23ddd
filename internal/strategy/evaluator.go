package strategy

import (
	"fmt"

	"ChecklistSentinel/internal/calculator"
	"ChecklistSentinel/internal/model"
)

// MaxMomentumLength bounds the configurable RSI length.
const MaxMomentumLength = 500

// Config selects the rules the evaluator runs.
type Config struct {
	MomentumLength int  // RSI length
	Simplified     bool // also run the legacy close-vs-RSI rule

	Crossovers     bool // fast/slow SMA crossover rule
	FastMA         int
	SlowMA         int
	Breakouts      bool // close beyond the prior BreakoutWindow bars' range
	BreakoutWindow int
}

// Evaluator computes divergence, crossover and breakout flags from a bar series.
type Evaluator struct {
	cfg    Config
	warmup int
}

// Oscillators are the indicator series the rules read, one value per bar.
type Oscillators struct {
	RSI    []float64
	CCI    []float64
	FastMA []float64
	SlowMA []float64
}

// NewEvaluator validates the config and returns an Evaluator.
func NewEvaluator(cfg Config) (*Evaluator, error) {
	if cfg.MomentumLength == 0 {
		cfg.MomentumLength = calculator.DefaultRSILength
	}
	if cfg.MomentumLength < 2 || cfg.MomentumLength > MaxMomentumLength {
		return nil, fmt.Errorf("momentum length %d out of range [2, %d]", cfg.MomentumLength, MaxMomentumLength)
	}
	if cfg.FastMA == 0 {
		cfg.FastMA = calculator.DefaultFastMA
	}
	if cfg.SlowMA == 0 {
		cfg.SlowMA = calculator.DefaultSlowMA
	}
	if cfg.BreakoutWindow == 0 {
		cfg.BreakoutWindow = DefaultBreakoutWindow
	}
	if cfg.FastMA < 2 || cfg.SlowMA <= cfg.FastMA || cfg.SlowMA > MaxMomentumLength {
		return nil, fmt.Errorf("moving averages %d/%d: need 2 <= fast < slow <= %d", cfg.FastMA, cfg.SlowMA, MaxMomentumLength)
	}
	if cfg.BreakoutWindow < 1 || cfg.BreakoutWindow > MaxMomentumLength {
		return nil, fmt.Errorf("breakout window %d out of range [1, %d]", cfg.BreakoutWindow, MaxMomentumLength)
	}
	warmup := calculator.RSIWarmup(cfg.MomentumLength)
	if w := calculator.CCIWarmup(calculator.ChannelLength); w > warmup {
		warmup = w
	}
	return &Evaluator{cfg: cfg, warmup: warmup}, nil
}

// Config returns the evaluator's settings.
func (e *Evaluator) Config() Config { return e.cfg }

// MinBars is the number of bars needed before the last bar can produce signals.
func (e *Evaluator) MinBars() int { return e.warmup + 3 }

// Oscillators computes the indicator series for the bars.
func (e *Evaluator) Oscillators(bars []model.OHLCV) (Oscillators, error) {
	var osc Oscillators
	var err error
	if osc.RSI, err = calculator.RSISeries(bars, e.cfg.MomentumLength); err != nil {
		return osc, fmt.Errorf("rsi: %w", err)
	}
	if osc.CCI, err = calculator.CCISeries(bars, calculator.ChannelLength); err != nil {
		return osc, fmt.Errorf("cci: %w", err)
	}
	if e.cfg.Crossovers {
		if osc.FastMA, err = calculator.SMASeries(bars, e.cfg.FastMA); err != nil {
			return osc, fmt.Errorf("fast sma: %w", err)
		}
		if osc.SlowMA, err = calculator.SMASeries(bars, e.cfg.SlowMA); err != nil {
			return osc, fmt.Errorf("slow sma: %w", err)
		}
	}
	return osc, nil
}

// EvaluateAt applies every rule to the bar at index i using precomputed oscillators.
// Bars whose three-bar window reaches into oscillator warm-up are returned with Ready=false.
// Crossover and breakout flags additionally wait for their own warm-up.
func (e *Evaluator) EvaluateAt(bars []model.OHLCV, osc Oscillators, i int) model.BarSignals {
	sig := model.BarSignals{Index: i}
	if i < 0 || i >= len(bars) {
		return sig
	}
	b := bars[i]
	sig.Time, sig.High, sig.Low, sig.Close = b.Time, b.High, b.Low, b.Close
	if i < len(osc.RSI) {
		sig.Momentum = osc.RSI[i]
	}
	if i < len(osc.CCI) {
		sig.Channel = osc.CCI[i]
	}
	if i < len(osc.FastMA) && i < len(osc.SlowMA) {
		sig.FastMA, sig.SlowMA = osc.FastMA[i], osc.SlowMA[i]
	}
	if i-2 < e.warmup {
		return sig
	}

	mw, ok := WindowAt(osc.RSI, bars, i)
	if !ok {
		return sig
	}
	cw, ok := WindowAt(osc.CCI, bars, i)
	if !ok {
		return sig
	}
	sig.Ready = true
	sig.MomentumBullish = BullishDivergence(mw)
	sig.MomentumBearish = BearishDivergence(mw)
	sig.ChannelBullish = BullishDivergence(cw)
	sig.ChannelBearish = BearishDivergence(cw)
	if e.cfg.Simplified {
		sig.SimpleBullish = SimpleBullish(mw)
		sig.SimpleBearish = SimpleBearish(mw)
	}
	if e.cfg.Crossovers && i-1 >= calculator.SMAWarmup(e.cfg.SlowMA) && i < len(osc.SlowMA) {
		sig.CrossUp, sig.CrossDown = Crossover(osc.FastMA[i-1], osc.SlowMA[i-1], osc.FastMA[i], osc.SlowMA[i])
	}
	if e.cfg.Breakouts {
		sig.BreakoutHigh, sig.BreakoutLow = Breakout(bars, i, e.cfg.BreakoutWindow)
	}
	return sig
}

// Evaluate returns the signals for the most recent bar.
func (e *Evaluator) Evaluate(bars []model.OHLCV) (*model.BarSignals, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars provided")
	}
	osc, err := e.Oscillators(bars)
	if err != nil {
		return nil, err
	}
	sig := e.EvaluateAt(bars, osc, len(bars)-1)
	return &sig, nil
}

// Replay evaluates every bar in order, the way a host re-runs the rules on each close.
func (e *Evaluator) Replay(bars []model.OHLCV) ([]model.BarSignals, error) {
	osc, err := e.Oscillators(bars)
	if err != nil {
		return nil, err
	}
	out := make([]model.BarSignals, len(bars))
	for i := range bars {
		out[i] = e.EvaluateAt(bars, osc, i)
	}
	return out, nil
}

package checklist

import (
	"fmt"
	"sort"

	"ChecklistSentinel/internal/model"
)

// Category labels shared by the built-in revisions.
const (
	catTrend        = "Trend"
	catStructure    = "Structure"
	catIndicators   = "Indicators"
	catLiquidity    = "Liquidity"
	catVolumeLiq    = "Volume & Liquidity"
	catContext      = "Context"
	catConfirmation = "Confirmation"
	catRisk         = "Risk"
)

var fourTierLadder = []model.Tier{
	{Label: "Professional", MinScore: 90, Color: "blue"},
	{Label: "Classic", MinScore: 70, Color: "green"},
	{Label: "Gambling", MinScore: 60, Color: "yellow"},
}

var weakTier = model.Tier{Label: "Weak", Color: "red"}

// DefaultRevision is the revision used when none is configured.
const DefaultRevision = "v3"

var revisions = map[string]*Rubric{
	"v1": MustRubric(Spec{
		Name: "v1",
		Criteria: []model.Criterion{
			{Key: "trend_alignment", Name: "Trend alignment", Category: catTrend, Weight: 20, Note: "Entry follows the dominant trend"},
			{Key: "wave_count", Name: "Wave count", Category: catStructure, Weight: 10, Note: "Impulse counted by the canon"},
			{Key: "fib_extension", Name: "Fibonacci extension", Category: catStructure, Weight: 9, Note: "Extension reached 227-261"},
			{Key: "trendline_break", Name: "Trendline break", Category: catTrend, Weight: 10, Note: "Key sign of a direction change"},
			{Key: "rsi_divergence", Name: "RSI divergence", Category: catIndicators, Weight: 7},
			{Key: "cci_divergence", Name: "CCI divergence", Category: catIndicators, Weight: 7},
			{Key: "rsi_extreme", Name: "RSI near 20/80", Category: catIndicators, Weight: 4},
			{Key: "liquidity_zone", Name: "Liquidity zone", Category: catLiquidity, Weight: 2, Note: "Price heads into stop/liquidation clusters"},
			{Key: "volume_above_average", Name: "Volume above average", Category: catIndicators, Weight: 4},
			{Key: "btc_dominance", Name: "BTC and BTC.D agree", Category: catContext, Weight: 4},
			{Key: "higher_timeframe", Name: "Higher timeframe agrees", Category: catContext, Weight: 4},
			{Key: "cci_extreme", Name: "CCI near +/-200", Category: catIndicators, Weight: 2},
			{Key: "take_profit_room", Name: "Take profit above 1.5%", Category: catRisk, Weight: 6},
			{Key: "pattern_template", Name: "Similar pattern seen", Category: catContext, Weight: 2},
			{Key: "correction_symmetry", Name: "Correction depths match", Category: catStructure, Weight: 3},
			{Key: "no_dagger_wicks", Name: "No dagger wicks", Category: catRisk, Weight: 4},
			{Key: "news_clear", Name: "No scheduled news", Category: catRisk, Weight: 2},
		},
		Ladder:        fourTierLadder,
		Default:       weakTier,
		AlertScore:    70,
		LegacySignals: true,
	}),
	"v2": MustRubric(Spec{
		Name: "v2",
		Criteria: []model.Criterion{
			{Key: "trend_alignment", Name: "Trend alignment", Category: catTrend, Weight: 15},
			{Key: "trendline_break", Name: "Trendline break", Category: catTrend, Weight: 8},
			{Key: "higher_timeframe", Name: "Higher timeframe agrees", Category: catTrend, Weight: 6},
			{Key: "wave_count", Name: "Wave count", Category: catStructure, Weight: 12},
			{Key: "fib_extension", Name: "Fibonacci extension", Category: catStructure, Weight: 8},
			{Key: "correction_symmetry", Name: "Correction depths match", Category: catStructure, Weight: 5},
			{Key: "rsi_divergence", Name: "RSI divergence", Category: catIndicators, Weight: 8},
			{Key: "cci_divergence", Name: "CCI divergence", Category: catIndicators, Weight: 6},
			{Key: "rsi_extreme", Name: "RSI near 20/80", Category: catIndicators, Weight: 4},
			{Key: "cci_extreme", Name: "CCI near +/-200", Category: catIndicators, Weight: 2},
			{Key: "volume_above_average", Name: "Volume above average", Category: catVolumeLiq, Weight: 6},
			{Key: "liquidity_zone", Name: "Liquidity zone", Category: catVolumeLiq, Weight: 2},
			{Key: "btc_dominance", Name: "BTC and BTC.D agree", Category: catContext, Weight: 4},
			{Key: "pattern_template", Name: "Similar pattern seen", Category: catContext, Weight: 3},
			{Key: "take_profit_room", Name: "Take profit above 1.5%", Category: catRisk, Weight: 7},
			{Key: "no_dagger_wicks", Name: "No dagger wicks", Category: catRisk, Weight: 4},
		},
		Ladder:        fourTierLadder,
		Default:       weakTier,
		AlertScore:    70,
		LegacySignals: true,
	}),
	"v3": MustRubric(Spec{
		Name: "v3",
		Criteria: []model.Criterion{
			{Key: "trend_alignment", Name: "Trend alignment", Category: catTrend, Weight: 18},
			{Key: "trendline_break", Name: "Trendline break", Category: catTrend, Weight: 10},
			{Key: "higher_timeframe", Name: "Higher timeframe agrees", Category: catTrend, Weight: 8},
			{Key: "wave_count", Name: "Wave count", Category: catStructure, Weight: 12},
			{Key: "fib_extension", Name: "Fibonacci extension", Category: catStructure, Weight: 8},
			{Key: "rsi_divergence", Name: "RSI divergence", Category: catIndicators, Weight: 10},
			{Key: "cci_divergence", Name: "CCI divergence", Category: catIndicators, Weight: 8},
			{Key: "rsi_extreme", Name: "RSI near 20/80", Category: catIndicators, Weight: 4},
			{Key: "volume_above_average", Name: "Volume above average", Category: catConfirmation, Weight: 6},
			{Key: "btc_dominance", Name: "BTC and BTC.D agree", Category: catConfirmation, Weight: 4},
			{Key: "take_profit_room", Name: "Take profit above 1.5%", Category: catRisk, Weight: 8},
			{Key: "no_dagger_wicks", Name: "No dagger wicks", Category: catRisk, Weight: 4},
		},
		Ladder: []model.Tier{
			{Label: "Strong", MinScore: 70, Color: "green"},
			{Label: "Medium", MinScore: 60, Color: "yellow"},
		},
		Default:    weakTier,
		AlertScore: 70,
	}),
	"wave": MustRubric(Spec{
		Name: "wave",
		Criteria: []model.Criterion{
			{Key: "five_waves", Name: "Five waves by the canon", Category: "Wave analysis", Weight: 15, Note: "A full Elliott cycle is the backbone of the scenario"},
			{Key: "correction_depth", Name: "Equal correction depth", Category: "Wave analysis", Weight: 6, Note: "Corrections should be comparable in depth"},
			{Key: "fib_extension_227_261", Name: "Fibonacci extension 227-261", Category: "Wave analysis", Weight: 8, Note: "Wave extension confirms trend strength"},
			{Key: "wedge_breakout", Name: "Sloped formation breakout", Category: "Wave analysis", Weight: 5, Note: "Leaving the local formation confirms the phase change"},
			{Key: "student_wave3", Name: "Student indicator confirms wave 3", Category: catIndicators, Weight: 6},
			{Key: "divergence_1h", Name: "Divergence on 1h", Category: catIndicators, Weight: 3, Note: "Local, early signal"},
			{Key: "divergence_4h", Name: "Divergence on 4h", Category: catIndicators, Weight: 4, Note: "Mid-term, strengthens the entry"},
			{Key: "divergence_1d", Name: "Divergence on 1d", Category: catIndicators, Weight: 5, Note: "Major signal"},
			{Key: "cci_200", Name: "CCI near +/-200", Category: catIndicators, Weight: 2, Note: "Overbought/oversold"},
			{Key: "rsi_20_80", Name: "RSI near 20/80", Category: catIndicators, Weight: 4, Note: "Confirms an extreme market state"},
			{Key: "liquidity_zones", Name: "Move into liquidity zones (50x/100x)", Category: catVolumeLiq, Weight: 6, Note: "Price seeks stop and liquidation clusters"},
			{Key: "volume_above_average", Name: "Volume above average", Category: catVolumeLiq, Weight: 6, Note: "Confirms the strength of the move"},
			{Key: "trendline_break", Name: "Trendline break", Category: "Trend & context", Weight: 5, Note: "Key sign of a direction change"},
			{Key: "with_trend", Name: "Trading with the trend", Category: "Trend & context", Weight: 5, Note: "Following the global trend lowers risk"},
			{Key: "higher_timeframe", Name: "Higher timeframe agrees", Category: "Trend & context", Weight: 5, Note: "A lower timeframe signal needs higher timeframe support"},
			{Key: "btc_dominance", Name: "BTC and BTC.D checked for alts", Category: "Trend & context", Weight: 3, Note: "Altcoins depend on bitcoin"},
			{Key: "pattern_template", Name: "Similar pattern template", Category: "Trend & context", Weight: 3, Note: "History repeats, not always"},
			{Key: "no_dagger", Name: "No dagger", Category: "Risk & filters", Weight: 3, Note: "No sharp wicks without structure"},
			{Key: "take_profit_1_5", Name: "Take profit above 1.5%", Category: "Risk & filters", Weight: 6, Note: "Target must exceed noise for a sane RR"},
		},
		Ladder: []model.Tier{
			{Label: "Excellent", MinScore: 95, Color: "blue"},
			{Label: "Good", MinScore: 80, Color: "green"},
			{Label: "Average", MinScore: 50, Color: "yellow"},
		},
		Default:    model.Tier{Label: "Doubtful", Color: "red"},
		AlertScore: 80,
	}),
}

// Revision returns a built-in rubric by name.
func Revision(name string) (*Rubric, error) {
	r, ok := revisions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownRevision, name, RevisionNames())
	}
	return r, nil
}

// RevisionNames lists the built-in revisions in sorted order.
func RevisionNames() []string {
	names := make([]string, 0, len(revisions))
	for n := range revisions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

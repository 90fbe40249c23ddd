package model

import "time"

// Direction of a divergence.
type Direction string

const (
	Bullish Direction = "BULLISH"
	Bearish Direction = "BEARISH"
)

// SignalKind identifies which indicator and rule produced an event.
type SignalKind string

const (
	MomentumBullish SignalKind = "MOMENTUM_BULLISH"
	MomentumBearish SignalKind = "MOMENTUM_BEARISH"
	ChannelBullish  SignalKind = "CHANNEL_BULLISH"
	ChannelBearish  SignalKind = "CHANNEL_BEARISH"
	SimpleBullish   SignalKind = "SIMPLE_BULLISH"
	SimpleBearish   SignalKind = "SIMPLE_BEARISH"
	CrossUp         SignalKind = "SMA_CROSS_UP"
	CrossDown       SignalKind = "SMA_CROSS_DOWN"
	BreakoutHigh    SignalKind = "BREAKOUT_HIGH"
	BreakoutLow     SignalKind = "BREAKOUT_LOW"
)

// Direction returns the side of the kind.
func (k SignalKind) Direction() Direction {
	switch k {
	case MomentumBullish, ChannelBullish, SimpleBullish, CrossUp, BreakoutHigh:
		return Bullish
	default:
		return Bearish
	}
}

// Label is the short marker text shown next to the bar.
func (k SignalKind) Label() string {
	switch k {
	case MomentumBullish:
		return "RSI Bull Div"
	case MomentumBearish:
		return "RSI Bear Div"
	case ChannelBullish:
		return "CCI Bull Div"
	case ChannelBearish:
		return "CCI Bear Div"
	case SimpleBullish:
		return "Bull Div"
	case SimpleBearish:
		return "Bear Div"
	case CrossUp:
		return "SMA Cross Up"
	case CrossDown:
		return "SMA Cross Down"
	case BreakoutHigh:
		return "High Breakout"
	case BreakoutLow:
		return "Low Breakout"
	}
	return string(k)
}

// BarSignals holds the divergence, crossover and breakout flags computed for one closed bar.
type BarSignals struct {
	Index    int       `json:"index"`
	Time     time.Time `json:"time"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Momentum float64   `json:"rsi"`
	Channel  float64   `json:"cci"`
	Ready    bool      `json:"ready"`

	MomentumBullish bool `json:"momentum_bullish"`
	MomentumBearish bool `json:"momentum_bearish"`
	ChannelBullish  bool `json:"channel_bullish"`
	ChannelBearish  bool `json:"channel_bearish"`
	SimpleBullish   bool `json:"simple_bullish"`
	SimpleBearish   bool `json:"simple_bearish"`

	FastMA       float64 `json:"sma_fast,omitempty"`
	SlowMA       float64 `json:"sma_slow,omitempty"`
	CrossUp      bool    `json:"sma_cross_up"`
	CrossDown    bool    `json:"sma_cross_down"`
	BreakoutHigh bool    `json:"breakout_high"`
	BreakoutLow  bool    `json:"breakout_low"`
}

// SignalEvent is a marker for the rendering and alert collaborators.
type SignalEvent struct {
	Kind      SignalKind `json:"kind"`
	Direction Direction  `json:"direction"`
	Index     int        `json:"index"`
	Time      time.Time  `json:"time"`
	Price     float64    `json:"price"`
	Label     string     `json:"label"`
}

// Events lists the signals that fired on the bar. Bullish markers sit at
// the bar low, bearish markers at the bar high.
func (s *BarSignals) Events() []SignalEvent {
	if s == nil || !s.Ready {
		return nil
	}
	flags := []struct {
		on   bool
		kind SignalKind
	}{
		{s.MomentumBullish, MomentumBullish},
		{s.MomentumBearish, MomentumBearish},
		{s.ChannelBullish, ChannelBullish},
		{s.ChannelBearish, ChannelBearish},
		{s.SimpleBullish, SimpleBullish},
		{s.SimpleBearish, SimpleBearish},
		{s.CrossUp, CrossUp},
		{s.CrossDown, CrossDown},
		{s.BreakoutHigh, BreakoutHigh},
		{s.BreakoutLow, BreakoutLow},
	}
	var events []SignalEvent
	for _, f := range flags {
		if !f.on {
			continue
		}
		price := s.High
		if f.kind.Direction() == Bullish {
			price = s.Low
		}
		events = append(events, SignalEvent{
			Kind:      f.kind,
			Direction: f.kind.Direction(),
			Index:     s.Index,
			Time:      s.Time,
			Price:     price,
			Label:     f.kind.Label(),
		})
	}
	return events
}

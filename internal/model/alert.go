package model

import "time"

// AlertType indicates what triggered the alert.
type AlertType string

const (
	AlertHighScore       AlertType = "HIGH_SCORE"
	AlertMomentumBullish AlertType = "RSI_BULLISH"
	AlertMomentumBearish AlertType = "RSI_BEARISH"
	AlertChannelBullish  AlertType = "CCI_BULLISH"
	AlertChannelBearish  AlertType = "CCI_BEARISH"
	AlertSimpleBullish   AlertType = "SIMPLE_BULLISH"
	AlertSimpleBearish   AlertType = "SIMPLE_BEARISH"
	AlertCrossUp         AlertType = "SMA_CROSS_UP"
	AlertCrossDown       AlertType = "SMA_CROSS_DOWN"
	AlertBreakoutHigh    AlertType = "BREAKOUT_HIGH"
	AlertBreakoutLow     AlertType = "BREAKOUT_LOW"
)

// AlertTypeFor maps a signal kind to its alert type.
func AlertTypeFor(k SignalKind) AlertType {
	switch k {
	case MomentumBullish:
		return AlertMomentumBullish
	case MomentumBearish:
		return AlertMomentumBearish
	case ChannelBullish:
		return AlertChannelBullish
	case ChannelBearish:
		return AlertChannelBearish
	case SimpleBullish:
		return AlertSimpleBullish
	case SimpleBearish:
		return AlertSimpleBearish
	case CrossUp:
		return AlertCrossUp
	case CrossDown:
		return AlertCrossDown
	case BreakoutHigh:
		return AlertBreakoutHigh
	default:
		return AlertBreakoutLow
	}
}

// Alert is a notification handed to the alert collaborator.
type Alert struct {
	ID      string    `json:"id"`
	Type    AlertType `json:"type"`
	BarTime time.Time `json:"bar_time"`
	Text    string    `json:"text"`
}

package calculator

import (
	"errors"

	talib "github.com/markcheno/go-talib"

	"ChecklistSentinel/internal/model"
)

// ChannelLength is the fixed CCI length of the channel oscillator.
const ChannelLength = 20

// CCISeries computes the commodity channel index over typical price.
func CCISeries(bars []model.OHLCV, length int) ([]float64, error) {
	if length < 2 {
		return nil, errors.New("cci length must be at least 2")
	}
	if len(bars) < length {
		return make([]float64, len(bars)), nil
	}
	highs, lows, closes := extractHLC(bars)
	return talib.Cci(highs, lows, closes, length), nil
}

// CCIWarmup returns the index of the first valid CCI value.
func CCIWarmup(length int) int {
	return length - 1
}

package calculator

import (
	"errors"

	talib "github.com/markcheno/go-talib"

	"ChecklistSentinel/internal/model"
)

// DefaultRSILength is the momentum oscillator length used when none is configured.
const DefaultRSILength = 14

// RSISeries computes the Wilder-smoothed RSI of closes, one value per bar.
// Values before index `length` are warm-up and must not be read; RSIWarmup reports the first usable index.
// Returns a zero-filled series if data is insufficient.
func RSISeries(bars []model.OHLCV, length int) ([]float64, error) {
	if length < 2 {
		return nil, errors.New("rsi length must be at least 2")
	}
	if len(bars) <= length {
		return make([]float64, len(bars)), nil
	}
	return talib.Rsi(extractCloses(bars), length), nil
}

// RSIWarmup returns the index of the first valid RSI value.
func RSIWarmup(length int) int {
	return length
}

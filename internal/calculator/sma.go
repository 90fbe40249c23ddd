package calculator

import (
	"errors"

	talib "github.com/markcheno/go-talib"

	"ChecklistSentinel/internal/model"
)

// Default moving-average lengths of the crossover rule.
const (
	DefaultFastMA = 9
	DefaultSlowMA = 21
)

// SMASeries computes the simple moving average of closes. Values before index length-1 are zero.
func SMASeries(bars []model.OHLCV, length int) ([]float64, error) {
	if length < 2 {
		return nil, errors.New("sma length must be at least 2")
	}
	if len(bars) < length {
		return make([]float64, len(bars)), nil
	}
	return talib.Sma(extractCloses(bars), length), nil
}

// SMAWarmup returns the index of the first valid SMA value.
func SMAWarmup(length int) int {
	return length - 1
}

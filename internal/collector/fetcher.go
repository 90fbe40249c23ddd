package collector

import "ChecklistSentinel/internal/model"

// BarSource defines the interface for reading closed bars, oldest first.
type BarSource interface {
	FetchBars(symbol string, limit int) ([]model.OHLCV, error)
	Name() string
}

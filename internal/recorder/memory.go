package recorder

import (
	"sync"

	"ChecklistSentinel/internal/model"
)

// MemoryRecorder keeps the most recent evaluations and alerts in bounded buffers.
type MemoryRecorder struct {
	mu     sync.Mutex
	size   int
	evals  []Evaluation
	alerts []model.Alert
}

// NewMemoryRecorder creates a recorder holding at most size entries of each kind.
func NewMemoryRecorder(size int) *MemoryRecorder {
	if size <= 0 {
		size = 200
	}
	return &MemoryRecorder{size: size}
}

func (m *MemoryRecorder) RecordEvaluation(e *Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evals = append(m.evals, *e)
	if len(m.evals) > m.size {
		m.evals = append([]Evaluation(nil), m.evals[len(m.evals)-m.size:]...)
	}
	return nil
}

func (m *MemoryRecorder) RecordAlert(a *model.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, *a)
	if len(m.alerts) > m.size {
		m.alerts = append([]model.Alert(nil), m.alerts[len(m.alerts)-m.size:]...)
	}
	return nil
}

// Evaluations returns up to n of the latest evaluations. n <= 0 returns all of them.
func (m *MemoryRecorder) Evaluations(n int) []Evaluation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return tail(m.evals, n)
}

// Alerts returns up to n of the latest alerts. n <= 0 returns all of them.
func (m *MemoryRecorder) Alerts(n int) []model.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return tail(m.alerts, n)
}

func (m *MemoryRecorder) Close() error { return nil }

func tail[T any](s []T, n int) []T {
	if n <= 0 || n > len(s) {
		n = len(s)
	}
	out := make([]T, n)
	copy(out, s[len(s)-n:])
	return out
}

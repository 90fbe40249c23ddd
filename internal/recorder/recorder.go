package recorder

import (
	"time"

	"ChecklistSentinel/internal/model"
)

// Evaluation is one scored checklist together with the bar it was evaluated against.
type Evaluation struct {
	Time    time.Time           `json:"time"`
	Rubric  string              `json:"rubric"`
	Total   int                 `json:"total"`
	Tier    string              `json:"tier"`
	BarTime time.Time           `json:"bar_time,omitempty"`
	Events  []model.SignalEvent `json:"events,omitempty"`
}

// Recorder keeps evaluation and alert history.
type Recorder interface {
	RecordEvaluation(e *Evaluation) error
	RecordAlert(a *model.Alert) error
	Close() error
}

// Reader exposes recorded history, newest last.
type Reader interface {
	Evaluations(n int) []Evaluation
	Alerts(n int) []model.Alert
}

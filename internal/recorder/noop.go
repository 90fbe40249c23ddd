package recorder

import "ChecklistSentinel/internal/model"

// NoopRecorder is a no-op implementation used when history is disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvaluation(_ *Evaluation) error { return nil }
func (n *NoopRecorder) RecordAlert(_ *model.Alert) error     { return nil }
func (n *NoopRecorder) Close() error                         { return nil }

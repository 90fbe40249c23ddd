package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"ChecklistSentinel/internal/checklist"
	"ChecklistSentinel/internal/collector"
	"ChecklistSentinel/internal/flags"
	"ChecklistSentinel/internal/notifier"
	"ChecklistSentinel/internal/recorder"
	"ChecklistSentinel/internal/strategy"
)

type recordingSender struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingSender) Send(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingSender) count(substr string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.texts {
		if strings.Contains(t, substr) {
			n++
		}
	}
	return n
}

func newTestScheduler(t *testing.T, initial map[string]bool) (*Scheduler, *recordingSender) {
	t.Helper()
	rubric, err := checklist.Revision("v3")
	if err != nil {
		t.Fatal(err)
	}
	fs, err := flags.NewStore(rubric, initial)
	if err != nil {
		t.Fatal(err)
	}
	ev, err := strategy.NewEvaluator(strategy.Config{MomentumLength: 14, Simplified: rubric.LegacySignals()})
	if err != nil {
		t.Fatal(err)
	}
	col := collector.NewCollector(&collector.MockSource{Price: 100}, "MOCK", 120, ev)
	rec := &recordingSender{}
	d := notifier.NewDispatcher(rec, 0)
	s := NewScheduler(context.Background(), col, fs, checklist.NewEntryGate(10*time.Minute), d, 0)
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }
	return s, rec
}

func allChecked(t *testing.T) map[string]bool {
	t.Helper()
	rubric, _ := checklist.Revision("v3")
	m := make(map[string]bool)
	for _, k := range rubric.Keys() {
		m[k] = true
	}
	return m
}

func TestNewScheduler_ThresholdDefaultsToRubric(t *testing.T) {
	s, _ := newTestScheduler(t, nil)
	if s.Threshold != 70 {
		t.Errorf("threshold: expected 70, got %d", s.Threshold)
	}
}

func TestTick_HighScoreAlertOnce(t *testing.T) {
	s, rec := newTestScheduler(t, allChecked(t))
	s.Tick()
	s.Tick()
	s.Rescore()

	if n := rec.count("Checklist score"); n != 1 {
		t.Errorf("high-score alerts: expected 1, got %d", n)
	}
	snap := s.Snapshot()
	if snap.Score.Total != 100 || snap.Score.Tier.Label != "Strong" {
		t.Errorf("unexpected score: %d %s", snap.Score.Total, snap.Score.Tier.Label)
	}
	if snap.Signals == nil || !snap.Signals.Ready {
		t.Error("expected ready signals after tick")
	}
	if !snap.Gate.Armed || snap.Gate.Ready {
		t.Errorf("gate: expected armed and waiting, got %+v", snap.Gate)
	}
}

func TestTick_AlertsAgainAfterDroppingBelow(t *testing.T) {
	s, rec := newTestScheduler(t, nil)
	s.Tick()
	for k := range allChecked(t) {
		if err := s.SetFlag(k, true); err != nil {
			t.Fatal(err)
		}
	}
	if n := rec.count("Checklist score"); n != 1 {
		t.Fatalf("first crossing: expected 1 alert, got %d", n)
	}

	// 100 -> 64 drops below the threshold without a new bar.
	for _, k := range []string{"trend_alignment", "trendline_break", "higher_timeframe"} {
		if err := s.SetFlag(k, false); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Snapshot().Score.Total; got != 64 {
		t.Fatalf("expected 64 after unchecking, got %d", got)
	}
	s.Tick()
	for _, k := range []string{"trend_alignment", "trendline_break", "higher_timeframe"} {
		if err := s.SetFlag(k, true); err != nil {
			t.Fatal(err)
		}
	}
	if n := rec.count("Checklist score"); n != 2 {
		t.Errorf("second crossing on the same bar: expected 2 alerts, got %d", n)
	}
}

func TestRescore_StaysAboveThreshold(t *testing.T) {
	s, rec := newTestScheduler(t, allChecked(t))
	s.Rescore()
	for _, step := range []struct {
		key     string
		checked bool
	}{
		{"trend_alignment", false},
		{"trendline_break", false},
		{"trendline_break", true},
	} {
		if err := s.SetFlag(step.key, step.checked); err != nil {
			t.Fatal(err)
		}
	}
	// 100 -> 82 -> 72 -> 82 never drops below 70.
	if n := rec.count("Checklist score"); n != 1 {
		t.Errorf("expected 1 alert, got %d", n)
	}
}

func TestSnapshot_GateOpensAfterWait(t *testing.T) {
	s, _ := newTestScheduler(t, allChecked(t))
	s.Rescore()
	if g := s.Snapshot().Gate; !g.Armed || g.Ready || g.Remaining != 10*time.Minute {
		t.Fatalf("gate at rescore: expected armed with 10m left, got %+v", g)
	}

	later := time.Date(2025, 8, 1, 12, 11, 0, 0, time.UTC)
	s.Now = func() time.Time { return later }
	if g := s.Snapshot().Gate; !g.Armed || !g.Ready {
		t.Errorf("gate after the wait: expected ready, got %+v", g)
	}
	if got := s.HandleCommand("/score"); !strings.Contains(got, "entry window open") {
		t.Errorf("/score after the wait: expected open entry window, got %q", got)
	}
}

func TestSnapshot_DoesNotSendAlerts(t *testing.T) {
	s, rec := newTestScheduler(t, allChecked(t))
	snap := s.Snapshot()
	if snap.Score == nil || snap.Score.Total != 100 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if n := len(rec.texts); n != 0 {
		t.Errorf("snapshot sent %d messages, expected none", n)
	}
	s.Rescore()
	if n := rec.count("Checklist score"); n != 1 {
		t.Errorf("first rescore: expected 1 alert, got %d", n)
	}
}

func TestSnapshot_WithoutTick(t *testing.T) {
	s, _ := newTestScheduler(t, map[string]bool{"trend_alignment": true})
	snap := s.Snapshot()
	if snap.Score == nil || snap.Score.Total != 18 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Signals != nil {
		t.Error("no signals expected before the first tick")
	}
	if snap.Symbol != "MOCK" {
		t.Errorf("symbol: expected %q, got %q", "MOCK", snap.Symbol)
	}
}

func TestHandleCommand(t *testing.T) {
	s, _ := newTestScheduler(t, nil)

	tests := []struct {
		command string
		want    string
	}{
		{"/check trend_alignment", "18/100"},
		{"/check@SentinelBot wave_count", "30/100"},
		{"/uncheck wave_count", "18/100"},
		{"/toggle trend_alignment", "0/100"},
		{"/check nope", "❌"},
		{"/check <b>x", "&lt;b&gt;x"},
		{"/check", "Usage"},
		{"/rubric", "Rubric v3"},
		{"/signals", "No evaluation yet"},
		{"/evaluate", "MOCK"},
		{"/reset", "0/100"},
		{"hello", "Available commands"},
		{"", "Available commands"},
	}
	for _, tt := range tests {
		got := s.HandleCommand(tt.command)
		if !strings.Contains(got, tt.want) {
			t.Errorf("HandleCommand(%q): expected to contain %q, got %q", tt.command, tt.want, got)
		}
	}
}

func TestHandleCommand_EscapesUnknownKey(t *testing.T) {
	s, _ := newTestScheduler(t, nil)
	for _, cmd := range []string{"/check <b>x", "/toggle <b>x"} {
		got := s.HandleCommand(cmd)
		if strings.Contains(got, "<b>") {
			t.Errorf("HandleCommand(%q): raw markup in reply %q", cmd, got)
		}
	}
}

func TestRegisterAll_InvalidCron(t *testing.T) {
	s, _ := newTestScheduler(t, nil)
	if err := s.RegisterAll("not a cron"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if err := s.RegisterAll("0 */5 * * * *"); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}
}

func TestHistory_RecordsEvaluationsAndAlerts(t *testing.T) {
	s, _ := newTestScheduler(t, nil)
	if h := s.History(10); len(h.Evaluations) != 0 || h.Alerts == nil {
		t.Errorf("noop recorder should yield empty history, got %+v", h)
	}

	s.Recorder = recorder.NewMemoryRecorder(50)
	s.Tick()
	for k := range allChecked(t) {
		if err := s.SetFlag(k, true); err != nil {
			t.Fatal(err)
		}
	}
	h := s.History(0)
	if len(h.Evaluations) != 13 {
		t.Errorf("expected 13 evaluations, got %d", len(h.Evaluations))
	}
	if h.Evaluations[0].BarTime.IsZero() {
		t.Error("tick evaluation should carry the bar time")
	}
	highScore := 0
	for _, a := range h.Alerts {
		if a.Type == "HIGH_SCORE" {
			highScore++
		}
	}
	if highScore != 1 {
		t.Errorf("expected 1 recorded high-score alert, got %d", highScore)
	}
}

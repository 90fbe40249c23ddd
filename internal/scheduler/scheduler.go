package scheduler

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"ChecklistSentinel/internal/checklist"
	"ChecklistSentinel/internal/collector"
	"ChecklistSentinel/internal/flags"
	"ChecklistSentinel/internal/model"
	"ChecklistSentinel/internal/notifier"
	"ChecklistSentinel/internal/recorder"
)

// Snapshot is the latest evaluation as seen by the rendering collaborators.
type Snapshot struct {
	Symbol      string              `json:"symbol"`
	Score       *model.ScoreResult  `json:"score"`
	Gate        checklist.GateState `json:"gate"`
	Signals     *model.BarSignals   `json:"signals,omitempty"`
	Threshold   int                 `json:"threshold"`
	EvaluatedAt time.Time           `json:"evaluated_at"`
}

// Scheduler drives evaluations on a cron schedule and answers operator commands.
type Scheduler struct {
	Cron       *cron.Cron
	Collector  *collector.Collector
	Flags      *flags.Store
	Gate       *checklist.EntryGate
	Dispatcher *notifier.Dispatcher
	Recorder   recorder.Recorder
	Threshold  int
	Ctx        context.Context
	Now        func() time.Time

	mu        sync.RWMutex
	evalMu    sync.Mutex
	snap      Snapshot
	prevTotal int
	evaluated bool
}

// NewScheduler creates a new Scheduler. A non-positive threshold falls back to the rubric's alert score.
func NewScheduler(ctx context.Context, col *collector.Collector, fs *flags.Store, gate *checklist.EntryGate, d *notifier.Dispatcher, threshold int) *Scheduler {
	if threshold <= 0 {
		threshold = fs.Rubric().AlertScore()
	}
	s := &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Collector:  col,
		Flags:      fs,
		Gate:       gate,
		Dispatcher: d,
		Recorder:   recorder.NewNoopRecorder(),
		Threshold:  threshold,
		Ctx:        ctx,
		Now:        time.Now,
		snap:       Snapshot{Symbol: col.Symbol, Threshold: threshold},
	}
	if d != nil && d.OnSent == nil {
		d.OnSent = s.recordAlert
	}
	return s
}

// RegisterAll registers the evaluation task.
func (s *Scheduler) RegisterAll(evaluateCron string) error {
	if _, err := s.Cron.AddFunc(evaluateCron, s.Tick); err != nil {
		return fmt.Errorf("register evaluate task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// Tick reads the latest bars, evaluates divergences, rescores the checklist, and dispatches alerts.
func (s *Scheduler) Tick() {
	s.evalMu.Lock()
	defer s.evalMu.Unlock()

	res, err := s.Collector.Collect()
	if err != nil {
		log.Printf("[ERROR] collect: %v", err)
		s.rescore(nil, false)
		return
	}
	if !res.Signals.Ready {
		log.Printf("[WARN] %s: %d bars, oscillators still warming up (need %d)",
			s.Collector.Symbol, len(res.Series.Bars), s.Collector.Evaluator.MinBars())
	}
	s.rescore(res.Signals, true)
}

// Rescore recomputes the checklist score against the last evaluated bar.
func (s *Scheduler) Rescore() {
	s.evalMu.Lock()
	defer s.evalMu.Unlock()
	s.rescore(nil, false)
}

func (s *Scheduler) rescore(sig *model.BarSignals, fresh bool) {
	s.mu.RLock()
	if !fresh {
		sig = s.snap.Signals
	}
	prev := s.prevTotal
	s.mu.RUnlock()

	score, err := s.Flags.Rubric().Score(s.Flags.Snapshot())
	if err != nil {
		log.Printf("[ERROR] score checklist: %v", err)
		return
	}
	now := s.Now()
	gate := s.Gate.Observe(score.AllChecked(), now)

	s.mu.Lock()
	s.snap.Score = score
	s.snap.Gate = gate
	s.snap.Signals = sig
	s.snap.EvaluatedAt = now
	s.prevTotal = score.Total
	s.evaluated = true
	s.mu.Unlock()

	if score.Total != prev {
		log.Printf("[INFO] checklist %s: %d/%d %s", score.Rubric, score.Total, score.Max, score.Tier.Label)
	}

	var divergences *model.BarSignals
	if fresh {
		divergences = sig
	}
	eval := &recorder.Evaluation{
		Time:   now,
		Rubric: score.Rubric,
		Total:  score.Total,
		Tier:   score.Tier.Label,
		Events: divergences.Events(),
	}
	if sig != nil {
		eval.BarTime = sig.Time
	}
	if err := s.Recorder.RecordEvaluation(eval); err != nil {
		log.Printf("[ERROR] record evaluation: %v", err)
	}
	barTime := now
	if sig != nil {
		barTime = sig.Time
	}
	alerts := notifier.BuildAlerts(s.Collector.Symbol, prev, score, barTime, divergences, s.Threshold)
	if len(alerts) > 0 && s.Dispatcher != nil {
		s.Dispatcher.Dispatch(s.Ctx, alerts)
	}
}

// Snapshot returns the latest evaluation with the entry gate observed at the current time.
// Before the first evaluation the score is computed on the fly; nothing is stored or sent.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.RLock()
	snap := s.snap
	ok := s.evaluated
	s.mu.RUnlock()

	now := s.Now()
	if !ok {
		score, err := s.Flags.Rubric().Score(s.Flags.Snapshot())
		if err != nil {
			log.Printf("[ERROR] score checklist: %v", err)
			return snap
		}
		snap.Score = score
		snap.EvaluatedAt = now
	}
	if snap.Score != nil {
		snap.Gate = s.Gate.Observe(snap.Score.AllChecked(), now)
	}
	return snap
}

// SetFlag ticks or unticks a criterion and rescores.
func (s *Scheduler) SetFlag(key string, checked bool) error {
	if err := s.Flags.Set(key, checked); err != nil {
		return err
	}
	s.Rescore()
	return nil
}

// ResetFlags unticks every criterion and rescores.
func (s *Scheduler) ResetFlags() {
	s.Flags.Reset()
	s.Rescore()
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	name := strings.ToLower(fields[0])
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i]
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch name {
	case "/score", "/start":
		snap := s.Snapshot()
		return notifier.FormatScoreReport(snap.Score, snap.Gate)
	case "/signals":
		snap := s.Snapshot()
		return notifier.FormatSignals(snap.Symbol, snap.Signals)
	case "/evaluate":
		s.Tick()
		snap := s.Snapshot()
		return notifier.FormatSignals(snap.Symbol, snap.Signals)
	case "/rubric":
		return notifier.FormatRubric(s.Flags.Rubric())
	case "/check", "/uncheck":
		if arg == "" {
			return fmt.Sprintf("Usage: %s KEY", name)
		}
		if err := s.SetFlag(arg, name == "/check"); err != nil {
			return "❌ " + html.EscapeString(err.Error())
		}
		snap := s.Snapshot()
		return notifier.FormatScoreReport(snap.Score, snap.Gate)
	case "/toggle":
		if arg == "" {
			return "Usage: /toggle KEY"
		}
		if _, err := s.Flags.Toggle(arg); err != nil {
			return "❌ " + html.EscapeString(err.Error())
		}
		s.Rescore()
		snap := s.Snapshot()
		return notifier.FormatScoreReport(snap.Score, snap.Gate)
	case "/reset":
		s.ResetFlags()
		snap := s.Snapshot()
		return notifier.FormatScoreReport(snap.Score, snap.Gate)
	default:
		return notifier.FormatHelp()
	}
}

// Rubric returns the active rubric.
func (s *Scheduler) Rubric() *checklist.Rubric { return s.Flags.Rubric() }

func (s *Scheduler) recordAlert(a model.Alert) {
	if err := s.Recorder.RecordAlert(&a); err != nil {
		log.Printf("[ERROR] record alert: %v", err)
	}
}

// History is the recorded evaluation and alert history.
type History struct {
	Evaluations []recorder.Evaluation `json:"evaluations"`
	Alerts      []model.Alert         `json:"alerts"`
}

// History returns up to n of the latest evaluations and alerts when the recorder keeps them.
func (s *Scheduler) History(n int) History {
	h := History{Evaluations: []recorder.Evaluation{}, Alerts: []model.Alert{}}
	if r, ok := s.Recorder.(recorder.Reader); ok {
		h.Evaluations = r.Evaluations(n)
		h.Alerts = r.Alerts(n)
	}
	return h
}

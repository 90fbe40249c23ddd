package notifier

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"ChecklistSentinel/internal/model"
)

const maxRemembered = 512

// BuildAlerts returns the alerts for one evaluation: a high-score alert stamped with barTime when
// the total crosses threshold from below, and one alert per signal that fired on sig.
// sig is nil when the bar was already evaluated and only the checklist changed.
func BuildAlerts(symbol string, prevTotal int, res *model.ScoreResult, barTime time.Time, sig *model.BarSignals, threshold int) []model.Alert {
	var alerts []model.Alert
	if res != nil && threshold > 0 && prevTotal < threshold && res.Total >= threshold {
		alerts = append(alerts, model.Alert{
			ID:      uuid.NewString(),
			Type:    model.AlertHighScore,
			BarTime: barTime,
			Text:    FormatHighScoreAlert(res, threshold),
		})
	}
	for _, ev := range sig.Events() {
		alerts = append(alerts, model.Alert{
			ID:      uuid.NewString(),
			Type:    model.AlertTypeFor(ev.Kind),
			BarTime: ev.Time,
			Text:    FormatSignalAlert(symbol, ev),
		})
	}
	return alerts
}

type alertKey struct {
	typ     model.AlertType
	barTime int64
	id      string
}

// keyFor is the dedupe key of an alert. Score alerts are already edge-triggered by the
// threshold crossing, so each one is keyed by its own ID; signal alerts are keyed by bar.
func keyFor(a model.Alert) alertKey {
	k := alertKey{typ: a.Type, barTime: a.BarTime.UnixNano()}
	if a.Type == model.AlertHighScore {
		k.id = a.ID
	}
	return k
}

// Dispatcher sends alerts through a Sender: every score crossing once, every signal once per bar.
type Dispatcher struct {
	Sender     Sender
	MaxRetries int
	Backoff    time.Duration
	OnSent     func(model.Alert)

	mu    sync.Mutex
	sent  map[alertKey]struct{}
	order []alertKey
}

// NewDispatcher creates a dispatcher with the given retry budget.
func NewDispatcher(s Sender, maxRetries int) *Dispatcher {
	return &Dispatcher{
		Sender:     s,
		MaxRetries: maxRetries,
		Backoff:    time.Second,
		sent:       make(map[alertKey]struct{}),
	}
}

// Dispatch sends every alert not already delivered for its bar and returns the number sent.
// Failed sends are not remembered, so the next evaluation of the same bar retries them.
func (d *Dispatcher) Dispatch(ctx context.Context, alerts []model.Alert) int {
	sent := 0
	for _, a := range alerts {
		key := keyFor(a)
		if d.seen(key) {
			continue
		}
		if err := SendWithRetry(ctx, d.Sender, a.Text, d.MaxRetries, d.Backoff); err != nil {
			log.Printf("[ERROR] send alert %s (%s): %v", a.Type, a.ID, err)
			continue
		}
		d.remember(key)
		if d.OnSent != nil {
			d.OnSent(a)
		}
		log.Printf("[INFO] alert sent: %s bar=%s id=%s", a.Type, a.BarTime.Format(time.RFC3339), a.ID)
		sent++
	}
	return sent
}

func (d *Dispatcher) seen(k alertKey) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.sent[k]
	return ok
}

func (d *Dispatcher) remember(k alertKey) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sent == nil {
		d.sent = make(map[alertKey]struct{})
	}
	d.sent[k] = struct{}{}
	d.order = append(d.order, k)
	if len(d.order) > maxRemembered {
		delete(d.sent, d.order[0])
		d.order = d.order[1:]
	}
}

package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"ChecklistSentinel/internal/checklist"
	"ChecklistSentinel/internal/model"
)

var tierEmoji = map[string]string{
	"blue":   "🔵",
	"green":  "🟢",
	"yellow": "🟡",
	"red":    "🔴",
}

func tierBadge(t model.Tier) string {
	if e, ok := tierEmoji[strings.ToLower(t.Color)]; ok {
		return e + " " + html.EscapeString(t.Label)
	}
	return html.EscapeString(t.Label)
}

// FormatScoreReport formats the ticked checklist and the entry gate into a Telegram message.
func FormatScoreReport(res *model.ScoreResult, gate checklist.GateState) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📋 <b>Entry checklist</b> | %s\n\n", html.EscapeString(res.Rubric)))

	prev := ""
	for _, row := range res.Rows {
		if row.Category != prev {
			if prev != "" {
				b.WriteString("\n")
			}
			b.WriteString(fmt.Sprintf("<b>%s</b>\n", html.EscapeString(row.Category)))
			prev = row.Category
		}
		box := "☐"
		if row.Checked {
			box = "☑"
		}
		b.WriteString(fmt.Sprintf("  %s %s (%d) <code>%s</code>\n", box, html.EscapeString(row.Name), row.Weight, row.Key))
	}
	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("  Score: <b>%d/%d</b> %s\n", res.Total, res.Max, tierBadge(res.Tier)))

	switch {
	case gate.Ready:
		b.WriteString("\n✅ All criteria met, entry window open")
	case gate.Armed:
		b.WriteString(fmt.Sprintf("\n⏳ All criteria met, wait %s before entry", gate.Remaining.Round(time.Second)))
	}
	return b.String()
}

// FormatSignals formats the signal flags of the latest closed bar.
func FormatSignals(symbol string, sig *model.BarSignals) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 <b>%s</b> signals\n\n", html.EscapeString(symbol)))
	if sig == nil {
		b.WriteString("No evaluation yet")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Bar: %s | close %.4g\n", sig.Time.Format("2006-01-02 15:04"), sig.Close))
	if !sig.Ready {
		b.WriteString("Oscillators still warming up")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("RSI: %.1f | CCI: %.1f\n", sig.Momentum, sig.Channel))
	events := sig.Events()
	if len(events) == 0 {
		b.WriteString("No signal on this bar")
		return b.String()
	}
	for _, ev := range events {
		b.WriteString(fmt.Sprintf("  %s %s @ %.4g\n", directionEmoji(ev.Direction), ev.Label, ev.Price))
	}
	return b.String()
}

func directionEmoji(d model.Direction) string {
	if d == model.Bullish {
		return "🟢"
	}
	return "🔴"
}

// FormatSignalAlert formats a single signal event for alerting.
func FormatSignalAlert(symbol string, ev model.SignalEvent) string {
	return fmt.Sprintf("%s <b>%s</b> | %s\n\nBar: %s\nPrice: %.4g",
		directionEmoji(ev.Direction), ev.Label, html.EscapeString(symbol),
		ev.Time.Format("2006-01-02 15:04"), ev.Price)
}

// FormatHighScoreAlert formats the alert sent when the checklist score reaches the threshold.
func FormatHighScoreAlert(res *model.ScoreResult, threshold int) string {
	return fmt.Sprintf("🚨 <b>Checklist score %d/%d</b> %s\n\nThreshold %d reached (%s)",
		res.Total, res.Max, tierBadge(res.Tier), threshold, html.EscapeString(res.Rubric))
}

// FormatRubric lists the criteria and ladder of a revision.
func FormatRubric(r *checklist.Rubric) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📐 <b>Rubric %s</b>\n\n", html.EscapeString(r.Name())))
	for _, c := range r.Criteria() {
		b.WriteString(fmt.Sprintf("  <code>%s</code> %s: %d\n", c.Key, html.EscapeString(c.Name), c.Weight))
	}
	b.WriteString("\n<b>Tiers</b>\n")
	for _, t := range r.Ladder() {
		if t.MinScore > 0 {
			b.WriteString(fmt.Sprintf("  %s ≥ %d\n", tierBadge(t), t.MinScore))
		} else {
			b.WriteString(fmt.Sprintf("  %s\n", tierBadge(t)))
		}
	}
	b.WriteString(fmt.Sprintf("\nAlert at %d", r.AlertScore()))
	return b.String()
}

// FormatHelp lists the available commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"• /score - checklist score\n" +
		"• /signals - latest divergences, crossovers and breakouts\n" +
		"• /evaluate - read bars and evaluate now\n" +
		"• /rubric - criteria and tiers\n" +
		"• /check KEY, /uncheck KEY, /toggle KEY - tick a criterion\n" +
		"• /reset - clear all ticks"
}

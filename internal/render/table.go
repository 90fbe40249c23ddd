package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ChecklistSentinel/internal/checklist"
	"ChecklistSentinel/internal/model"
)

// Options controls terminal decoration.
type Options struct {
	Color bool
}

var tierColors = map[string]text.Colors{
	"blue":   {text.FgHiBlue, text.Bold},
	"green":  {text.FgGreen, text.Bold},
	"yellow": {text.FgYellow, text.Bold},
	"red":    {text.FgRed, text.Bold},
}

// TierText returns the tier label, colored when enabled.
func TierText(t model.Tier, opts Options) string {
	if !opts.Color {
		return t.Label
	}
	if c, ok := tierColors[strings.ToLower(t.Color)]; ok {
		return c.Sprint(t.Label)
	}
	return t.Label
}

func mark(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// ScoreTable renders the scored checklist grouped by category with a total footer.
func ScoreTable(res *model.ScoreResult, opts Options) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Entry checklist (%s)", res.Rubric))
	t.AppendHeader(table.Row{"Category", "Criterion", "Weight", "", "Score", "Note"})

	prev := ""
	for _, row := range res.Rows {
		cat := row.Category
		if cat == prev {
			cat = ""
		} else if prev != "" {
			t.AppendSeparator()
		}
		prev = row.Category
		t.AppendRow(table.Row{cat, row.Name, row.Weight, mark(row.Checked), row.Score, row.Note})
	}
	t.AppendFooter(table.Row{"", "Total", res.Max, "", res.Total, TierText(res.Tier, opts)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, WidthMax: 48},
	})
	t.SetStyle(table.StyleLight)
	return t.Render()
}

// LadderTable renders the rubric's tier thresholds.
func LadderTable(r *checklist.Rubric, opts Options) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Tiers (%s)", r.Name()))
	t.AppendHeader(table.Row{"Tier", "Min score"})
	for _, tier := range r.Ladder() {
		t.AppendRow(table.Row{TierText(tier, opts), tier.MinScore})
	}
	t.AppendFooter(table.Row{"Alert at", r.AlertScore()})
	t.SetStyle(table.StyleLight)
	return t.Render()
}

// SignalTable renders the signal markers, one row per event.
func SignalTable(events []model.SignalEvent, opts Options) string {
	t := table.NewWriter()
	t.SetTitle("Signals")
	t.AppendHeader(table.Row{"Bar", "Time", "Price", "Signal"})
	for _, ev := range events {
		label := ev.Label
		if opts.Color {
			c := text.Colors{text.FgRed}
			if ev.Direction == model.Bullish {
				c = text.Colors{text.FgGreen}
			}
			label = c.Sprint(label)
		}
		t.AppendRow(table.Row{ev.Index, ev.Time.Format("2006-01-02 15:04"), fmt.Sprintf("%.4g", ev.Price), label})
	}
	if len(events) == 0 {
		t.AppendRow(table.Row{"-", "-", "-", "none"})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

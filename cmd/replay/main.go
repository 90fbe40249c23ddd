package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"ChecklistSentinel/internal/calculator"
	"ChecklistSentinel/internal/checklist"
	"ChecklistSentinel/internal/collector"
	"ChecklistSentinel/internal/flags"
	"ChecklistSentinel/internal/model"
	"ChecklistSentinel/internal/render"
	"ChecklistSentinel/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	barsFile := flag.String("bars", "data/bars.csv", "CSV file with date,open,high,low,close[,volume]")
	revision := flag.String("revision", checklist.DefaultRevision, "built-in checklist revision ("+strings.Join(checklist.RevisionNames(), ", ")+")")
	rubricFile := flag.String("rubric", "", "YAML or TOML rubric file, overrides -revision")
	flagsFile := flag.String("flags", "", "YAML file of ticked criteria")
	rsiLength := flag.Int("rsi", calculator.DefaultRSILength, "RSI length")
	simplified := flag.String("simplified", "auto", "legacy simplified rule: auto, true or false")
	fastMA := flag.Int("sma-fast", calculator.DefaultFastMA, "fast SMA length of the crossover rule (0 disables crossovers)")
	slowMA := flag.Int("sma-slow", calculator.DefaultSlowMA, "slow SMA length of the crossover rule")
	breakout := flag.Int("breakout", strategy.DefaultBreakoutWindow, "breakout look-back in bars (0 disables breakouts)")
	last := flag.Int("last", 0, "only print markers from the last N bars (0 = all)")
	color := flag.Bool("color", true, "colorize output")
	flag.Parse()

	rubric, err := checklist.Resolve(*revision, *rubricFile)
	if err != nil {
		log.Fatalf("[FATAL] load rubric: %v", err)
	}
	useSimplified := rubric.LegacySignals()
	switch *simplified {
	case "auto":
	case "true":
		useSimplified = true
	case "false":
		useSimplified = false
	default:
		log.Fatalf("[FATAL] -simplified must be auto, true or false")
	}

	ev, err := strategy.NewEvaluator(strategy.Config{
		MomentumLength: *rsiLength,
		Simplified:     useSimplified,
		Crossovers:     *fastMA > 0,
		FastMA:         *fastMA,
		SlowMA:         *slowMA,
		Breakouts:      *breakout > 0,
		BreakoutWindow: *breakout,
	})
	if err != nil {
		log.Fatalf("[FATAL] init evaluator: %v", err)
	}
	bars, err := collector.NewCSVSource(*barsFile).FetchBars("", 0)
	if err != nil {
		log.Fatalf("[FATAL] read bars: %v", err)
	}
	signals, err := ev.Replay(bars)
	if err != nil {
		log.Fatalf("[FATAL] replay: %v", err)
	}

	from := 0
	if *last > 0 && *last < len(signals) {
		from = len(signals) - *last
	}
	var events []model.SignalEvent
	for i := from; i < len(signals); i++ {
		events = append(events, signals[i].Events()...)
	}

	initial, err := flags.LoadFile(*flagsFile)
	if err != nil {
		log.Fatalf("[FATAL] load flags: %v", err)
	}
	res, err := rubric.Score(initial)
	if err != nil {
		log.Fatalf("[FATAL] score checklist: %v", err)
	}

	opts := render.Options{Color: *color}
	fmt.Fprintf(os.Stdout, "%d bars, warm-up %d, %d markers\n\n", len(bars), ev.MinBars(), len(events))
	fmt.Fprintln(os.Stdout, render.SignalTable(events, opts))
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, render.ScoreTable(res, opts))
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, render.LadderTable(rubric, opts))
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ChecklistSentinel/internal/api"
	"ChecklistSentinel/internal/checklist"
	"ChecklistSentinel/internal/collector"
	"ChecklistSentinel/internal/config"
	"ChecklistSentinel/internal/flags"
	"ChecklistSentinel/internal/notifier"
	"ChecklistSentinel/internal/recorder"
	"ChecklistSentinel/internal/scheduler"
	"ChecklistSentinel/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ChecklistSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Rubric and flags
	rubric, err := checklist.Resolve(cfg.Checklist.Revision, cfg.Checklist.RubricFile)
	if err != nil {
		log.Fatalf("[FATAL] load rubric: %v", err)
	}
	log.Printf("[INFO] checklist rubric: %s (%d criteria)", rubric.Name(), len(rubric.Criteria()))

	initial, err := flags.LoadFile(cfg.Checklist.FlagsFile)
	if err != nil {
		log.Fatalf("[FATAL] load flags: %v", err)
	}
	fs, err := flags.NewStore(rubric, initial)
	if err != nil {
		log.Fatalf("[FATAL] init flags: %v", err)
	}

	// Evaluator and bar source
	ev, err := strategy.NewEvaluator(cfg.EvaluatorConfig(rubric.LegacySignals()))
	if err != nil {
		log.Fatalf("[FATAL] init evaluator: %v", err)
	}

	var source collector.BarSource
	if cfg.Data.BarsFile == "mock" {
		source = &collector.MockSource{Price: 100}
	} else {
		source = collector.NewCSVSource(cfg.Data.BarsFile)
	}
	log.Printf("[INFO] data source: %s (%s)", source.Name(), cfg.Data.BarsFile)
	col := collector.NewCollector(source, cfg.Data.Symbol, cfg.Data.Limit, ev)

	// Alert sender
	var tn *notifier.TelegramNotifier
	var sender notifier.Sender = notifier.LogSender{}
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		log.Println("[WARN] no Telegram token configured, alerts go to the log")
	}
	dispatcher := notifier.NewDispatcher(sender, cfg.Alerts.MaxRetries)

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, fs, checklist.NewEntryGate(cfg.EntryWait()), dispatcher, cfg.Alerts.ScoreThreshold)
	history := recorder.NewMemoryRecorder(cfg.Alerts.HistorySize)
	defer history.Close()
	sched.Recorder = history
	if err := sched.RegisterAll(cfg.Schedule.EvaluateCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	g, gctx := errgroup.WithContext(ctx)

	if tn != nil {
		g.Go(func() error {
			log.Println("[INFO] Telegram polling started")
			tn.StartPolling(gctx, sched.HandleCommand)
			return nil
		})
	}

	var srv *api.Server
	if cfg.HTTP.Addr != "" {
		srv = api.NewServer(sched, api.NewIPLimiter(cfg.HTTP.RateLimit, cfg.HTTP.Burst))
		g.Go(func() error {
			log.Printf("[INFO] HTTP API listening on %s", cfg.HTTP.Addr)
			return srv.ListenAndServe(cfg.HTTP.Addr)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	// Evaluate once immediately so the first report does not wait for the schedule
	g.Go(func() error {
		sched.Tick()
		return nil
	})

	log.Println("[INFO] ChecklistSentinel is running. Press Ctrl+C to stop.")

	<-gctx.Done()
	log.Println("[INFO] shutdown signal received, stopping...")
	if err := g.Wait(); err != nil {
		log.Printf("[ERROR] %v", err)
	}
	log.Println("[INFO] ChecklistSentinel stopped")
}

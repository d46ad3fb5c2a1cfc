package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"BankLens/internal/assets"
	"BankLens/internal/dashboard"
	"BankLens/internal/notifier"
	"BankLens/internal/scheduler"
)

func serveCmd() *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard, run scheduled snapshots and the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Println("[INFO] BankLens starting...")
			a, err := newApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var tn *notifier.TelegramNotifier
			var sender scheduler.Sender
			if a.cfg.TelegramEnabled() {
				tn = notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
				sender = tn
			}

			sched := scheduler.NewScheduler(ctx, a.collector, sender, a.recorder, a.metrics)
			if err := sched.Register(a.cfg.Schedule.SnapshotCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if tn != nil {
				go tn.StartPolling(ctx, sched.HandleCommand)
				log.Println("[INFO] Telegram polling started")
			}

			if runOnStart || os.Getenv("RUN_ON_START") == "true" {
				log.Println("[INFO] RUN_ON_START enabled, taking a snapshot now")
				go sched.Snapshot(ctx)
			}

			srv, err := dashboard.NewServer(dashboard.Options{
				Addr:      a.cfg.Server.Addr,
				Tickers:   a.cfg.DataSource.Tickers,
				Analyzer:  a.collector,
				Reference: a.reference,
				Catalog:   assets.NewCatalog(a.cfg.Reference.VisualDir),
				Recorder:  a.recorder,
				Metrics:   a.metrics,
				Gatherer:  a.registry,
			})
			if err != nil {
				return err
			}
			srv.Start()

			log.Println("[INFO] BankLens is running. Press Ctrl+C to stop.")
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			log.Println("[INFO] shutdown signal received, stopping...")
			cancel()
			shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
			defer done()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("[WARN] dashboard shutdown: %v", err)
			}
			log.Println("[INFO] BankLens stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "Take a snapshot of every ticker immediately")
	return cmd
}

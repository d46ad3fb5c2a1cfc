package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"BankLens/internal/notifier"
	"BankLens/internal/report"
)

func analyzeCmd() *cobra.Command {
	var (
		record bool
		notify bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <TICKER>",
		Short: "Fetch recent quotes and print the live technical analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(record)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			res, err := a.collector.Analyze(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.recorder.RecordAnalysis(res); err != nil {
				fmt.Fprintf(os.Stderr, "warning: record analysis: %v\n", err)
			}
			fmt.Print(report.Analysis(res))

			if notify {
				if !a.cfg.TelegramEnabled() {
					return fmt.Errorf("--notify needs telegram.bot_token and telegram.chat_id")
				}
				tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
				return tn.SendWithRetry(ctx, notifier.FormatAnalysisReport(res), 3)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&record, "record", false, "Store the result in the configured SQLite history")
	cmd.Flags().BoolVar(&notify, "notify", false, "Send the result to the configured Telegram chat")
	return cmd
}

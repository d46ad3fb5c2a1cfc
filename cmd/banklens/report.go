package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"BankLens/internal/report"
)

func reportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "report <TICKER>",
		Short: "Print the feature-importance report for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.Close()

			ticker := strings.ToUpper(args[0])
			sum, err := a.reference.Summary(ticker)
			if err != nil {
				return err
			}
			text, err := report.FeatureImportance(ticker, sum, time.Now())
			if err != nil {
				return err
			}

			switch out {
			case "":
				fmt.Print(text)
			case ".":
				out = report.FeatureImportanceFilename(ticker)
				fallthrough
			default:
				if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Printf("report written to %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", `Write to a file instead of stdout ("." uses Laporan_FI_<TICKER>.txt)`)
	return cmd
}

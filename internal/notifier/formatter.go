package notifier

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"BankLens/internal/forecast"
	"BankLens/internal/model"
)

// FormatAnalysisReport formats one live analysis into a Telegram message.
func FormatAnalysisReport(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>BankLens %s</b> | %s\n\n", html.EscapeString(a.Ticker), a.ComputedAt.Format("2006-01-02 15:04")))

	if last, ok := a.Series.Last(); ok {
		b.WriteString(fmt.Sprintf("Close %s: %.0f\n", last.Time.Format("2006-01-02"), last.Close))
	}
	b.WriteString(fmt.Sprintf("SMA20: %s | RSI14: %s\n", value(a.Latest.SMA20), value(a.Latest.RSI)))
	b.WriteString(fmt.Sprintf("MACD: %s | Signal: %s\n\n", value(a.Latest.MACD), value(a.Latest.MACDSignal)))

	for _, it := range a.Interpretations {
		b.WriteString(fmt.Sprintf("• <b>%s</b>: %s\n", html.EscapeString(it.Heading), html.EscapeString(it.Status)))
	}

	if e := a.Estimate; e != nil {
		b.WriteString(fmt.Sprintf("\n🎲 %s (simulation): %s (%s)\n",
			html.EscapeString(e.NextLabel), forecast.FormatRupiah(e.Next), forecast.FormatDelta(e.Delta)))
	}

	if len(a.Warnings) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ %d indicator(s) lack history\n", len(a.Warnings)))
	}
	return b.String()
}

// FormatDigest summarises a snapshot run over several tickers.
func FormatDigest(at time.Time, analyses []*model.Analysis, failures map[string]error) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏦 <b>BankLens digest</b> | %s\n\n", at.Format("2006-01-02 15:04")))
	for _, a := range analyses {
		b.WriteString(fmt.Sprintf("<b>%s</b> %s | RSI %s | %s, %s\n",
			html.EscapeString(a.Ticker), value(a.Latest.Close), value(a.Latest.RSI),
			a.Labels.Trend, a.Labels.Crossover))
	}
	failed := make([]string, 0, len(failures))
	for ticker := range failures {
		failed = append(failed, ticker)
	}
	sort.Strings(failed)
	for _, ticker := range failed {
		b.WriteString(fmt.Sprintf("❌ %s: %s\n", html.EscapeString(ticker), html.EscapeString(failures[ticker].Error())))
	}
	if len(analyses) == 0 && len(failures) == 0 {
		b.WriteString("No tickers configured.\n")
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp(tickers []string) string {
	return fmt.Sprintf("Available commands:\n• /analyze TICKER\n• /tickers\n\nTickers: %s", strings.Join(tickers, ", "))
}

func value(v float64) string {
	if !model.IsDefined(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

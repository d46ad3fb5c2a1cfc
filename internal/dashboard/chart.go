package dashboard

import (
	"fmt"
	"html"
	"html/template"
	"math"
	"strings"

	"BankLens/internal/model"
)

// Line is a series drawn as a polyline. Undefined points break the line.
type Line struct {
	Name   string
	Color  string
	Values []float64
}

// Bars is a series drawn as columns from zero.
type Bars struct {
	Name     string
	Color    string
	NegColor string
	Values   []float64
}

// HLine is a horizontal guide, e.g. RSI 70.
type HLine struct {
	Value float64
	Color string
}

// Panel is one chart in the live stack.
type Panel struct {
	Title   string
	Height  int
	Candles []model.OHLCV
	Lines   []Line
	Bars    []Bars
	Guides  []HLine
	// Extent values are always inside the y range.
	Extent []float64
}

const (
	chartWidth = 960
	chartPadX  = 48
	chartPadY  = 16
)

type scale struct {
	n      int
	lo, hi float64
	plotW  float64
	plotH  float64
}

func (s scale) x(i int) float64 {
	if s.n <= 1 {
		return chartPadX + s.plotW/2
	}
	return chartPadX + float64(i)*s.plotW/float64(s.n-1)
}

func (s scale) y(v float64) float64 {
	return chartPadY + (s.hi-v)/(s.hi-s.lo)*s.plotH
}

// bounds returns the min and max of every defined value the panel draws.
func (p Panel) bounds() (lo, hi float64, n int) {
	lo, hi = math.Inf(1), math.Inf(-1)
	see := func(v float64) {
		if !model.IsDefined(v) || math.IsInf(v, 0) {
			return
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for _, c := range p.Candles {
		see(c.Low)
		see(c.High)
	}
	n = len(p.Candles)
	for _, l := range p.Lines {
		n = max(n, len(l.Values))
		for _, v := range l.Values {
			see(v)
		}
	}
	for _, b := range p.Bars {
		n = max(n, len(b.Values))
		see(0)
		for _, v := range b.Values {
			see(v)
		}
	}
	for _, g := range p.Guides {
		see(g.Value)
	}
	for _, v := range p.Extent {
		see(v)
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi, n
}

// SVG renders the panel as an inline svg element.
func (p Panel) SVG() template.HTML {
	height := p.Height
	if height <= 0 {
		height = 200
	}
	lo, hi, n := p.bounds()
	s := scale{
		n: n, lo: lo, hi: hi,
		plotW: chartWidth - 2*chartPadX,
		plotH: float64(height - 2*chartPadY),
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="chart" viewBox="0 0 %d %d" preserveAspectRatio="none" role="img" aria-label="%s">`,
		chartWidth, height, html.EscapeString(p.Title))
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="#111"/>`, chartWidth, height)
	fmt.Fprintf(&b, `<text x="4" y="12" fill="#aaa" font-size="11">%.2f</text>`, hi)
	fmt.Fprintf(&b, `<text x="4" y="%d" fill="#aaa" font-size="11">%.2f</text>`, height-4, lo)

	for _, g := range p.Guides {
		y := s.y(g.Value)
		fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-dasharray="4 4"/>`,
			chartPadX, y, chartWidth-chartPadX, y, g.Color)
	}
	for _, bars := range p.Bars {
		writeBars(&b, s, bars)
	}
	if len(p.Candles) > 0 {
		writeCandles(&b, s, p.Candles)
	}
	for _, l := range p.Lines {
		if d := linePath(s, l.Values); d != "" {
			fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="1.5"><title>%s</title></path>`,
				d, l.Color, html.EscapeString(l.Name))
		}
	}
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

func linePath(s scale, values []float64) string {
	var b strings.Builder
	pen := false
	for i, v := range values {
		if !model.IsDefined(v) {
			pen = false
			continue
		}
		cmd := "L"
		if !pen {
			cmd = "M"
			pen = true
		}
		fmt.Fprintf(&b, "%s%.1f %.1f ", cmd, s.x(i), s.y(v))
	}
	return strings.TrimSpace(b.String())
}

func slotWidth(s scale) float64 {
	if s.n <= 1 {
		return s.plotW / 4
	}
	return s.plotW / float64(s.n) * 0.7
}

func writeBars(b *strings.Builder, s scale, bars Bars) {
	w := slotWidth(s)
	zero := s.y(math.Max(s.lo, math.Min(0, s.hi)))
	for i, v := range bars.Values {
		if !model.IsDefined(v) {
			continue
		}
		y := s.y(v)
		top, h := math.Min(y, zero), math.Abs(zero-y)
		color := bars.Color
		if v < 0 && bars.NegColor != "" {
			color = bars.NegColor
		}
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
			s.x(i)-w/2, top, w, h, color)
	}
}

func writeCandles(b *strings.Builder, s scale, bars []model.OHLCV) {
	w := slotWidth(s)
	for i, c := range bars {
		x := s.x(i)
		color := "#26a69a"
		if c.Close < c.Open {
			color = "#ef5350"
		}
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`,
			x, s.y(c.High), x, s.y(c.Low), color)
		top := s.y(math.Max(c.Open, c.Close))
		h := math.Max(1, s.y(math.Min(c.Open, c.Close))-top)
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
			x-w/2, top, w, h, color)
	}
}

// LivePanels lays out the four stacked charts of the live page.
func LivePanels(a *model.Analysis) []Panel {
	ind := a.Indicators
	return []Panel{
		{
			Title:   "Price Action & Trend",
			Height:  320,
			Candles: a.Series.Bars,
			Lines: []Line{
				{Name: "SMA 20", Color: "#4c8bf5", Values: ind.SMA20},
				{Name: "EMA 20", Color: "#ffa726", Values: ind.EMA20},
				{Name: "BB upper", Color: "#666", Values: ind.BBUpper},
				{Name: "BB lower", Color: "#666", Values: ind.BBLower},
			},
		},
		{
			Title:  "Momentum: RSI",
			Height: 160,
			Lines:  []Line{{Name: "RSI 14", Color: "#ab47bc", Values: ind.RSI14}},
			Guides: []HLine{{Value: 70, Color: "#ef5350"}, {Value: 30, Color: "#66bb6a"}},
			Extent: []float64{0, 100},
		},
		{
			Title:  "Trend: MACD",
			Height: 180,
			Bars:   []Bars{{Name: "Histogram", Color: "#26a69a", NegColor: "#ef5350", Values: ind.MACDHist}},
			Lines: []Line{
				{Name: "MACD", Color: "#4c8bf5", Values: ind.MACD},
				{Name: "Signal", Color: "#ffa726", Values: ind.MACDSignal},
			},
		},
		{
			Title:  "Market Activity: Volume",
			Height: 160,
			Bars:   []Bars{{Name: "Volume", Color: "#008080", Values: a.Series.Volumes()}},
			Lines:  []Line{{Name: "Volume MA 20", Color: "#ffa726", Values: ind.VolumeMA20}},
		},
	}
}

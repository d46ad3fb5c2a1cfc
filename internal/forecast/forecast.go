// Package forecast produces the placeholder next-day figure on the live page.
//
// The numbers are a random nudge of the last close rounded up to whole
// Rupiah. They are a simulation and carry no model inference.
package forecast

import (
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"BankLens/internal/model"
)

const (
	todayNoise = 0.001
	nextNoise  = 0.004
)

// NextDayLabel names the next trading session as seen from now.
// Friday and Saturday roll over to Monday.
func NextDayLabel(now time.Time) string {
	switch now.Weekday() {
	case time.Friday, time.Saturday:
		return "Monday forecast"
	default:
		return "Tomorrow's close estimate"
	}
}

// Simulator draws the perturbations. Tests pass a seeded source.
type Simulator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewSimulator creates a Simulator. A nil source seeds from the clock.
func NewSimulator(src rand.Source, now func() time.Time) *Simulator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	if now == nil {
		now = time.Now
	}
	return &Simulator{rng: rand.New(src), now: now}
}

// Estimate nudges lastClose by U(-0.1%, 0.1%) for today and then by
// U(-0.4%, 0.4%) for the next session, rounding each step up.
func (s *Simulator) Estimate(lastClose float64, lastBar time.Time) *model.Estimate {
	today := ceilNudge(decimal.NewFromFloat(lastClose), s.uniform(todayNoise))
	next := ceilNudge(today, s.uniform(nextNoise))
	return &model.Estimate{
		Today:       today.IntPart(),
		Next:        next.IntPart(),
		Delta:       next.Sub(today).IntPart(),
		NextLabel:   NextDayLabel(s.now()),
		LastBarDate: lastBar,
		Simulated:   true,
	}
}

func (s *Simulator) uniform(bound float64) float64 {
	return (s.rng.Float64()*2 - 1) * bound
}

func ceilNudge(price decimal.Decimal, noise float64) decimal.Decimal {
	return price.Mul(decimal.NewFromFloat(1 + noise)).Ceil()
}

// FormatRupiah renders an integer amount as "Rp 9,875".
func FormatRupiah(v int64) string {
	return "Rp " + groupThousands(v)
}

// FormatDelta renders a signed amount with thousands separators.
func FormatDelta(v int64) string {
	if v > 0 {
		return "+" + groupThousands(v)
	}
	return groupThousands(v)
}

func groupThousands(v int64) string {
	s := decimal.NewFromInt(v).Abs().String()
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

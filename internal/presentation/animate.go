// Package presentation turns an ROI result into displayed text: count-up
// animations, the payback progress bar and the assessment line.
package presentation

import (
	"math"
	"time"

	"github.com/iwvelando/roi-calculator/internal/eventloop"
	"github.com/iwvelando/roi-calculator/pkg/format"
	"github.com/iwvelando/roi-calculator/pkg/mathutil"
)

// Mode selects how an animated value is written.
type Mode struct {
	Currency bool
	Decimals int
	Suffix   string
}

// CurrencyMode writes values through the currency formatter.
var CurrencyMode = Mode{Currency: true}

// NumericMode writes values with one decimal followed by suffix.
func NumericMode(suffix string) Mode {
	return Mode{Decimals: 1, Suffix: suffix}
}

// EaseOutCubic maps linear progress p to 1-(1-p)^3. p is clamped to [0,1].
func EaseOutCubic(p float64) float64 {
	p = mathutil.Clamp(p, 0, 1)
	return 1 - math.Pow(1-p, 3)
}

// Interpolate returns the eased value between start and end at progress p.
func Interpolate(start, end, p float64) float64 {
	return start + (end-start)*EaseOutCubic(p)
}

// Animator counts displayed values up frame by frame. Each call to Animate
// takes a new generation for its target; frames of an older generation are
// dropped so overlapping animations never flicker.
type Animator struct {
	sched    eventloop.Scheduler
	sink     Sink
	currency format.CurrencyFunc

	lastID  uint64
	current map[Target]uint64
}

// NewAnimator creates an animator writing to sink. A nil currency uses format.Currency.
func NewAnimator(sched eventloop.Scheduler, sink Sink, currency format.CurrencyFunc) *Animator {
	if currency == nil {
		currency = format.Currency
	}
	return &Animator{
		sched:    sched,
		sink:     sink,
		currency: currency,
		current:  make(map[Target]uint64),
	}
}

// Animate interpolates target from start to end over duration and returns
// the generation id of the animation. The end value is first rounded to two
// decimals and the last frame writes exactly that value.
func (a *Animator) Animate(target Target, start, end float64, duration time.Duration, mode Mode) uint64 {
	a.lastID++
	id := a.lastID
	a.current[target] = id

	startTime := a.sched.Now()
	endValue := mathutil.Round(end)

	var update func(now time.Time)
	update = func(now time.Time) {
		if a.current[target] != id {
			return
		}

		progress := 1.0
		if duration > 0 {
			progress = math.Min(float64(now.Sub(startTime))/float64(duration), 1)
		}

		if progress < 1 {
			a.sink.SetText(target, a.text(Interpolate(start, endValue, progress), mode))
			a.sched.RequestFrame(update)
			return
		}
		a.sink.SetText(target, a.text(endValue, mode))
	}

	a.sched.RequestFrame(update)
	return id
}

// Generation returns the id of the animation that currently owns target.
func (a *Animator) Generation(target Target) uint64 {
	return a.current[target]
}

func (a *Animator) text(value float64, mode Mode) string {
	return renderValue(value, mode, a.currency)
}

func renderValue(value float64, mode Mode, currency format.CurrencyFunc) string {
	if mode.Currency {
		return currency(value)
	}
	return format.Numeric(value, mode.Decimals, mode.Suffix)
}

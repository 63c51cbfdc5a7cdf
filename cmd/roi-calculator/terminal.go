package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/iwvelando/roi-calculator/internal/presentation"
)

const progressWidth = 24

var labels = map[presentation.Target]string{
	presentation.TargetMonthlyRevenue:      "Revenu mensuel",
	presentation.TargetYearlyRevenue:       "Revenu annuel",
	presentation.TargetPaybackPeriod:       "Retour sur investissement",
	presentation.TargetROI2Years:           "ROI sur 2 ans",
	presentation.TargetROI2YearsAmount:     "",
	presentation.TargetMonthlyFinancing:    "Financement mensuel",
	presentation.TargetFinancingComparison: "",
	presentation.TargetSliderValue:         "Augmentation par client",
}

// terminal draws the recorder's fields to w. With redraw it repaints the
// screen on every change; otherwise it prints once values stop changing.
type terminal struct {
	mu     sync.Mutex
	w      io.Writer
	sink   *presentation.Recorder
	redraw bool
}

func newTerminal(w io.Writer, sink *presentation.Recorder, redraw bool) *terminal {
	return &terminal{w: w, sink: sink, redraw: redraw}
}

func (t *terminal) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	changed := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dirty := t.sink.TakeDirty()
			switch {
			case t.redraw && dirty:
				t.draw(true)
			case !t.redraw && dirty:
				changed = true
			case !t.redraw && changed:
				changed = false
				t.draw(false)
			}
		}
	}
}

func (t *terminal) draw(clear bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	if clear {
		b.WriteString("\033[H\033[2J")
	}
	for _, target := range presentation.Targets {
		text := t.sink.Text(target)
		if label := labels[target]; label != "" {
			fmt.Fprintf(&b, "%-26s %s\n", label, text)
		} else if text != "" {
			fmt.Fprintf(&b, "%-26s %s\n", "", text)
		}
	}
	fmt.Fprintf(&b, "%-26s [%s]\n", "", progressBar(t.sink.Progress()))
	if text := t.sink.Assessment().Text(); text != "" {
		fmt.Fprintf(&b, "%-26s %s\n", "", text)
	}
	fmt.Fprint(t.w, b.String())
}

func (t *terminal) message(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, msg)
}

func progressBar(percent float64) string {
	filled := int(percent / 100 * progressWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > progressWidth {
		filled = progressWidth
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", progressWidth-filled)
}

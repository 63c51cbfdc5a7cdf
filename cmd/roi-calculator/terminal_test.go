package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/roi-calculator/internal/assessment"
	"github.com/iwvelando/roi-calculator/internal/presentation"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{9.375, 2},
		{50, 12},
		{100, 24},
		{150, 24},
		{-5, 0},
	}

	for _, tt := range tests {
		bar := progressBar(tt.percent)
		if len(bar) != progressWidth {
			t.Fatalf("progressBar(%v) has width %d", tt.percent, len(bar))
		}
		if got := strings.Count(bar, "#"); got != tt.filled {
			t.Errorf("progressBar(%v) filled %d cells, expected %d", tt.percent, got, tt.filled)
		}
	}
}

func TestTerminalDraw(t *testing.T) {
	sink := presentation.NewRecorder()
	sink.SetText(presentation.TargetPaybackPeriod, "2.3 mois")
	sink.SetText(presentation.TargetFinancingComparison, "Sur 36 mois")
	sink.SetProgress(50)
	sink.SetAssessment(assessment.Describe(assessment.BandGood))

	var out bytes.Buffer
	term := newTerminal(&out, sink, false)
	term.draw(false)

	text := out.String()
	for _, want := range []string{"Retour sur investissement", "2.3 mois", "Sur 36 mois", "############", "✓ Bon investissement"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "\033[2J") {
		t.Error("plain draw must not clear the screen")
	}
}

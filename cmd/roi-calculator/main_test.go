package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/iwvelando/roi-calculator/internal/calculator"
	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/eventloop"
	"github.com/iwvelando/roi-calculator/internal/presentation"
	"github.com/iwvelando/roi-calculator/pkg/format"
	"go.uber.org/zap"
)

// TestCommandsDriveCalculator runs the terminal pipeline on a real loop and
// checks that a typed edit settles on the recomputed figures.
func TestCommandsDriveCalculator(t *testing.T) {
	conf := config.Default()
	conf.Animation.UpdateDelay = 5 * time.Millisecond
	conf.Animation.CountUpDuration = 20 * time.Millisecond
	conf.Animation.FrameInterval = time.Millisecond

	logger := zap.NewNop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := eventloop.New(logger, conf.Animation.FrameInterval)
	sink := presentation.NewRecorder()
	animator := presentation.NewAnimator(loop, sink, format.Currency)
	presenter := presentation.NewPresenter(animator, sink, format.Currency,
		conf.Animation.CountUpDuration, conf.Multipliers.FinancingMonths)
	coordinator := calculator.NewCoordinator(logger, loop, conf, presenter)
	term := newTerminal(io.Discard, sink, false)

	runDone := make(chan error, 1)
	go func() {
		runDone <- loop.Run(ctx)
	}()

	if err := loop.Post(func() { coordinator.Start() }); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	waitForText(t, sink, presentation.TargetMonthlyRevenue, format.Currency(2000))

	pr, pw := io.Pipe()
	readDone := make(chan struct{})
	go func() {
		readCommands(ctx, pr, loop, coordinator, term, logger, cancel)
		close(readDone)
	}()

	if _, err := io.WriteString(pw, "clientCount=400\n"); err != nil {
		t.Fatalf("write command: %v", err)
	}
	waitForText(t, sink, presentation.TargetMonthlyRevenue, format.Currency(4000))
	waitForText(t, sink, presentation.TargetYearlyRevenue, format.Currency(48000))

	if _, err := io.WriteString(pw, "reset\n"); err != nil {
		t.Fatalf("write command: %v", err)
	}
	waitForText(t, sink, presentation.TargetMonthlyRevenue, format.Currency(2000))

	_ = pw.Close()
	select {
	case <-readDone:
	case <-time.After(2 * time.Second):
		t.Fatal("readCommands did not return after EOF")
	}
	select {
	case <-runDone:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after quit")
	}
}

func waitForText(t *testing.T, sink *presentation.Recorder, target presentation.Target, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if sink.Text(target) == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("%s = %q, expected %q", target, sink.Text(target), want)
}

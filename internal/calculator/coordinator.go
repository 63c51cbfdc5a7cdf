package calculator

import (
	"strconv"

	"github.com/iwvelando/roi-calculator/internal/assessment"
	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/eventloop"
	"github.com/iwvelando/roi-calculator/internal/presentation"
	"github.com/iwvelando/roi-calculator/internal/roi"
	"go.uber.org/zap"
)

// Renderer displays a recomputed result.
type Renderer interface {
	Render(result roi.Result, band assessment.Band) presentation.View
	EchoSlider(raw string)
}

// Outcome is one recomputation.
type Outcome struct {
	Input  Input
	Result roi.Result
	Band   assessment.Band
	View   presentation.View
}

// Coordinator applies input events to the state and recomputes once a burst
// of edits has been quiet for the update delay. All methods must be called
// from the scheduler's loop.
type Coordinator struct {
	logger   *zap.Logger
	sched    eventloop.Scheduler
	conf     *config.Configuration
	renderer Renderer

	state Input

	// pending is the single scheduled recomputation; timerGen invalidates a
	// timer that fired after it was replaced.
	pending  eventloop.Timer
	timerGen uint64

	recomputations int
	last           *Outcome
}

// NewCoordinator creates a coordinator starting from the configured defaults.
func NewCoordinator(logger *zap.Logger, sched eventloop.Scheduler, conf *config.Configuration, renderer Renderer) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		logger:   logger,
		sched:    sched,
		conf:     conf,
		renderer: renderer,
		state:    NewInput(conf.Defaults),
	}
}

// Start echoes the slider and computes the start-up state immediately.
func (c *Coordinator) Start() Outcome {
	c.renderer.EchoSlider(formatRaw(c.state.PotentialIncrease))
	return c.Calculate()
}

// HandleInput applies one edit and reschedules the recomputation.
func (c *Coordinator) HandleInput(field Field, raw string) error {
	if err := c.state.Apply(field, raw); err != nil {
		return err
	}

	c.logger.Debug("input changed",
		zap.String("op", "calculator.HandleInput"),
		zap.String("field", string(field)),
		zap.String("value", raw),
	)

	if field == FieldPotentialIncrease {
		c.renderer.EchoSlider(raw)
	}
	c.schedule()
	return nil
}

func (c *Coordinator) schedule() {
	c.cancelPending()
	gen := c.timerGen
	c.pending = c.sched.AfterFunc(c.conf.Animation.UpdateDelay, func() {
		if gen != c.timerGen {
			return
		}
		c.pending = nil
		c.Calculate()
	})
}

func (c *Coordinator) cancelPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.timerGen++
}

// Pending reports whether a recomputation is scheduled.
func (c *Coordinator) Pending() bool {
	return c.pending != nil
}

// Calculate recomputes from the current state right away.
func (c *Coordinator) Calculate() Outcome {
	snapshot := c.state
	result := roi.Compute(snapshot.ROIInput(), c.conf.Multipliers)
	band := assessment.Assess(result, c.conf.Thresholds)
	view := c.renderer.Render(result, band)

	c.recomputations++
	outcome := Outcome{Input: snapshot, Result: result, Band: band, View: view}
	c.last = &outcome

	c.logger.Debug("roi recalculated",
		zap.String("op", "calculator.Calculate"),
		zap.Bool("sufficient", result.Sufficient),
		zap.Float64("paybackMonths", result.PaybackMonths),
		zap.Float64("roi2YearsPercent", result.ROI2YearsPercent),
		zap.Stringer("band", band),
	)
	return outcome
}

// Reset restores the defaults, drops any pending recomputation and
// recomputes immediately.
func (c *Coordinator) Reset() Outcome {
	c.cancelPending()
	c.state = NewInput(c.conf.Defaults)
	c.logger.Info("calculator reset",
		zap.String("op", "calculator.Reset"),
	)
	return c.Start()
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Input {
	return c.state
}

// Recomputations returns how many times the result was computed.
func (c *Coordinator) Recomputations() int {
	return c.recomputations
}

// LastOutcome returns the latest recomputation, if any.
func (c *Coordinator) LastOutcome() (Outcome, bool) {
	if c.last == nil {
		return Outcome{}, false
	}
	return *c.last, true
}

func formatRaw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

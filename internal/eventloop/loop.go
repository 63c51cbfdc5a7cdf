package eventloop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrStopped is returned by Post once the loop has exited.
var ErrStopped = errors.New("event loop stopped")

const queueSize = 64

// Loop is the real Scheduler. Run drains the queue on the calling goroutine;
// timers and the frame ticker only post into it.
type Loop struct {
	logger        *zap.Logger
	queue         chan func()
	done          chan struct{}
	frameInterval time.Duration

	// frames is only touched from the loop goroutine.
	frames []func(time.Time)
}

// New creates a loop ticking frames every frameInterval.
func New(logger *zap.Logger, frameInterval time.Duration) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	if frameInterval <= 0 {
		frameInterval = 16 * time.Millisecond
	}
	return &Loop{
		logger:        logger,
		queue:         make(chan func(), queueSize),
		done:          make(chan struct{}),
		frameInterval: frameInterval,
	}
}

// Now returns the wall clock.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post queues fn. It is safe to call from any goroutine.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}

	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrStopped
	}
}

// AfterFunc posts fn to the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		if err := l.Post(fn); err != nil {
			l.logger.Debug("dropped timer callback",
				zap.String("op", "eventloop.AfterFunc"),
				zap.Error(err),
			)
		}
	})
}

// RequestFrame schedules fn for the next frame tick.
func (l *Loop) RequestFrame(fn func(now time.Time)) {
	l.frames = append(l.frames, fn)
}

// Run processes callbacks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.frameInterval)
	defer ticker.Stop()
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			l.invoke(fn)
		case now := <-ticker.C:
			if len(l.frames) == 0 {
				continue
			}
			batch := l.frames
			l.frames = nil
			for _, frame := range batch {
				l.invoke(func() { frame(now) })
			}
		}
	}
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event callback panicked",
				zap.String("op", "eventloop.Run"),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	fn()
}

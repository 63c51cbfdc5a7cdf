package eventloop

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by a virtual clock. Nothing runs until
// Advance is called, which makes timing deterministic in tests.
type Manual struct {
	now           time.Time
	frameInterval time.Duration
	seq           uint64
	timers        []*manualTimer
	frames        []func(time.Time)
}

type manualTimer struct {
	owner *Manual
	at    time.Time
	seq   uint64
	fn    func()
	done  bool
}

// NewManual returns a virtual scheduler starting at start.
func NewManual(start time.Time, frameInterval time.Duration) *Manual {
	if frameInterval <= 0 {
		frameInterval = 16 * time.Millisecond
	}
	return &Manual{now: start, frameInterval: frameInterval}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc schedules fn at Now()+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.seq++
	t := &manualTimer{owner: m, at: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// RequestFrame schedules fn on the next virtual frame.
func (m *Manual) RequestFrame(fn func(now time.Time)) {
	m.frames = append(m.frames, fn)
}

// PendingTimers returns the number of timers that have neither fired nor been stopped.
func (m *Manual) PendingTimers() int {
	return len(m.timers)
}

// PendingFrames returns the number of callbacks waiting for the next frame.
func (m *Manual) PendingFrames() int {
	return len(m.frames)
}

// Advance moves the clock forward by d, firing due timers and frames in
// time order. Timers fire before a frame due at the same instant.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next, isTimer, ok := m.nextEvent()
		if !ok || next.After(target) {
			m.now = target
			return
		}
		m.now = next
		if isTimer {
			m.fireTimer()
		} else {
			m.fireFrames()
		}
	}
}

// RunFrames advances frame by frame until no frame is requested, firing any
// timer that falls due on the way. It gives up after maxFrames frames.
func (m *Manual) RunFrames(maxFrames int) int {
	n := 0
	for len(m.frames) > 0 && n < maxFrames {
		m.Advance(m.frameInterval)
		n++
	}
	return n
}

func (m *Manual) nextEvent() (time.Time, bool, bool) {
	var (
		next    time.Time
		isTimer bool
		ok      bool
	)
	if len(m.timers) > 0 {
		m.sortTimers()
		next, isTimer, ok = m.timers[0].at, true, true
	}
	if len(m.frames) > 0 {
		frameAt := m.now.Add(m.frameInterval)
		if !ok || frameAt.Before(next) {
			next, isTimer, ok = frameAt, false, true
		}
	}
	return next, isTimer, ok
}

func (m *Manual) sortTimers() {
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at.Equal(m.timers[j].at) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at.Before(m.timers[j].at)
	})
}

func (m *Manual) fireTimer() {
	t := m.timers[0]
	m.timers = m.timers[1:]
	t.done = true
	t.fn()
}

func (m *Manual) fireFrames() {
	batch := m.frames
	m.frames = nil
	for _, frame := range batch {
		frame(m.now)
	}
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	timers := t.owner.timers
	for i, pending := range timers {
		if pending == t {
			t.owner.timers = append(timers[:i:i], timers[i+1:]...)
			break
		}
	}
	return true
}

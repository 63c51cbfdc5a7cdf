package presentation

import (
	"sync"

	"github.com/iwvelando/roi-calculator/internal/assessment"
)

// Target names a displayed field.
type Target string

const (
	TargetMonthlyRevenue      Target = "monthlyRevenue"
	TargetYearlyRevenue       Target = "yearlyRevenue"
	TargetPaybackPeriod       Target = "paybackPeriod"
	TargetROI2Years           Target = "roi2Years"
	TargetROI2YearsAmount     Target = "roi2YearsAmount"
	TargetMonthlyFinancing    Target = "monthlyFinancing"
	TargetFinancingComparison Target = "financingComparison"
	TargetSliderValue         Target = "sliderValue"
)

// Targets lists the displayed fields in page order.
var Targets = []Target{
	TargetMonthlyRevenue,
	TargetYearlyRevenue,
	TargetPaybackPeriod,
	TargetROI2Years,
	TargetROI2YearsAmount,
	TargetMonthlyFinancing,
	TargetFinancingComparison,
	TargetSliderValue,
}

// Sink receives everything the presentation layer displays.
type Sink interface {
	SetText(target Target, text string)
	SetProgress(percent float64)
	SetAssessment(d assessment.Descriptor)
}

// Recorder is a Sink keeping the latest value of every field and the full
// history of text writes.
type Recorder struct {
	mu         sync.Mutex
	texts      map[Target]string
	history    map[Target][]string
	progress   float64
	assessment assessment.Descriptor
	dirty      bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		texts:   make(map[Target]string),
		history: make(map[Target][]string),
	}
}

func (r *Recorder) SetText(target Target, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts[target] = text
	r.history[target] = append(r.history[target], text)
	r.dirty = true
}

func (r *Recorder) SetProgress(percent float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = percent
	r.dirty = true
}

func (r *Recorder) SetAssessment(d assessment.Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assessment = d
	r.dirty = true
}

// Text returns the latest text written to target.
func (r *Recorder) Text(target Target) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.texts[target]
}

// History returns every text written to target, oldest first.
func (r *Recorder) History(target Target) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history[target]...)
}

// Progress returns the latest progress bar width in percent.
func (r *Recorder) Progress() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

// Assessment returns the latest assessment descriptor.
func (r *Recorder) Assessment() assessment.Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.assessment
}

// TakeDirty reports whether anything was written since the last call and
// clears the flag.
func (r *Recorder) TakeDirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	dirty := r.dirty
	r.dirty = false
	return dirty
}

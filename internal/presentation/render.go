package presentation

import (
	"fmt"
	"time"

	"github.com/iwvelando/roi-calculator/internal/assessment"
	"github.com/iwvelando/roi-calculator/internal/roi"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/iwvelando/roi-calculator/pkg/format"
	"github.com/iwvelando/roi-calculator/pkg/mathutil"
)

var paybackMode = NumericMode(constants.SuffixMonths)
var percentMode = NumericMode(constants.SuffixPercent)

// View is the settled rendering of a result, i.e. what the page shows once
// every animation has finished.
type View struct {
	MonthlyRevenue      string                `json:"monthlyRevenue"`
	YearlyRevenue       string                `json:"yearlyRevenue"`
	PaybackPeriod       string                `json:"paybackPeriod"`
	ProgressPercent     float64               `json:"progressPercent"`
	ROI2Years           string                `json:"roi2Years"`
	ROI2YearsAmount     string                `json:"roi2YearsAmount"`
	MonthlyFinancing    string                `json:"monthlyFinancing"`
	FinancingComparison string                `json:"financingComparison"`
	Assessment          assessment.Descriptor `json:"assessment"`
}

// ProgressPercent maps a payback period onto the bar, full at 24 months.
func ProgressPercent(months float64) float64 {
	return mathutil.Clamp(mathutil.CalculatePercentage(months, constants.PaybackScaleMonths), 0, 100)
}

// BuildView renders result without animation.
func BuildView(result roi.Result, band assessment.Band, currency format.CurrencyFunc, financingMonths float64) View {
	if currency == nil {
		currency = format.Currency
	}
	settled := func(v float64, mode Mode) string {
		return renderValue(mathutil.Round(v), mode, currency)
	}

	return View{
		MonthlyRevenue:      settled(result.MonthlyRevenue, CurrencyMode),
		YearlyRevenue:       settled(result.YearlyRevenue, CurrencyMode),
		PaybackPeriod:       settled(result.PaybackMonths, paybackMode),
		ProgressPercent:     ProgressPercent(result.PaybackMonths),
		ROI2Years:           settled(result.ROI2YearsPercent, percentMode),
		ROI2YearsAmount:     "Gain net: " + currency(result.ROI2YearsAmount),
		MonthlyFinancing:    settled(result.MonthlyFinancing, CurrencyMode),
		FinancingComparison: financingComparison(result, currency, financingMonths),
		Assessment:          assessment.Describe(band),
	}
}

func financingComparison(result roi.Result, currency format.CurrencyFunc, financingMonths float64) string {
	horizon := fmt.Sprintf("Sur %g mois", financingMonths)
	if result.FinancingSurplus > 0 {
		return fmt.Sprintf("%s - Reste %s/mois", horizon, currency(result.FinancingSurplus))
	}
	return horizon
}

// Presenter drives the sink for each recomputed result.
type Presenter struct {
	animator        *Animator
	sink            Sink
	currency        format.CurrencyFunc
	duration        time.Duration
	financingMonths float64
}

// NewPresenter creates a presenter animating over duration.
func NewPresenter(animator *Animator, sink Sink, currency format.CurrencyFunc, duration time.Duration, financingMonths float64) *Presenter {
	if currency == nil {
		currency = format.Currency
	}
	return &Presenter{
		animator:        animator,
		sink:            sink,
		currency:        currency,
		duration:        duration,
		financingMonths: financingMonths,
	}
}

// Render counts every figure up from zero and writes the static texts, the
// progress bar and the assessment immediately. BandNone clears the assessment.
func (p *Presenter) Render(result roi.Result, band assessment.Band) View {
	view := BuildView(result, band, p.currency, p.financingMonths)

	p.animator.Animate(TargetMonthlyRevenue, 0, result.MonthlyRevenue, p.duration, CurrencyMode)
	p.animator.Animate(TargetYearlyRevenue, 0, result.YearlyRevenue, p.duration, CurrencyMode)

	p.animator.Animate(TargetPaybackPeriod, 0, result.PaybackMonths, p.duration, paybackMode)
	p.sink.SetProgress(view.ProgressPercent)
	p.sink.SetAssessment(view.Assessment)

	p.animator.Animate(TargetROI2Years, 0, result.ROI2YearsPercent, p.duration, percentMode)
	p.sink.SetText(TargetROI2YearsAmount, view.ROI2YearsAmount)

	p.animator.Animate(TargetMonthlyFinancing, 0, result.MonthlyFinancing, p.duration, CurrencyMode)
	p.sink.SetText(TargetFinancingComparison, view.FinancingComparison)

	return view
}

// EchoSlider writes the raw potential increase next to its slider.
func (p *Presenter) EchoSlider(raw string) {
	p.sink.SetText(TargetSliderValue, raw)
}

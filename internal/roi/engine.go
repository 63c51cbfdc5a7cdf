// Package roi computes the return on investment of a device purchase from
// the calculator inputs.
package roi

import (
	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/pkg/constants"
)

// Input is the part of the calculator state the formula reads.
type Input struct {
	ClientCount       float64
	PotentialIncrease float64
	DevicePrice       float64
}

// Result is derived from an Input and never updated in place.
type Result struct {
	MonthlyRevenue   float64 `json:"monthlyRevenue"`
	YearlyRevenue    float64 `json:"yearlyRevenue"`
	PaybackMonths    float64 `json:"paybackMonths"`
	TotalRevenue     float64 `json:"totalRevenue"`
	ROI2YearsPercent float64 `json:"roi2YearsPercent"`
	ROI2YearsAmount  float64 `json:"roi2YearsAmount"`
	MonthlyFinancing float64 `json:"monthlyFinancing"`
	FinancingSurplus float64 `json:"financingSurplus"`

	// Sufficient is false for the all-zero result returned when an input
	// required by the formula is not positive.
	Sufficient bool `json:"sufficient"`
}

// Sufficient reports whether in carries enough data to compute a result.
func Sufficient(in Input) bool {
	return in.ClientCount > 0 && in.PotentialIncrease > 0 && in.DevicePrice > 0
}

// Compute derives the ROI metrics. It returns the zero Result, not an error,
// when Sufficient(in) is false. No rounding happens here.
func Compute(in Input, m config.Multipliers) Result {
	if !Sufficient(in) {
		return Result{}
	}

	monthlyRevenue := in.ClientCount * in.PotentialIncrease
	yearlyRevenue := monthlyRevenue * m.MonthsInYear
	totalRevenue := yearlyRevenue * m.ROIPeriodYears
	netProfit := totalRevenue - in.DevicePrice

	var monthlyFinancing float64
	if m.FinancingMonths > 0 {
		monthlyFinancing = in.DevicePrice / m.FinancingMonths
	}

	return Result{
		MonthlyRevenue:   monthlyRevenue,
		YearlyRevenue:    yearlyRevenue,
		PaybackMonths:    in.DevicePrice / monthlyRevenue,
		TotalRevenue:     totalRevenue,
		ROI2YearsPercent: netProfit / in.DevicePrice * constants.PercentageMultiplier,
		ROI2YearsAmount:  netProfit,
		MonthlyFinancing: monthlyFinancing,
		FinancingSurplus: monthlyRevenue - monthlyFinancing,
		Sufficient:       true,
	}
}

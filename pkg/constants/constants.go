// Package constants provides shared constants for the roi-calculator application.
package constants

import "time"

// Calculation constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// ROIPeriodYears is the horizon over which the return on investment is measured
	ROIPeriodYears = 2

	// FinancingMonths is the amortization horizon used for the financing comparison
	FinancingMonths = 36

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Default calculator inputs
const (
	DefaultClients           = 200
	DefaultMonthlyPrice      = 45
	DefaultPotentialIncrease = 10
	DefaultDevicePrice       = 4500
)

// Assessment thresholds, in months
const (
	ExcellentPaybackMonths = 6
	GoodPaybackMonths      = 12

	// PaybackScaleMonths is the payback duration that fills the progress bar
	PaybackScaleMonths = 24
)

// Animation timing
const (
	// CountUpDuration is how long a result takes to count up from zero
	CountUpDuration = 1000 * time.Millisecond

	// UpdateDelay is the quiet period after the last edit before recalculating
	UpdateDelay = 300 * time.Millisecond

	// FrameInterval is the default rendering frame period (~60 fps)
	FrameInterval = 16 * time.Millisecond
)

// Display suffixes
const (
	SuffixPercent = "%"
	SuffixMonths  = " mois"
)

// CustomPriceOption is the device selector value that makes the custom price authoritative.
const CustomPriceOption = "custom"

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variable overrides (e.g. ROI_THRESHOLDS_GOOD)
	EnvPrefix = "ROI"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum JSON request body (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)

// Package config defines the data structures related to configuration and
// includes functions for loading and validating the calculator configuration.
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for roi-calculator.
type Configuration struct {
	Catalog     []DeviceOption `yaml:"catalog"`
	Defaults    Defaults       `yaml:"defaults"`
	Multipliers Multipliers    `yaml:"multipliers"`
	Thresholds  Thresholds     `yaml:"thresholds"`
	Animation   Animation      `yaml:"animation"`
	Logging     LoggingConfig  `yaml:"logging,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// DeviceOption is one entry of the device price catalog.
type DeviceOption struct {
	Price float64 `yaml:"price" json:"price"`
	Label string  `yaml:"label" json:"label"`
}

// Defaults are the calculator inputs at start-up and after a reset.
type Defaults struct {
	Clients           float64 `yaml:"clients" json:"clients"`
	MonthlyPrice      float64 `yaml:"monthlyPrice" json:"monthlyPrice"`
	PotentialIncrease float64 `yaml:"potentialIncrease" json:"potentialIncrease"`
	DevicePrice       float64 `yaml:"devicePrice" json:"devicePrice"`
}

// Multipliers are the fixed factors of the ROI formula.
type Multipliers struct {
	MonthsInYear    float64 `yaml:"monthsInYear" json:"monthsInYear"`
	ROIPeriodYears  float64 `yaml:"roiPeriodYears" json:"roiPeriodYears"`
	FinancingMonths float64 `yaml:"financingMonths" json:"financingMonths"`
}

// Thresholds are the inclusive upper bounds, in months, of the payback bands.
type Thresholds struct {
	Excellent float64 `yaml:"excellent" json:"excellent"`
	Good      float64 `yaml:"good" json:"good"`
}

// Animation holds the presentation timing.
type Animation struct {
	CountUpDuration time.Duration `yaml:"countUpDuration"`
	UpdateDelay     time.Duration `yaml:"updateDelay"`
	FrameInterval   time.Duration `yaml:"frameInterval"`
}

// Default returns the built-in configuration.
func Default() *Configuration {
	return &Configuration{
		Catalog: []DeviceOption{
			{Price: 2500, Label: "M0 - 2 500€ (Studio budget)"},
			{Price: 4500, Label: "M1 - 4 500€ (Studio premium)"},
			{Price: 10000, Label: "M3 - 10 000€ (Professionnel médical)"},
			{Price: 12000, Label: "A5 - 12 000€ (Premium scan 3D)"},
		},
		Defaults: Defaults{
			Clients:           constants.DefaultClients,
			MonthlyPrice:      constants.DefaultMonthlyPrice,
			PotentialIncrease: constants.DefaultPotentialIncrease,
			DevicePrice:       constants.DefaultDevicePrice,
		},
		Multipliers: Multipliers{
			MonthsInYear:    constants.MonthsPerYear,
			ROIPeriodYears:  constants.ROIPeriodYears,
			FinancingMonths: constants.FinancingMonths,
		},
		Thresholds: Thresholds{
			Excellent: constants.ExcellentPaybackMonths,
			Good:      constants.GoodPaybackMonths,
		},
		Animation: Animation{
			CountUpDuration: constants.CountUpDuration,
			UpdateDelay:     constants.UpdateDelay,
			FrameInterval:   constants.FrameInterval,
		},
	}
}

// newViper registers every built-in value as a default so that each key can
// be overridden by the file or by a ROI_* environment variable.
func newViper() *viper.Viper {
	v := viper.New()
	def := Default()

	catalog := make([]map[string]interface{}, 0, len(def.Catalog))
	for _, opt := range def.Catalog {
		catalog = append(catalog, map[string]interface{}{"price": opt.Price, "label": opt.Label})
	}
	v.SetDefault("catalog", catalog)

	v.SetDefault("defaults.clients", def.Defaults.Clients)
	v.SetDefault("defaults.monthlyPrice", def.Defaults.MonthlyPrice)
	v.SetDefault("defaults.potentialIncrease", def.Defaults.PotentialIncrease)
	v.SetDefault("defaults.devicePrice", def.Defaults.DevicePrice)
	v.SetDefault("multipliers.monthsInYear", def.Multipliers.MonthsInYear)
	v.SetDefault("multipliers.roiPeriodYears", def.Multipliers.ROIPeriodYears)
	v.SetDefault("multipliers.financingMonths", def.Multipliers.FinancingMonths)
	v.SetDefault("thresholds.excellent", def.Thresholds.Excellent)
	v.SetDefault("thresholds.good", def.Thresholds.Good)
	v.SetDefault("animation.countUpDuration", def.Animation.CountUpDuration)
	v.SetDefault("animation.updateDelay", def.Animation.UpdateDelay)
	v.SetDefault("animation.frameInterval", def.Animation.FrameInterval)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yml")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields the built-in configuration with
// environment overrides applied.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	sort.SliceStable(configuration.Catalog, func(i, j int) bool {
		return configuration.Catalog[i].Price < configuration.Catalog[j].Price
	})
	return &configuration, nil
}

// FindDevice returns the catalog entry priced at price.
func (c *Configuration) FindDevice(price float64) (DeviceOption, bool) {
	for _, opt := range c.Catalog {
		if opt.Price == price {
			return opt, true
		}
	}
	return DeviceOption{}, false
}

// ValidateConfiguration returns an error for values the pipeline cannot run
// with and warnings for values that are usable but probably mistaken.
func (c *Configuration) ValidateConfiguration() ([]string, error) {
	if c.Multipliers.FinancingMonths <= 0 {
		return nil, fmt.Errorf("multipliers.financingMonths must be positive, got %v", c.Multipliers.FinancingMonths)
	}
	if c.Multipliers.MonthsInYear <= 0 {
		return nil, fmt.Errorf("multipliers.monthsInYear must be positive, got %v", c.Multipliers.MonthsInYear)
	}
	if c.Animation.CountUpDuration <= 0 {
		return nil, fmt.Errorf("animation.countUpDuration must be positive, got %s", c.Animation.CountUpDuration)
	}
	if c.Animation.UpdateDelay < 0 {
		return nil, fmt.Errorf("animation.updateDelay must not be negative, got %s", c.Animation.UpdateDelay)
	}
	if c.Animation.FrameInterval <= 0 {
		return nil, fmt.Errorf("animation.frameInterval must be positive, got %s", c.Animation.FrameInterval)
	}

	var warnings []string
	if c.Thresholds.Excellent > c.Thresholds.Good {
		warnings = append(warnings, fmt.Sprintf("excellent threshold (%v months) is above good threshold (%v months) - good band is unreachable",
			c.Thresholds.Excellent, c.Thresholds.Good))
	}
	if c.Multipliers.ROIPeriodYears <= 0 {
		warnings = append(warnings, fmt.Sprintf("roiPeriodYears is %v - ROI will never be positive", c.Multipliers.ROIPeriodYears))
	}
	if len(c.Catalog) == 0 {
		warnings = append(warnings, "device catalog is empty - only custom prices can be selected")
	}
	for _, opt := range c.Catalog {
		if opt.Price <= 0 {
			warnings = append(warnings, fmt.Sprintf("catalog entry '%s' has non-positive price %v", opt.Label, opt.Price))
		}
	}
	if c.Defaults.DevicePrice > 0 {
		if _, ok := c.FindDevice(c.Defaults.DevicePrice); !ok && len(c.Catalog) > 0 {
			warnings = append(warnings, fmt.Sprintf("default device price %v is not in the catalog", c.Defaults.DevicePrice))
		}
	}

	return warnings, nil
}

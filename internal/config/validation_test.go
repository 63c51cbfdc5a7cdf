package config

import (
	"testing"
	"time"
)

func TestValidateConfigurationValid(t *testing.T) {
	conf := Default()

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		t.Fatalf("ValidateConfiguration() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings for built-in configuration, got %v", warnings)
	}
}

func TestValidateConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Configuration)
	}{
		{"Zero financing months", func(c *Configuration) { c.Multipliers.FinancingMonths = 0 }},
		{"Zero months in year", func(c *Configuration) { c.Multipliers.MonthsInYear = 0 }},
		{"Zero count-up duration", func(c *Configuration) { c.Animation.CountUpDuration = 0 }},
		{"Negative update delay", func(c *Configuration) { c.Animation.UpdateDelay = -time.Millisecond }},
		{"Zero frame interval", func(c *Configuration) { c.Animation.FrameInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Default()
			tt.mutate(conf)
			if _, err := conf.ValidateConfiguration(); err == nil {
				t.Error("expected validation error but got none")
			}
		})
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Configuration)
	}{
		{"Inverted thresholds", func(c *Configuration) { c.Thresholds.Excellent = 18 }},
		{"Zero ROI period", func(c *Configuration) { c.Multipliers.ROIPeriodYears = 0 }},
		{"Empty catalog", func(c *Configuration) { c.Catalog = nil }},
		{"Non-positive catalog price", func(c *Configuration) { c.Catalog[0].Price = 0 }},
		{"Default price outside catalog", func(c *Configuration) { c.Defaults.DevicePrice = 7000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Default()
			tt.mutate(conf)
			warnings, err := conf.ValidateConfiguration()
			if err != nil {
				t.Fatalf("ValidateConfiguration() error = %v", err)
			}
			if len(warnings) == 0 {
				t.Error("expected validation warnings but got none")
			}
			for i, warning := range warnings {
				t.Logf("%d. %s", i+1, warning)
			}
		})
	}
}

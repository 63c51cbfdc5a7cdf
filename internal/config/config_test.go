package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Built-in defaults",
			configPath: "",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationDefaultsMatchBuiltIn(t *testing.T) {
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	def := Default()

	if conf.Defaults != def.Defaults {
		t.Errorf("defaults = %+v, expected %+v", conf.Defaults, def.Defaults)
	}
	if conf.Multipliers != def.Multipliers {
		t.Errorf("multipliers = %+v, expected %+v", conf.Multipliers, def.Multipliers)
	}
	if conf.Thresholds != def.Thresholds {
		t.Errorf("thresholds = %+v, expected %+v", conf.Thresholds, def.Thresholds)
	}
	if conf.Animation != def.Animation {
		t.Errorf("animation = %+v, expected %+v", conf.Animation, def.Animation)
	}
	if len(conf.Catalog) != len(def.Catalog) {
		t.Fatalf("catalog has %d entries, expected %d", len(conf.Catalog), len(def.Catalog))
	}
	for i := range def.Catalog {
		if conf.Catalog[i] != def.Catalog[i] {
			t.Errorf("catalog[%d] = %+v, expected %+v", i, conf.Catalog[i], def.Catalog[i])
		}
	}
}

func TestLoadConfigurationOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	contents := []byte(`catalog:
  - price: 9000
    label: Pro
  - price: 3000
    label: Lite
defaults:
  clients: 50
  devicePrice: 3000
thresholds:
  excellent: 4
animation:
  updateDelay: 150ms
logging:
  level: debug
  format: console
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Defaults.Clients != 50 {
		t.Errorf("expected clients override 50, got %v", conf.Defaults.Clients)
	}
	if conf.Defaults.PotentialIncrease != 10 {
		t.Errorf("expected default potential increase 10, got %v", conf.Defaults.PotentialIncrease)
	}
	if conf.Thresholds.Excellent != 4 || conf.Thresholds.Good != 12 {
		t.Errorf("unexpected thresholds %+v", conf.Thresholds)
	}
	if conf.Animation.UpdateDelay != 150*time.Millisecond {
		t.Errorf("expected update delay 150ms, got %s", conf.Animation.UpdateDelay)
	}
	if conf.Animation.CountUpDuration != time.Second {
		t.Errorf("expected default count-up duration, got %s", conf.Animation.CountUpDuration)
	}
	if len(conf.Catalog) != 2 || conf.Catalog[0].Price != 3000 || conf.Catalog[1].Label != "Pro" {
		t.Errorf("expected catalog sorted by price, got %+v", conf.Catalog)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	t.Setenv("ROI_THRESHOLDS_GOOD", "18")
	t.Setenv("ROI_MULTIPLIERS_FINANCINGMONTHS", "48")

	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Thresholds.Good != 18 {
		t.Errorf("expected good threshold 18 from environment, got %v", conf.Thresholds.Good)
	}
	if conf.Multipliers.FinancingMonths != 48 {
		t.Errorf("expected financing months 48 from environment, got %v", conf.Multipliers.FinancingMonths)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader("defaults:\n  potentialIncrease: 15\n"))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if conf.Defaults.PotentialIncrease != 15 {
		t.Errorf("expected potential increase 15, got %v", conf.Defaults.PotentialIncrease)
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("defaults: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestFindDevice(t *testing.T) {
	conf := Default()

	opt, ok := conf.FindDevice(10000)
	if !ok {
		t.Fatal("expected 10000 to be in the catalog")
	}
	if !strings.HasPrefix(opt.Label, "M3") {
		t.Errorf("unexpected label %q", opt.Label)
	}
	if _, ok := conf.FindDevice(7000); ok {
		t.Error("expected 7000 to be absent from the catalog")
	}
}

func TestExampleConfigurationMatchesDefaults(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join("..", "..", "config.yaml.example"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	def := Default()

	if conf.Defaults != def.Defaults {
		t.Errorf("defaults = %+v, expected %+v", conf.Defaults, def.Defaults)
	}
	if conf.Thresholds != def.Thresholds {
		t.Errorf("thresholds = %+v, expected %+v", conf.Thresholds, def.Thresholds)
	}
	if conf.Animation != def.Animation {
		t.Errorf("animation = %+v, expected %+v", conf.Animation, def.Animation)
	}
	if len(conf.Catalog) != len(def.Catalog) {
		t.Fatalf("catalog has %d entries, expected %d", len(conf.Catalog), len(def.Catalog))
	}
	for i := range def.Catalog {
		if conf.Catalog[i] != def.Catalog[i] {
			t.Errorf("catalog[%d] = %+v, expected %+v", i, conf.Catalog[i], def.Catalog[i])
		}
	}

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		t.Fatalf("ValidateConfiguration() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

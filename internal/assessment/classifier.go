// Package assessment maps a payback period to a qualitative band and to the
// visual descriptor rendered for it.
package assessment

import (
	"fmt"
	"strings"

	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/roi"
)

// Band is a qualitative assessment of a payback period.
type Band int

const (
	// BandNone marks a result that was not assessed (insufficient input).
	BandNone Band = iota
	BandExcellent
	BandGood
	BandRisky
)

var bandNames = map[Band]string{
	BandNone:      "none",
	BandExcellent: "excellent",
	BandGood:      "good",
	BandRisky:     "risky",
}

func (b Band) String() string {
	if name, ok := bandNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// MarshalText encodes the band by name.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a band name.
func (b *Band) UnmarshalText(text []byte) error {
	parsed, err := ParseBand(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBand converts a band name back to a Band.
func ParseBand(name string) (Band, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for band, n := range bandNames {
		if n == normalized {
			return band, nil
		}
	}
	return BandNone, fmt.Errorf("unknown assessment band %q", name)
}

// Classify applies the thresholds to months. Bounds are inclusive, so a tie
// goes to the better band.
func Classify(months float64, t config.Thresholds) Band {
	switch {
	case months <= t.Excellent:
		return BandExcellent
	case months <= t.Good:
		return BandGood
	default:
		return BandRisky
	}
}

// Assess classifies the payback period of a computed result. An insufficient
// result is BandNone: its zero payback must not read as Excellent.
func Assess(result roi.Result, t config.Thresholds) Band {
	if !result.Sufficient {
		return BandNone
	}
	return Classify(result.PaybackMonths, t)
}

// Package calculator owns the calculator inputs and turns input events into
// debounced recomputations.
package calculator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/iwvelando/roi-calculator/internal/config"
	"github.com/iwvelando/roi-calculator/internal/roi"
	"github.com/iwvelando/roi-calculator/pkg/constants"
	"github.com/iwvelando/roi-calculator/pkg/mathutil"
)

// Field names an editable input.
type Field string

const (
	FieldStructureType     Field = "structureType"
	FieldClientCount       Field = "clientCount"
	FieldMonthlyPrice      Field = "monthlyPrice"
	FieldPotentialIncrease Field = "potentialIncrease"
	FieldDevicePrice       Field = "devicePrice"
	FieldCustomPrice       Field = "customPrice"
)

// Fields lists every editable input.
var Fields = []Field{
	FieldStructureType,
	FieldClientCount,
	FieldMonthlyPrice,
	FieldPotentialIncrease,
	FieldDevicePrice,
	FieldCustomPrice,
}

// ParseField resolves a field name, ignoring case.
func ParseField(name string) (Field, error) {
	trimmed := strings.TrimSpace(name)
	for _, f := range Fields {
		if strings.EqualFold(string(f), trimmed) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", name)
}

// PriceSource tells which input the device price follows.
type PriceSource string

const (
	SourceCatalog PriceSource = "catalog"
	SourceCustom  PriceSource = "custom"
)

// Input is the calculator state.
type Input struct {
	StructureType     string      `json:"structureType"`
	ClientCount       float64     `json:"clientCount"`
	MonthlyPrice      float64     `json:"monthlyPrice"`
	PotentialIncrease float64     `json:"potentialIncrease"`
	DevicePrice       float64     `json:"devicePrice"`
	CustomPrice       float64     `json:"customPrice"`
	PriceSource       PriceSource `json:"priceSource"`
}

// NewInput returns the start-up state.
func NewInput(d config.Defaults) Input {
	return Input{
		ClientCount:       d.Clients,
		MonthlyPrice:      d.MonthlyPrice,
		PotentialIncrease: d.PotentialIncrease,
		DevicePrice:       d.DevicePrice,
		PriceSource:       SourceCatalog,
	}
}

// ROIInput returns the values the formula reads.
func (in Input) ROIInput() roi.Input {
	return roi.Input{
		ClientCount:       in.ClientCount,
		PotentialIncrease: in.PotentialIncrease,
		DevicePrice:       in.DevicePrice,
	}
}

// Apply updates the single field named by field from its raw text.
//
// Selecting the custom option on the device selector makes the custom price
// authoritative; selecting any other value returns authority to the catalog.
// A custom price edit only moves the device price while custom is selected.
func (in *Input) Apply(field Field, raw string) error {
	switch field {
	case FieldStructureType:
		in.StructureType = raw
	case FieldClientCount:
		in.ClientCount = ParseNumber(raw)
	case FieldMonthlyPrice:
		in.MonthlyPrice = ParseNumber(raw)
	case FieldPotentialIncrease:
		in.PotentialIncrease = ParseNumber(raw)
	case FieldDevicePrice:
		if strings.EqualFold(strings.TrimSpace(raw), constants.CustomPriceOption) {
			in.PriceSource = SourceCustom
			in.DevicePrice = in.CustomPrice
		} else {
			in.PriceSource = SourceCatalog
			in.DevicePrice = ParseNumber(raw)
		}
	case FieldCustomPrice:
		in.CustomPrice = ParseNumber(raw)
		if in.PriceSource == SourceCustom {
			in.DevicePrice = in.CustomPrice
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading decimal number of raw the way a browser
// number field does. Anything unparsable, NaN or infinite yields 0.
func ParseNumber(raw string) float64 {
	match := numericPrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || !mathutil.IsFinite(v) {
		return 0
	}
	return v
}

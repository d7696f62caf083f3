package bmi

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// NotApplicable is stored in place of a BMI value when it cannot be computed.
const NotApplicable = "N/A"

type Category string

const (
	CategoryUnderweight Category = "underweight"
	CategoryNormal      Category = "normal"
	CategoryOverweight  Category = "overweight"
	CategoryObese       Category = "obese"
)

// Categories lists every category from lightest to heaviest.
var Categories = []Category{CategoryUnderweight, CategoryNormal, CategoryOverweight, CategoryObese}

const (
	underweightLimit = 18.5
	normalLimit      = 25.0
	overweightLimit  = 30.0
)

// Calculate returns weight / (height in meters)^2 rounded to one fraction digit,
// or NotApplicable when the inputs cannot produce a value.
func Calculate(weightKg, heightCm float64) string {
	if !finite(weightKg) || !finite(heightCm) || heightCm == 0 {
		return NotApplicable
	}

	heightM := decimal.NewFromFloat(heightCm).Div(decimal.NewFromInt(100))
	value := decimal.NewFromFloat(weightKg).Div(heightM.Mul(heightM))

	return value.StringFixed(1)
}

// CalculateRaw is Calculate for raw form values.
func CalculateRaw(weight, height string) string {
	w, ok := parseNumber(weight)
	if !ok {
		return NotApplicable
	}
	h, ok := parseNumber(height)
	if !ok {
		return NotApplicable
	}
	return Calculate(w, h)
}

// CategoryFor classifies a BMI value. Lower bounds are inclusive.
func CategoryFor(value float64) Category {
	switch {
	case value < underweightLimit:
		return CategoryUnderweight
	case value < normalLimit:
		return CategoryNormal
	case value < overweightLimit:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// CategoryOf classifies a stored BMI string. It reports false for NotApplicable
// and anything else that is not a number.
func CategoryOf(value string) (Category, bool) {
	f, ok := Parse(value)
	if !ok {
		return "", false
	}
	return CategoryFor(f), true
}

// Parse converts a stored BMI string to a float.
func Parse(value string) (float64, bool) {
	if strings.TrimSpace(value) == NotApplicable {
		return 0, false
	}
	return parseNumber(value)
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || !finite(f) {
		return 0, false
	}
	return f, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Package footprint scores questionnaire answers into a per-category carbon footprint.
//
// Every function is pure. Matching is case-insensitive and unknown options fall
// back to a fixed default instead of failing.
package footprint

import (
	"carbonhero/internal/schema"
	"strings"
)

// level bands, upper bound inclusive
var levels = []struct {
	upTo  float64
	label string
}{
	{5.0, "Excellent"},
	{8.0, "Good"},
	{12.0, "Average"},
	{16.0, "Above Average"},
}

const highLevel = "High"

// ValidationResult outcome of Validate
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// DietFootprint footprint of a diet type
func DietFootprint(dietType string) float64 {
	return dietTable.lookup(dietType)
}

// TransportationFootprint footprint of a transport mode; vehicleType is only read for "car"
func TransportationFootprint(mode string, vehicleType string) float64 {
	if strings.ToLower(mode) == carMode {
		return vehicleTable.lookup(vehicleType)
	}
	return transportTable.lookup(mode)
}

// HousingFootprint heating source base scaled by energy efficiency
func HousingFootprint(heatingSource string, energyEfficiency string) float64 {
	return heatingTable.lookup(heatingSource) * efficiencyTable.lookup(energyEfficiency)
}

// LifestyleFootprint sum of screen time and internet usage footprints
func LifestyleFootprint(screenTime string, internetUsage string) float64 {
	return screenTimeTable.lookup(screenTime) + internetTable.lookup(internetUsage)
}

// WasteFootprint trash bag base scaled by recycling frequency
func WasteFootprint(recycling string, trashBagSize string) float64 {
	return trashBagTable.lookup(trashBagSize) * recyclingTable.lookup(recycling)
}

// TotalFootprint scores every category and sums them
func TotalFootprint(a schema.Answers) schema.Breakdown {
	b := schema.Breakdown{
		Diet:           DietFootprint(a.DietType),
		Transportation: TransportationFootprint(a.TransportMode, a.VehicleType),
		Housing:        HousingFootprint(a.HeatingSource, a.EnergyEfficiency),
		Lifestyle:      LifestyleFootprint(a.ScreenTime, a.InternetUsage),
		Waste:          WasteFootprint(a.Recycling, a.TrashBagSize),
	}
	b.Total = b.Diet + b.Transportation + b.Housing + b.Lifestyle + b.Waste
	return b
}

// Validate checks the required answers. Empty or blank means missing.
func Validate(dietType, transportMode, heatingSource, energyEfficiency string) ValidationResult {
	errs := make([]string, 0)

	if isBlank(dietType) {
		errs = append(errs, "Diet type is required")
	}
	if isBlank(transportMode) {
		errs = append(errs, "Transportation mode is required")
	}
	if isBlank(heatingSource) {
		errs = append(errs, "Heating source is required")
	}
	if isBlank(energyEfficiency) {
		errs = append(errs, "Energy efficiency is required")
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// ValidateAnswers Validate over an answer set
func ValidateAnswers(a schema.Answers) ValidationResult {
	return Validate(a.DietType, a.TransportMode, a.HeatingSource, a.EnergyEfficiency)
}

// Level label of a total footprint
func Level(total float64) string {
	for _, l := range levels {
		if total <= l.upTo {
			return l.label
		}
	}
	return highLevel
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

package footprint

import (
	"carbonhero/internal/schema"
	"strings"
)

type entry struct {
	option string
	value  float64
}

// table maps an option to a value, falling back when the option is unknown
type table struct {
	entries  []entry
	fallback float64
}

func (t table) lookup(option string) float64 {
	option = strings.ToLower(option)
	for _, e := range t.entries {
		if e.option == option {
			return e.value
		}
	}
	return t.fallback
}

func (t table) options() []string {
	result := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		result = append(result, e.option)
	}
	return result
}

const carMode = "car"

var (
	dietTable = table{
		entries: []entry{
			{"vegan", 1.5},
			{"vegetarian", 2.5},
			{"pescatarian", 3.2},
			{"omnivore", 4.8},
		},
		fallback: 3.5,
	}

	transportTable = table{
		entries: []entry{
			{"walking", 0.0},
			{"bicycle", 0.0},
			{"public_transport", 1.2},
			{"motorcycle", 2.8},
		},
		fallback: 2.0,
	}

	vehicleTable = table{
		entries: []entry{
			{"electric", 1.5},
			{"hybrid", 2.8},
			{"gasoline", 4.2},
			{"diesel", 4.6},
		},
		fallback: 3.5,
	}

	heatingTable = table{
		entries: []entry{
			{"renewable", 0.8},
			{"electricity", 2.5},
			{"natural_gas", 3.2},
			{"oil", 4.8},
		},
		fallback: 3.0,
	}

	// multiplier
	efficiencyTable = table{
		entries: []entry{
			{"very_high", 0.6},
			{"high", 0.8},
			{"medium", 1.0},
			{"low", 1.3},
		},
		fallback: 1.0,
	}

	screenTimeTable = table{
		entries: []entry{
			{"low", 0.5},
			{"moderate", 1.2},
			{"high", 2.1},
			{"very_high", 3.2},
		},
		fallback: 1.5,
	}

	internetTable = table{
		entries: []entry{
			{"low", 0.3},
			{"moderate", 0.8},
			{"high", 1.5},
			{"very_high", 2.3},
		},
		fallback: 1.0,
	}

	trashBagTable = table{
		entries: []entry{
			{"small", 1.0},
			{"medium", 2.0},
			{"large", 3.5},
		},
		fallback: 2.0,
	}

	// multiplier
	recyclingTable = table{
		entries: []entry{
			{"always", 0.3},
			{"often", 0.5},
			{"sometimes", 0.8},
			{"never", 1.0},
		},
		fallback: 0.7,
	}
)

// Question answer field and the options the calculator recognises for it
type Question struct {
	Field   string
	Options []string
}

// Questions returns the recognised vocabulary, in questionnaire order
func Questions() []Question {
	return []Question{
		{Field: "diet_type", Options: dietTable.options()},
		{Field: "transportation_mode", Options: append(transportTable.options(), carMode)},
		{Field: "vehicle_type", Options: vehicleTable.options()},
		{Field: "heating_source", Options: heatingTable.options()},
		{Field: "home_energy_efficiency", Options: efficiencyTable.options()},
		{Field: "screen_time", Options: screenTimeTable.options()},
		{Field: "internet_usage", Options: internetTable.options()},
		{Field: "recycling", Options: recyclingTable.options()},
		{Field: "trash_bag_size", Options: trashBagTable.options()},
	}
}

var answerFields = map[string]func(a *schema.Answers) *string{
	"diet_type":              func(a *schema.Answers) *string { return &a.DietType },
	"transportation_mode":    func(a *schema.Answers) *string { return &a.TransportMode },
	"vehicle_type":           func(a *schema.Answers) *string { return &a.VehicleType },
	"heating_source":         func(a *schema.Answers) *string { return &a.HeatingSource },
	"home_energy_efficiency": func(a *schema.Answers) *string { return &a.EnergyEfficiency },
	"screen_time":            func(a *schema.Answers) *string { return &a.ScreenTime },
	"internet_usage":         func(a *schema.Answers) *string { return &a.InternetUsage },
	"recycling":              func(a *schema.Answers) *string { return &a.Recycling },
	"trash_bag_size":         func(a *schema.Answers) *string { return &a.TrashBagSize },
}

// SetAnswer returns a copy of answers with one field replaced.
// The field is matched like "Diet Type" or "diet_type", ok is false for unknown fields.
func SetAnswer(answers schema.Answers, field string, value string) (schema.Answers, bool) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(field)), " ", "_")
	target, ok := answerFields[name]
	if !ok {
		return answers, false
	}
	*target(&answers) = value
	return answers, true
}

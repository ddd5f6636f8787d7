package schema

import "time"

// Answers categorical answers of a footprint questionnaire
type Answers struct {
	DietType         string
	TransportMode    string
	VehicleType      string
	HeatingSource    string
	EnergyEfficiency string
	ScreenTime       string
	InternetUsage    string
	Recycling        string
	TrashBagSize     string
}

// Breakdown footprint per category with total
type Breakdown struct {
	Diet           float64
	Transportation float64
	Housing        float64
	Lifestyle      float64
	Waste          float64
	Total          float64
}

// Categories in breakdown order
var Categories = []string{"diet", "transportation", "housing", "lifestyle", "waste"}

// Values returns category values in Categories order
func (b Breakdown) Values() []float64 {
	return []float64{b.Diet, b.Transportation, b.Housing, b.Lifestyle, b.Waste}
}

// Map returns breakdown keyed by category name, plus "total"
func (b Breakdown) Map() map[string]float64 {
	m := make(map[string]float64, len(Categories)+1)
	for i, v := range b.Values() {
		m[Categories[i]] = v
	}
	m["total"] = b.Total
	return m
}

// Record scored submission of a user
type Record struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Answers   Answers
	Breakdown Breakdown
	Level     string
}

// Stats aggregated view over a user's history
type Stats struct {
	UserID                string
	CurrentFootprint      float64
	AverageFootprint      float64
	Trend                 float64
	TrendPercentage       float64
	ImprovementPercentage float64
	Breakdown             Breakdown
	Level                 string
	Recent                []Record
}

package footprintv1dto

import (
	"carbonhero/internal/schema"
	"errors"
	"time"
)

// Answers questionnaire answers, field names follow the mobile client
type Answers struct {
	DietType         string `json:"diet_type" yaml:"diet_type"`
	TransportMode    string `json:"transportation_mode" yaml:"transportation_mode"`
	VehicleType      string `json:"vehicle_type,omitempty" yaml:"vehicle_type,omitempty"`
	HeatingSource    string `json:"heating_source" yaml:"heating_source"`
	EnergyEfficiency string `json:"home_energy_efficiency" yaml:"home_energy_efficiency"`
	ScreenTime       string `json:"screen_time" yaml:"screen_time"`
	InternetUsage    string `json:"internet_usage" yaml:"internet_usage"`
	Recycling        string `json:"recycling" yaml:"recycling"`
	TrashBagSize     string `json:"trash_bag_size" yaml:"trash_bag_size"`
}

// Model converts answers to the scorer model
func (a Answers) Model() schema.Answers {
	return schema.Answers{
		DietType:         a.DietType,
		TransportMode:    a.TransportMode,
		VehicleType:      a.VehicleType,
		HeatingSource:    a.HeatingSource,
		EnergyEfficiency: a.EnergyEfficiency,
		ScreenTime:       a.ScreenTime,
		InternetUsage:    a.InternetUsage,
		Recycling:        a.Recycling,
		TrashBagSize:     a.TrashBagSize,
	}
}

// FootprintRequest dto of footprint v1 api
type FootprintRequest struct {
	UserID string `json:"userId,omitempty"`
	Answers
}

var errTooLongUserID = errors.New("wrong request, user id is too long")

const maxUserIDLen = 128

// Validate validation of request envelope, answers are validated by the scorer
func (r FootprintRequest) Validate() error {
	if len(r.UserID) > maxUserIDLen {
		return errTooLongUserID
	}
	return nil
}

// UpdateRequest changes one answer of the latest footprint
type UpdateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

var errMissingField = errors.New("wrong request, field is required")

func (r UpdateRequest) Validate() error {
	if r.Field == "" {
		return errMissingField
	}
	return nil
}

// Breakdown response structure of a breakdown
type Breakdown struct {
	Diet           float64 `json:"diet"`
	Transportation float64 `json:"transportation"`
	Housing        float64 `json:"housing"`
	Lifestyle      float64 `json:"lifestyle"`
	Waste          float64 `json:"waste"`
	Total          float64 `json:"total"`
}

// FootprintResponse scored submission
type FootprintResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Breakdown Breakdown `json:"breakdown"`
	Total     float64   `json:"total_footprint"`
	Level     string    `json:"level"`
}

// ValidationResponse result of answer validation
type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ErrorResponse error body
type ErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

// HistoryResponse footprints of a user, newest first
type HistoryResponse struct {
	UserID     string              `json:"userId"`
	Footprints []FootprintResponse `json:"footprints"`
}

// StatsResponse statistics over user history
type StatsResponse struct {
	UserID                string              `json:"userId"`
	CurrentFootprint      float64             `json:"current_footprint"`
	AverageFootprint      float64             `json:"average_footprint"`
	Trend                 float64             `json:"trend"`
	TrendPercentage       float64             `json:"trend_percentage"`
	ImprovementPercentage float64             `json:"improvement_percentage"`
	Breakdown             Breakdown           `json:"breakdown"`
	Level                 string              `json:"level"`
	RecentFootprints      []FootprintResponse `json:"recent_footprints"`
}

// Question option vocabulary of one answer field
type Question struct {
	Field   string   `json:"field"`
	Options []string `json:"options"`
}

// OptionsResponse recognised options
type OptionsResponse struct {
	Questions []Question `json:"questions"`
}

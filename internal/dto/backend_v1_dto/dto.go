package backend_v1_dto

type UserData struct {
	UserID                   string             `json:"userId"`
	DietType                 string             `json:"diet_type"`
	TransportationMode       string             `json:"transportation_mode"`
	VehicleType              string             `json:"vehicle_type"`
	HeatingSource            string             `json:"heating_source"`
	HomeEnergyEfficiency     string             `json:"home_energy_efficiency"`
	ScreenTime               string             `json:"screen_time"`
	InternetUsage            string             `json:"internet_usage"`
	Recycling                string             `json:"recycling"`
	TrashBagSize             string             `json:"trash_bag_size"`
	CarbonFootprint          float64            `json:"carbon_footprint"`
	CarbonFootprintBreakdown map[string]float64 `json:"carbon_footprint_breakdown"`
	FootprintLevel           string             `json:"footprint_level"`
	RecordID                 string             `json:"record_id"`
	Timestamp                int64              `json:"timestamp"`
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

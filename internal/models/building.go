package models

// BuildingTarget is a building-detail record eligible to receive generated
// schedules, scoped to the acting manager. Display metadata only; the
// selection carries nothing but the ID.
type BuildingTarget struct {
	BuildingDetailID string  `json:"buildingDetailId"`
	Name             string  `json:"name"`
	BuildingName     string  `json:"building_name"`
	Area             float64 `json:"area"`
	FloorCount       int     `json:"floor_count"`
	ApartmentCount   int     `json:"apartment_count"`
	Status           string  `json:"status"`
}

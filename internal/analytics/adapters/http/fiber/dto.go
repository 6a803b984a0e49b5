package fiber

// EventCountResponse carries the total over the filtered window
// @Description Total event count DTO
type EventCountResponse struct {
	TotalEvents int64 `json:"total_events"`
}

// EventCountsByTypeResponse always carries all three type keys
type EventCountsByTypeResponse struct {
	View     int64 `json:"view"`
	Click    int64 `json:"click"`
	Location int64 `json:"location"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_date"`
	Message string `json:"message" example:"invalid date, expected YYYY-MM-DD"`
}

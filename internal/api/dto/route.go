package dto

type DestinationRequest struct {
	Name string   `json:"name" validate:"max=200"`
	X    *float64 `json:"x" validate:"required"`
	Y    *float64 `json:"y" validate:"required"`
}

type RouteRequest struct {
	Destinations []DestinationRequest `json:"destinations" validate:"dive"`
	TimeBudgetMS int64                `json:"time_budget_ms" validate:"gte=0"`
}

type StopResponse struct {
	Name            string   `json:"name,omitempty"`
	X               float64  `json:"x"`
	Y               float64  `json:"y"`
	NextHopDistance *float64 `json:"next_hop_distance"`
}

type RouteResponse struct {
	TotalDistance float64        `json:"total_distance"`
	Stops         []StopResponse `json:"stops"`
}

type BatchRouteRequest struct {
	Routes []RouteRequest `json:"routes" validate:"required,min=1,max=50,dive"`
}

type BatchRouteResponse struct {
	Routes []RouteResponse `json:"routes"`
}

package dto

type CityRequest struct {
	City    string `json:"city" validate:"required,max=200"`
	Country string `json:"country" validate:"max=100"`
}

type TripRequest struct {
	Cities       []CityRequest `json:"cities" validate:"required,min=1,dive"`
	HomeCity     string        `json:"home_city" validate:"max=200"`
	TimeBudgetMS int64         `json:"time_budget_ms" validate:"gte=0"`
}

type TripResponse struct {
	RouteResponse
	HomeFirst  bool     `json:"home_first"`
	Unresolved []string `json:"unresolved"`
}

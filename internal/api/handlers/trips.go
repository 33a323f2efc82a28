package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"tour-route-service/internal/api/dto"
	"tour-route-service/internal/services"
)

type TripHandler struct {
	Trips *services.TripPlanner
}

// Plan resolves the posted city names and returns a tour over them,
// starting from home_city when it was resolved.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.TripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	home := strings.TrimSpace(req.HomeCity)
	svcReq := services.TripRequest{
		Cities:     make([]services.CityQuery, 0, len(req.Cities)),
		TimeBudget: time.Duration(req.TimeBudgetMS) * time.Millisecond,
	}
	for i, c := range req.Cities {
		if strings.TrimSpace(c.City) == "" {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("cities[%d]: city is required", i))
			return
		}
		svcReq.Cities = append(svcReq.Cities, services.CityQuery{
			City:    c.City,
			Country: c.Country,
			Home:    home != "" && strings.EqualFold(strings.TrimSpace(c.City), home),
		})
	}

	plan, err := h.Trips.PlanTrip(r.Context(), svcReq)
	if err != nil {
		writeServiceError(w, r, "plan trip", err)
		return
	}

	unresolved := plan.Unresolved
	if unresolved == nil {
		unresolved = []string{}
	}

	writeJSON(w, r, http.StatusOK, dto.TripResponse{
		RouteResponse: toRouteResponse(plan.Route),
		HomeFirst:     plan.HomeFirst,
		Unresolved:    unresolved,
	})
}

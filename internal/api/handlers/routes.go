package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
	"tour-route-service/internal/api/dto"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"
	"tour-route-service/internal/services"
)

// Concurrent solves per batch request.
const batchConcurrency = 4

type RouteHandler struct {
	Routes          *services.RouteReconstructor
	MaxDestinations int
}

// Route computes a single closed tour over the posted destinations.
func (h *RouteHandler) Route(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcReq, err := h.toServiceRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	route, err := h.Routes.CalculateRoute(r.Context(), svcReq)
	if err != nil {
		writeServiceError(w, r, "calculate route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(route))
}

// Batch computes several independent routes. The response preserves request order.
func (h *RouteHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BatchRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reqs := make([]services.RouteRequest, 0, len(req.Routes))
	for i, rr := range req.Routes {
		svcReq, err := h.toServiceRequest(rr)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("routes[%d]: %v", i, err))
			return
		}
		reqs = append(reqs, svcReq)
	}

	routes, err := services.CalculateRoutes(r.Context(), h.Routes, reqs, batchConcurrency)
	if err != nil {
		writeServiceError(w, r, "calculate routes", err)
		return
	}

	res := dto.BatchRouteResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, route := range routes {
		res.Routes = append(res.Routes, toRouteResponse(route))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) toServiceRequest(req dto.RouteRequest) (services.RouteRequest, error) {
	if h.MaxDestinations > 0 && len(req.Destinations) > h.MaxDestinations {
		return services.RouteRequest{}, fmt.Errorf("at most %d destinations allowed", h.MaxDestinations)
	}

	out := services.RouteRequest{
		Destinations: make([]domain.Location, 0, len(req.Destinations)),
		Names:        make([]string, 0, len(req.Destinations)),
		TimeBudget:   time.Duration(req.TimeBudgetMS) * time.Millisecond,
	}
	for _, d := range req.Destinations {
		out.Destinations = append(out.Destinations, domain.Location{X: *d.X, Y: *d.Y})
		out.Names = append(out.Names, d.Name)
	}

	return out, nil
}

func toRouteResponse(route *domain.Route) dto.RouteResponse {
	res := dto.RouteResponse{
		TotalDistance: route.TotalDistance,
		Stops:         make([]dto.StopResponse, 0, len(route.Stops)),
	}
	for i, s := range route.Stops {
		stop := dto.StopResponse{
			X:               s.Location.X,
			Y:               s.Location.Y,
			NextHopDistance: s.NextHopDistance,
		}
		if i < len(route.Labels) {
			stop.Name = route.Labels[i]
		}
		res.Stops = append(res.Stops, stop)
	}
	return res
}

// writeServiceError maps caller mistakes to 400 and everything else to 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInputMismatch), errors.Is(err, domain.ErrInvalidLocation):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

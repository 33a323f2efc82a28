package api

import (
	"net/http"
	"tour-route-service/internal/api/handlers"
	"tour-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// trips may be nil, in which case /trips is not served.
func NewRouter(routes *services.RouteReconstructor, trips *services.TripPlanner, maxDestinations int) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Routes:          routes,
		MaxDestinations: maxDestinations,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes", routeHandler.Route)
	mux.HandleFunc("/routes/batch", routeHandler.Batch)

	if trips != nil {
		tripHandler := &handlers.TripHandler{Trips: trips}
		mux.HandleFunc("/trips", tripHandler.Plan)
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}

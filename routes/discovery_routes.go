package routes

import (
	"kindred_server/controllers"
	"kindred_server/services"

	"github.com/gorilla/mux"
)

// RegisterDiscoveryRoutes sets up routes for candidate discovery under /api/discovery
func RegisterDiscoveryRoutes(r *mux.Router, discoveryService *services.DiscoveryService) {
	controller := controllers.NewDiscoveryController(discoveryService)

	discoveryRouter := r.PathPrefix("/api/discovery").Subrouter()
	discoveryRouter.HandleFunc("", controller.HandleDiscover).Methods("GET")
}

package routes

import (
	"kindred_server/controllers"
	"kindred_server/services"

	"github.com/gorilla/mux"
)

// RegisterSafetyRoutes sets up icebreaker, safety-alert and report routes
func RegisterSafetyRoutes(r *mux.Router, icebreakers *services.IcebreakerService, alerts *services.AlertService, reports *services.ReportService) {
	controller := controllers.NewSafetyController(icebreakers, alerts, reports)

	r.HandleFunc("/api/icebreakers", controller.HandleIcebreakers).Methods("POST")
	r.HandleFunc("/api/alerts/safety", controller.HandleSafetyAlert).Methods("POST")
	r.HandleFunc("/api/reports", controller.HandleReport).Methods("POST")
}

package routes

import (
	"kindred_server/controllers"
	"kindred_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match access under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, blockService *services.BlockService) {
	controller := controllers.NewMatchController(matchService, blockService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("", controller.HandleGetMatches).Methods("GET")
	matchRouter.HandleFunc("/{matchId}", controller.HandleGetMatch).Methods("GET")
	matchRouter.HandleFunc("/{matchId}", controller.HandleUnmatch).Methods("DELETE")
}

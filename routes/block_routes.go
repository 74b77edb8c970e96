package routes

import (
	"kindred_server/controllers"
	"kindred_server/services"

	"github.com/gorilla/mux"
)

// RegisterBlockRoutes sets up routes for blocking under /api/blocks
func RegisterBlockRoutes(r *mux.Router, blockService *services.BlockService) {
	controller := controllers.NewBlockController(blockService)

	blockRouter := r.PathPrefix("/api/blocks").Subrouter()
	blockRouter.HandleFunc("", controller.HandleBlock).Methods("POST")
}

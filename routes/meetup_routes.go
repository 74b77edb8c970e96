package routes

import (
	"kindred_server/controllers"
	"kindred_server/services"

	"github.com/gorilla/mux"
)

// RegisterMeetupRoutes sets up routes for meetup proposals under /api/meetups
func RegisterMeetupRoutes(r *mux.Router, meetupService *services.MeetupService) {
	controller := controllers.NewMeetupController(meetupService)

	meetupRouter := r.PathPrefix("/api/meetups").Subrouter()
	meetupRouter.HandleFunc("", controller.HandlePropose).Methods("POST")
	meetupRouter.HandleFunc("", controller.HandleGetMeetups).Methods("GET")
	meetupRouter.HandleFunc("/accept", controller.HandleAccept).Methods("PATCH")
	meetupRouter.HandleFunc("/cancel", controller.HandleCancel).Methods("PATCH")
}

package controllers

import (
	"encoding/json"
	"net/http"

	"kindred_server/services"
)

// SwipeController struct
type SwipeController struct {
	SwipeService *services.SwipeService
}

// NewSwipeController initializes the swipe controller
func NewSwipeController(service *services.SwipeService) *SwipeController {
	return &SwipeController{SwipeService: service}
}

// HandleSwipe records a vote and reports whether it completed a match.
func (c *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		VoterID   string `json:"voterId"`
		TargetID  string `json:"targetId"`
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.VoterID == "" || request.TargetID == "" || request.Direction == "" {
		http.Error(w, `{"error": "Missing required fields: voterId, targetId, direction"}`, http.StatusBadRequest)
		return
	}

	match, err := c.SwipeService.RecordSwipe(r.Context(), request.VoterID, request.TargetID, request.Direction)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if match == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"matched": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matched": true, "match": match})
}

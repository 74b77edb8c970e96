package controllers

import (
	"net/http"

	"kindred_server/services"
)

// DiscoveryController struct
type DiscoveryController struct {
	DiscoveryService *services.DiscoveryService
}

// NewDiscoveryController initializes the discovery controller
func NewDiscoveryController(service *services.DiscoveryService) *DiscoveryController {
	return &DiscoveryController{DiscoveryService: service}
}

// HandleDiscover returns swipe candidates in the caller's city.
func (c *DiscoveryController) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	city := r.URL.Query().Get("city")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	profiles, err := c.DiscoveryService.GetDiscoverUsers(r.Context(), userID, city)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

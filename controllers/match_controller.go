package controllers

import (
	"net/http"

	"kindred_server/services"

	"github.com/gorilla/mux"
)

// MatchController struct
type MatchController struct {
	MatchService *services.MatchService
	BlockService *services.BlockService
}

// NewMatchController initializes the match controller
func NewMatchController(matchService *services.MatchService, blockService *services.BlockService) *MatchController {
	return &MatchController{MatchService: matchService, BlockService: blockService}
}

// HandleGetMatches lists the caller's matches, most recent activity first.
func (c *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	matches, err := c.MatchService.GetMatchesForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandleGetMatch fetches one match, enforcing membership when userId is given.
func (c *MatchController) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	userID := r.URL.Query().Get("userId")

	if userID != "" {
		match, err := c.MatchService.GetMatchForUser(r.Context(), matchID, userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
		return
	}

	match, err := c.MatchService.GetMatch(r.Context(), matchID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// HandleUnmatch deletes a match and all of its conversation state.
func (c *MatchController) HandleUnmatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]
	if matchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.BlockService.Unmatch(r.Context(), matchID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

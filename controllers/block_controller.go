package controllers

import (
	"encoding/json"
	"net/http"

	"kindred_server/services"
)

// BlockController struct
type BlockController struct {
	BlockService *services.BlockService
}

// NewBlockController initializes the block controller
func NewBlockController(service *services.BlockService) *BlockController {
	return &BlockController{BlockService: service}
}

// HandleBlock records a block and optionally tears down the match.
func (c *BlockController) HandleBlock(w http.ResponseWriter, r *http.Request) {
	var request struct {
		BlockerID string `json:"blockerId"`
		BlockedID string `json:"blockedId"`
		MatchID   string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.BlockerID == "" || request.BlockedID == "" {
		http.Error(w, `{"error": "Missing required fields: blockerId, blockedId"}`, http.StatusBadRequest)
		return
	}

	if err := c.BlockService.BlockUser(r.Context(), request.BlockerID, request.BlockedID, request.MatchID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

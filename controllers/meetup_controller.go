package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"kindred_server/services"
)

// MeetupController struct
type MeetupController struct {
	MeetupService *services.MeetupService
}

// NewMeetupController initializes the meetup controller
func NewMeetupController(service *services.MeetupService) *MeetupController {
	return &MeetupController{MeetupService: service}
}

// HandlePropose creates a meetup proposal.
func (c *MeetupController) HandlePropose(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID     string `json:"matchId"`
		Place       string `json:"place"`
		ScheduledAt string `json:"scheduledAt"`
		Notes       string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.Place == "" || request.ScheduledAt == "" {
		http.Error(w, `{"error": "Missing required fields: matchId, place, scheduledAt"}`, http.StatusBadRequest)
		return
	}

	meetup, err := c.MeetupService.ProposeMeetup(r.Context(), request.MatchID, request.Place, request.ScheduledAt, request.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, meetup)
}

// HandleAccept accepts a proposed meetup.
func (c *MeetupController) HandleAccept(w http.ResponseWriter, r *http.Request) {
	c.handleTransition(w, r, c.MeetupService.AcceptMeetup)
}

// HandleCancel cancels a proposed meetup.
func (c *MeetupController) HandleCancel(w http.ResponseWriter, r *http.Request) {
	c.handleTransition(w, r, c.MeetupService.CancelMeetup)
}

func (c *MeetupController) handleTransition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, matchID, meetupID string) error) {
	var request struct {
		MatchID  string `json:"matchId"`
		MeetupID string `json:"meetupId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.MeetupID == "" {
		http.Error(w, `{"error": "Missing required fields: matchId, meetupId"}`, http.StatusBadRequest)
		return
	}

	if err := apply(r.Context(), request.MatchID, request.MeetupID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleGetMeetups lists a match's meetup proposals.
func (c *MeetupController) HandleGetMeetups(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	if matchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	meetups, err := c.MeetupService.GetMeetupsByMatchID(r.Context(), matchID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meetups)
}

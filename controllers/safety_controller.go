package controllers

import (
	"encoding/json"
	"net/http"

	"kindred_server/services"
)

// SafetyController serves icebreakers, safety alerts and user reports.
type SafetyController struct {
	Icebreakers *services.IcebreakerService
	Alerts      *services.AlertService
	Reports     *services.ReportService
}

// NewSafetyController initializes the safety controller
func NewSafetyController(icebreakers *services.IcebreakerService, alerts *services.AlertService, reports *services.ReportService) *SafetyController {
	return &SafetyController{Icebreakers: icebreakers, Alerts: alerts, Reports: reports}
}

// HandleIcebreakers returns three conversation starters for two interest sets.
func (c *SafetyController) HandleIcebreakers(w http.ResponseWriter, r *http.Request) {
	var request struct {
		InterestsA []string `json:"interestsA"`
		InterestsB []string `json:"interestsB"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	lines := c.Icebreakers.Icebreakers(r.Context(), request.InterestsA, request.InterestsB)
	writeJSON(w, http.StatusOK, map[string][]string{"icebreakers": lines})
}

// HandleSafetyAlert dispatches a meetup safety alert to trusted contacts.
func (c *SafetyController) HandleSafetyAlert(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID     string `json:"userId"`
		FriendName string `json:"friendName"`
		Place      string `json:"place"`
		Time       string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.Alerts.SendSafetyAlert(r.Context(), request.UserID, request.FriendName, request.Place, request.Time); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleReport records a user report.
func (c *SafetyController) HandleReport(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromID  string `json:"fromId"`
		ToID    string `json:"toId"`
		Reason  string `json:"reason"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	report, err := c.Reports.ReportUser(r.Context(), request.FromID, request.ToID, request.Reason, request.Details)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"kindred_server/models"
	"kindred_server/services"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleSendMessage appends a message to a match's conversation.
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var message models.Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if message.MatchID == "" || message.SenderID == "" || message.Text == "" {
		http.Error(w, `{"error": "Missing required fields: matchId, senderId, or text"}`, http.StatusBadRequest)
		return
	}

	stored, err := c.ChatService.SendMessage(r.Context(), message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// HandleGetMessages fetches the ordered conversation of a match.
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	if matchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	messages, err := c.ChatService.GetMessagesByMatchID(r.Context(), matchID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// HandleMarkAsRead advances the caller's read cursor on a match.
func (c *ChatController) HandleMarkAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
		ReadAt  int64  `json:"readAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: matchId, userId"}`, http.StatusBadRequest)
		return
	}
	if request.ReadAt == 0 {
		request.ReadAt = time.Now().UnixMilli()
	}

	if err := c.ChatService.MarkMatchRead(r.Context(), request.MatchID, request.UserID, request.ReadAt); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

package controllers

import (
	"net/http"

	"kindred_server/services"
)

// S3Controller struct
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller initializes the S3 controller
func NewS3Controller(service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: service}
}

// HandleUploadURL presigns a PUT URL for an avatar upload.
func (c *S3Controller) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		http.Error(w, `{"error": "fileName and fileType are required"}`, http.StatusBadRequest)
		return
	}

	url, key, err := c.S3Service.GenerateAvatarUploadURL(r.Context(), fileName, fileType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"uploadUrl": url, "key": key})
}

// HandleReadURL presigns a GET URL for an avatar object.
func (c *S3Controller) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, `{"error": "key is required"}`, http.StatusBadRequest)
		return
	}

	url, err := c.S3Service.GenerateAvatarReadURL(r.Context(), key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"readUrl": url})
}

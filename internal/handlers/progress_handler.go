package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// ProgressHandler handles HTTP requests related to progress records.
type ProgressHandler struct {
	Service *services.ProgressService
}

// NewProgressHandler creates a new instance of ProgressHandler.
func NewProgressHandler(service *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{Service: service}
}

type recordProgressRequest struct {
	Percentage int                `json:"percentage"`
	Milestones []models.Milestone `json:"milestones,omitempty"`
	Notes      string             `json:"notes,omitempty"`
}

// RecordProgressHandler appends a progress record to a goal.
func (h *ProgressHandler) RecordProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var req recordProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during progress record")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.RecordProgress(r.Context(), userID, vars["id"], req.Percentage, req.Milestones, req.Notes)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListProgressHandler returns a goal's progress records, oldest first.
func (h *ProgressHandler) ListProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	records, err := h.Service.ListProgress(r.Context(), userID, vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

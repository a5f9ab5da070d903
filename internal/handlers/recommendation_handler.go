package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RecommendationHandler handles HTTP requests related to recommendations.
type RecommendationHandler struct {
	Service *services.RecommendationService
}

// NewRecommendationHandler creates a new instance of RecommendationHandler.
func NewRecommendationHandler(service *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{Service: service}
}

// CreateRecommendationHandler stores a recommendation owned by the caller.
func (h *RecommendationHandler) CreateRecommendationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var rec models.Recommendation
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during recommendation creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateRecommendation(r.Context(), userID, &rec)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListOwnRecommendationsHandler returns the caller's recommendations.
func (h *RecommendationHandler) ListOwnRecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	recs, err := h.Service.ListOwnRecommendations(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recs)
}

// UpdateRecommendationHandler mutates one of the caller's recommendations.
func (h *RecommendationHandler) UpdateRecommendationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var patch models.Recommendation
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateRecommendation(r.Context(), vars["id"], userID, &patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteRecommendationHandler removes one of the caller's recommendations.
func (h *RecommendationHandler) DeleteRecommendationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.DeleteRecommendation(r.Context(), vars["id"], userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Recommendation deleted"})
}

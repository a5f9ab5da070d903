package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/Aidana2206/GrowthSpace/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// FeedbackHandler handles HTTP requests related to feedback.
type FeedbackHandler struct {
	Service *services.FeedbackService
}

// NewFeedbackHandler creates a new instance of FeedbackHandler.
func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{Service: service}
}

// CreateFeedbackHandler stores a feedback entry authored by the caller.
func (h *FeedbackHandler) CreateFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var req struct {
		Text   string `json:"text"`
		Rating int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during feedback creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateFeedback(r.Context(), userID, req.Text, req.Rating)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListFeedbackHandler returns a page of all feedback. The route restricts
// it to admin roles.
func (h *FeedbackHandler) ListFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)

	entries, total, err := h.Service.ListFeedback(r.Context(), skip, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{Items: entries, Total: total})
}

// ListOwnFeedbackHandler returns the caller's feedback entries.
func (h *FeedbackHandler) ListOwnFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	entries, err := h.Service.ListOwnFeedback(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// DeleteFeedbackHandler removes an entry if the caller is the author or an
// admin.
func (h *FeedbackHandler) DeleteFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.DeleteFeedback(r.Context(), vars["id"], userID, claims.Role); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback deleted"})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/Aidana2206/GrowthSpace/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommunityHandler handles HTTP requests related to communities.
type CommunityHandler struct {
	Service *services.CommunityService
}

// NewCommunityHandler creates a new instance of CommunityHandler.
func NewCommunityHandler(service *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{Service: service}
}

// CreateCommunityHandler handles the creation of a new community.
func (h *CommunityHandler) CreateCommunityHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var community models.Community
	if err := json.NewDecoder(r.Body).Decode(&community); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during community creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	creatorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}
	community.CreatedBy = creatorID

	created, err := h.Service.CreateCommunity(r.Context(), &community)
	if err != nil {
		logrus.WithError(err).Error("Failed to create community")
		handleServiceError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":      claims.UserID,
		"communityID": created.ID.Hex(),
	}).Info("Community successfully created")
	writeJSON(w, http.StatusCreated, created)
}

// GetCommunityHandler handles fetching a single community by its ID.
func (h *CommunityHandler) GetCommunityHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	community, err := h.Service.GetCommunity(r.Context(), vars["communityId"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, community)
}

// ListCommunitiesHandler returns a page of communities with an optional
// name/tag search term.
func (h *CommunityHandler) ListCommunitiesHandler(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	search := r.URL.Query().Get("search")

	communities, total, err := h.Service.ListCommunities(r.Context(), search, skip, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{Items: communities, Total: total})
}

// DeleteCommunityHandler removes a community. The route restricts it to
// Admin/SuperAdmin.
func (h *CommunityHandler) DeleteCommunityHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteCommunity(r.Context(), vars["communityId"]); err != nil {
		logrus.WithError(err).Error("Failed to delete community")
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Community deleted"})
}

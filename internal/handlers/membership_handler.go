package handlers

import (
	"net/http"

	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/Aidana2206/GrowthSpace/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipHandler handles HTTP requests related to community memberships.
type MembershipHandler struct {
	Service *services.MembershipService
}

// NewMembershipHandler creates a new instance of MembershipHandler.
func NewMembershipHandler(service *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{Service: service}
}

// JoinCommunityHandler creates the caller's membership row.
func (h *MembershipHandler) JoinCommunityHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	membership, err := h.Service.Join(r.Context(), userID, vars["communityId"])
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID":      claims.UserID,
			"communityID": vars["communityId"],
		}).WithError(err).Warn("Join failed")
		handleServiceError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":      claims.UserID,
		"communityID": vars["communityId"],
	}).Info("User joined community")
	writeJSON(w, http.StatusCreated, membership)
}

// LeaveCommunityHandler deletes the caller's membership row.
func (h *MembershipHandler) LeaveCommunityHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	if err := h.Service.Leave(r.Context(), userID, vars["communityId"]); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Left community"})
}

// ListMembersHandler returns a page of a community's members. Sort keys:
// name, email, joinedAt; default joinedAt ascending.
func (h *MembershipHandler) ListMembersHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	skip, limit := parsePagination(r)

	sortKey := r.URL.Query().Get("sort")
	if sortKey == "" {
		sortKey = "joinedAt"
	}
	descending := r.URL.Query().Get("order") == "desc"

	members, total, err := h.Service.ListMembers(r.Context(), vars["communityId"], sortKey, descending, skip, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{Items: members, Total: total})
}

// ListOwnMembershipsHandler returns the caller's memberships.
func (h *MembershipHandler) ListOwnMembershipsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	memberships, err := h.Service.ListOwnMemberships(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, memberships)
}

// RemoveMemberHandler force-removes a member from a community. The route
// restricts it to Admin/SuperAdmin.
func (h *MembershipHandler) RemoveMemberHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.RemoveMember(r.Context(), vars["communityId"], vars["userId"]); err != nil {
		handleServiceError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"communityID": vars["communityId"],
		"removedUser": vars["userId"],
	}).Info("Member force-removed")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Member removed"})
}

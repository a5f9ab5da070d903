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

// GoalHandler handles HTTP requests related to goals.
type GoalHandler struct {
	Service *services.GoalService
}

// NewGoalHandler creates a new instance of GoalHandler.
func NewGoalHandler(service *services.GoalService) *GoalHandler {
	return &GoalHandler{Service: service}
}

func requesterID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return primitive.NilObjectID, false
	}
	return userID, true
}

// CreateGoalHandler handles the creation of a new goal.
func (h *GoalHandler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during goal creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateGoal(r.Context(), userID, req.Description)
	if err != nil {
		logrus.WithError(err).Error("Failed to create goal")
		handleServiceError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID": userID.Hex(),
		"goalID": created.ID.Hex(),
	}).Info("Goal successfully created")
	writeJSON(w, http.StatusCreated, created)
}

// GetGoalHandler handles fetching a single goal by its ID.
func (h *GoalHandler) GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	goal, err := h.Service.GetGoal(r.Context(), vars["id"], userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// GetGoalsHandler returns the caller's goals with an optional status filter.
func (h *GoalHandler) GetGoalsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	goals, err := h.Service.GetGoals(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

// UpdateGoalHandler handles updating an existing goal.
func (h *GoalHandler) UpdateGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var patch models.Goal
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateGoal(r.Context(), vars["id"], userID, &patch)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": userID.Hex(),
			"goalID": vars["id"],
		}).WithError(err).Warn("Goal update failed")
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteGoalHandler removes a goal and its progress records.
func (h *GoalHandler) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.DeleteGoal(r.Context(), vars["id"], userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted"})
}

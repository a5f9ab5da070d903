package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NotificationHandler handles HTTP requests related to notifications.
type NotificationHandler struct {
	Service *services.NotificationService
}

// NewNotificationHandler creates a new instance of NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

// BulkCreateHandler fans one notification out to a recipient list. The
// route restricts it to Admin/SuperAdmin.
func (h *NotificationHandler) BulkCreateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipients []string `json:"recipients"`
		Type       string   `json:"type"`
		Message    string   `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	count, err := h.Service.BulkCreate(r.Context(), req.Recipients, req.Type, req.Message)
	if err != nil {
		logrus.WithError(err).Warn("Bulk notification create failed")
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"created": count})
}

// ListOwnHandler returns the caller's unexpired notifications.
func (h *NotificationHandler) ListOwnHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}

	notifications, err := h.Service.GetUserNotifications(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notifications)
}

// MarkReadHandler flips a notification's read flag.
func (h *NotificationHandler) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.MarkAsRead(r.Context(), vars["id"], userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// DeleteHandler removes one of the caller's notifications.
func (h *NotificationHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requesterID(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.Delete(r.Context(), vars["id"], userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted"})
}

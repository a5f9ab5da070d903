package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/Aidana2206/GrowthSpace/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler handles HTTP requests related to community messages.
type MessageHandler struct {
	Service   *services.MessageService
	UploadDir string
}

// NewMessageHandler creates a new instance of MessageHandler.
func NewMessageHandler(service *services.MessageService, uploadDir string) *MessageHandler {
	return &MessageHandler{
		Service:   service,
		UploadDir: uploadDir,
	}
}

type sendMessageRequest struct {
	CommunityID string   `json:"community_id"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments,omitempty"`
}

// SendMessageHandler persists a message and broadcasts it to the
// community's channel.
func (h *MessageHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during message send")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	senderID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	msg, err := h.Service.SendMessage(r.Context(), senderID, req.CommunityID, req.Body, req.Attachments)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// ListMessagesHandler returns a newest-first page of a community's messages.
func (h *MessageHandler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	skip, limit := parsePagination(r)

	messages, total, err := h.Service.ListMessages(r.Context(), vars["communityId"], skip, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{Items: messages, Total: total})
}

// DeleteMessageHandler removes a message if the caller is the sender or an
// admin.
func (h *MessageHandler) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)

	requesterID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	if err := h.Service.DeleteMessage(r.Context(), vars["id"], requesterID, claims.Role); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Message deleted"})
}

// UploadAttachmentHandler stores an attachment file and returns its URL for
// inclusion in a later send.
func (h *MessageHandler) UploadAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.ParseMultipartForm(10 << 20) // max ~10MB
	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(handler.Filename))
	filePath := filepath.Join(h.UploadDir, fileName)

	out, err := createUploadFile(h.UploadDir, filePath)
	if err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":  "/uploads/" + fileName,
		"name": handler.Filename,
	})
}

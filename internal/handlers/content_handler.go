package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// ContentHandler handles HTTP requests related to the content library.
type ContentHandler struct {
	Service *services.ContentService
}

// NewContentHandler creates a new instance of ContentHandler.
func NewContentHandler(service *services.ContentService) *ContentHandler {
	return &ContentHandler{Service: service}
}

// CreateContentHandler stores a library entry. The route restricts it to
// admin roles.
func (h *ContentHandler) CreateContentHandler(w http.ResponseWriter, r *http.Request) {
	var item models.ContentItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during content creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateContentItem(r.Context(), &item)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetContentHandler fetches a single library entry by its ID.
func (h *ContentHandler) GetContentHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	item, err := h.Service.GetContentItem(r.Context(), vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// ListContentHandler returns a page of the library with optional category
// and title filters.
func (h *ContentHandler) ListContentHandler(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	items, total, err := h.Service.ListContentItems(r.Context(), category, search, skip, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse{Items: items, Total: total})
}

// UpdateContentHandler mutates a library entry. Admin-only route.
func (h *ContentHandler) UpdateContentHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var patch models.ContentItem
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateContentItem(r.Context(), vars["id"], &patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteContentHandler removes a library entry. Admin-only route.
func (h *ContentHandler) DeleteContentHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteContentItem(r.Context(), vars["id"]); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Content item deleted"})
}

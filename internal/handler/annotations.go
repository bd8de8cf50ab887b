package handler

import (
	"encoding/json"
	"net/http"

	"guardian-vault-api/internal/service"
	"guardian-vault-api/pkg/apierror"
	"guardian-vault-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// AnnotationsHandler handles item annotation HTTP requests.
type AnnotationsHandler struct {
	annotations *service.AnnotationService
	newItems    *service.NewItemsService
}

// NewAnnotationsHandler creates a new annotations handler.
func NewAnnotationsHandler(annotations *service.AnnotationService, newItems *service.NewItemsService) *AnnotationsHandler {
	return &AnnotationsHandler{annotations: annotations, newItems: newItems}
}

// setAnnotationRequest is the body of PUT /api/v1/annotations/{membership_id}/{item_id}.
type setAnnotationRequest struct {
	Tag   string `json:"tag"`
	Notes string `json:"notes"`
}

// Set handles PUT /api/v1/annotations/{membership_id}/{item_id}
func (h *AnnotationsHandler) Set(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "membership_id")
	itemID := chi.URLParam(r, "item_id")
	if membershipID == "" || itemID == "" {
		response.Error(w, apierror.BadRequest("membership_id and item_id are required"))
		return
	}

	var req setAnnotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON"))
		return
	}

	if err := h.annotations.Set(r.Context(), membershipID, itemID, req.Tag, req.Notes); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{
		"membership_id": membershipID,
		"item_id":       itemID,
		"tag":           req.Tag,
		"notes":         req.Notes,
	})
}

// List handles GET /api/v1/annotations/{membership_id}
func (h *AnnotationsHandler) List(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "membership_id")
	if membershipID == "" {
		response.Error(w, apierror.BadRequest("membership_id is required"))
		return
	}

	annotations, err := h.annotations.List(r.Context(), membershipID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, annotations)
}

// ClearNewItems handles POST /api/v1/new-items/clear
func (h *AnnotationsHandler) ClearNewItems(w http.ResponseWriter, r *http.Request) {
	if h.newItems == nil {
		response.Error(w, apierror.ServiceUnavailable("new item tracking is not available"))
		return
	}
	if err := h.newItems.ClearNew(r.Context()); err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, map[string]interface{}{"status": "cleared"})
}

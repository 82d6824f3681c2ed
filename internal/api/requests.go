package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/foodshare/internal/events"
	"github.com/erazemk/foodshare/internal/lifecycle"
	"github.com/erazemk/foodshare/internal/metrics"
	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

// RequestsHandler handles food request endpoints.
type RequestsHandler struct {
	DB      *sql.DB
	Events  events.Publisher
	Metrics *metrics.Metrics
}

type createRequestRequest struct {
	ListingID string `json:"listing_id"`
	// FoodItem is the field name the original web client sends.
	FoodItem string `json:"foodItem"`
}

type updateStatusRequest struct {
	Status  string `json:"status"`
	Version int64  `json:"version"`
}

// Create handles POST /api/requests/make. The recipient is always the
// authenticated user.
func (h *RequestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	listingID := strings.TrimSpace(firstNonEmpty(req.ListingID, req.FoodItem))
	if listingID == "" {
		jsonError(w, http.StatusBadRequest, "listing_id required")
		return
	}

	actor := actingUser(r)
	created, err := store.CreateRequest(r.Context(), h.DB, actor, listingID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Metrics.RequestCreated()
	if err := h.Events.Publish(r.Context(), events.SubjectRequestCreated, events.NewRequestEvent(created)); err != nil {
		slog.Warn("publishing request event", "request", created.ID, "error", err)
	}

	slog.Info("request made", "user", actor.ID, "request", created.ID, "listing", listingID)
	jsonResponse(w, http.StatusCreated, created)
}

// ListByRecipient handles GET /api/requests/{recipientId}.
func (h *RequestsHandler) ListByRecipient(w http.ResponseWriter, r *http.Request) {
	requests, err := store.ListRequestsByRecipient(r.Context(), h.DB, actingUser(r), r.PathValue("recipientId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if requests == nil {
		requests = []model.Request{}
	}
	jsonResponse(w, http.StatusOK, requests)
}

// ListByProvider handles GET /api/requests/provider/{providerId}.
func (h *RequestsHandler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	requests, err := store.ListRequestsByProvider(r.Context(), h.DB, actingUser(r), r.PathValue("providerId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if requests == nil {
		requests = []model.Request{}
	}
	jsonResponse(w, http.StatusOK, requests)
}

// UpdateStatus handles PUT /api/requests/{id}/status. A version in the body
// makes the update conditional on the caller's last read.
func (h *RequestsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := actingUser(r)
	updated, err := store.UpdateRequestStatus(r.Context(), h.DB, actor, r.PathValue("id"), model.Status(req.Status), req.Version)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if updated.Status == model.StatusDelivered {
		h.Metrics.RequestDelivered()
		if err := h.Events.Publish(r.Context(), events.SubjectRequestDelivered, events.NewRequestEvent(updated)); err != nil {
			slog.Warn("publishing request event", "request", updated.ID, "error", err)
		}
	}

	slog.Info("request status updated", "user", actor.ID, "request", updated.ID, "status", updated.Status, "version", updated.Version)
	jsonResponse(w, http.StatusOK, updated)
}

// Summary handles GET /api/recipients/{recipientId}/summary.
func (h *RequestsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	requests, err := store.ListRequestsByRecipient(r.Context(), h.DB, actingUser(r), r.PathValue("recipientId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, lifecycle.Summarize(requests))
}

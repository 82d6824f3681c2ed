package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/foodshare/internal/events"
	"github.com/erazemk/foodshare/internal/geo"
	"github.com/erazemk/foodshare/internal/imaging"
	"github.com/erazemk/foodshare/internal/match"
	"github.com/erazemk/foodshare/internal/metrics"
	"github.com/erazemk/foodshare/internal/model"
	"github.com/erazemk/foodshare/internal/store"
)

// ListingsHandler handles food listing endpoints.
type ListingsHandler struct {
	DB      *sql.DB
	Events  events.Publisher
	Metrics *metrics.Metrics
}

// quantity accepts a JSON number or a numeric string.
type quantity int

func (q *quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("quantity %s is not a whole number", data)
	}
	*q = quantity(n)
	return nil
}

type createListingRequest struct {
	Name          string   `json:"name"`
	Quantity      quantity `json:"quantity"`
	Type          string   `json:"type"`
	ExpiryDate    string   `json:"expiry_date"`
	Location      string   `json:"location"`
	ContactNumber string   `json:"contact_number"`

	// Field names sent by the original web client.
	ExpiryDateCamel    string `json:"expiryDate"`
	ContactNumberCamel string `json:"contactNumber"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

type mapPoint struct {
	ListingID string  `json:"listing_id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Quantity  int     `json:"quantity"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// List handles GET /api/food. Query parameters q (or name), type and
// location narrow the result.
func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := store.ListListings(r.Context(), h.DB, actingUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, match.Filter(listings, match.ParseQuery(r.URL.Query())))
}

// Create handles POST /api/food/add.
func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	actor := actingUser(r)
	listing, err := store.CreateListing(r.Context(), h.DB, actor, model.ListingAttributes{
		Name:          req.Name,
		Quantity:      int(req.Quantity),
		Type:          req.Type,
		ExpiryDate:    firstNonEmpty(req.ExpiryDate, req.ExpiryDateCamel),
		Location:      req.Location,
		ContactNumber: firstNonEmpty(req.ContactNumber, req.ContactNumberCamel),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Metrics.ListingCreated()
	if err := h.Events.Publish(r.Context(), events.SubjectListingCreated, events.NewListingCreated(listing)); err != nil {
		slog.Warn("publishing listing event", "listing", listing.ID, "error", err)
	}

	slog.Info("listing created", "user", actor.ID, "listing", listing.ID, "name", listing.Name)
	jsonResponse(w, http.StatusCreated, listing)
}

// Get handles GET /api/listings/{id}.
func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := store.GetListing(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if listing == nil {
		jsonError(w, http.StatusNotFound, "listing not found")
		return
	}
	jsonResponse(w, http.StatusOK, listing)
}

// Map handles GET /api/listings/map. Listings whose location is not a
// usable "lat,lng" pair are left out.
func (h *ListingsHandler) Map(w http.ResponseWriter, r *http.Request) {
	listings, err := store.ListListings(r.Context(), h.DB, actingUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	points := []mapPoint{}
	for _, l := range listings {
		p, ok := geo.ParseLatLng(l.Location)
		if !ok {
			continue
		}
		points = append(points, mapPoint{
			ListingID: l.ID,
			Name:      l.Name,
			Type:      l.Type,
			Quantity:  l.Quantity,
			Lat:       p.Lat,
			Lng:       p.Lng,
		})
	}
	jsonResponse(w, http.StatusOK, points)
}

// UploadPhoto handles PUT /api/listings/{id}/photo.
func (h *ListingsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	// Room for the multipart envelope on top of the photo itself.
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+64<<10)

	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "photo too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	photo, err := imaging.ProcessPhoto(file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id := r.PathValue("id")
	actor := actingUser(r)
	if err := store.SetListingPhoto(r.Context(), h.DB, actor, id, photo.Data, photo.MIME); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("listing photo uploaded", "user", actor.ID, "listing", id, "bytes", len(photo.Data))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo uploaded"})
}

// GetPhoto handles GET /api/listings/{id}/photo.
func (h *ListingsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetListingPhoto(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}

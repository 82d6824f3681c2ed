package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/foodshare/internal/events"
	"github.com/erazemk/foodshare/internal/metrics"
	"github.com/erazemk/foodshare/internal/model"
)

// NewRouter creates the API router with all endpoints registered. pub and m
// may be nil.
func NewRouter(db *sql.DB, jwtSecret string, pub events.Publisher, m *metrics.Metrics) http.Handler {
	if pub == nil {
		pub = events.Nop{}
	}

	mux := http.NewServeMux()

	usersHandler := &UsersHandler{DB: db, JWTSecret: jwtSecret}
	listingsHandler := &ListingsHandler{DB: db, Events: pub, Metrics: m}
	requestsHandler := &RequestsHandler{DB: db, Events: pub, Metrics: m}

	authMW := AuthMiddleware(jwtSecret, db)
	authed := func(h http.HandlerFunc) http.Handler { return authMW(h) }
	allowed := func(c model.Capability, h http.HandlerFunc) http.Handler {
		return authMW(RequireCapability(c)(h))
	}

	// Public: registration and login.
	mux.HandleFunc("POST /api/users/register", usersHandler.Register)
	mux.HandleFunc("POST /api/users/login", usersHandler.Login)

	mux.Handle("POST /api/users/logout", authed(usersHandler.Logout))
	mux.Handle("GET /api/users/me", authed(usersHandler.Me))

	// Listings: read (all roles), write (providers).
	mux.Handle("GET /api/food", authed(listingsHandler.List))
	mux.Handle("GET /api/listings", authed(listingsHandler.List))
	mux.Handle("POST /api/food/add", allowed(model.CapCreateListing, listingsHandler.Create))
	mux.Handle("POST /api/listings", allowed(model.CapCreateListing, listingsHandler.Create))
	mux.Handle("GET /api/listings/map", authed(listingsHandler.Map))
	mux.Handle("GET /api/listings/{id}", authed(listingsHandler.Get))
	mux.Handle("PUT /api/listings/{id}/photo", allowed(model.CapManageListingPhoto, listingsHandler.UploadPhoto))
	mux.Handle("GET /api/listings/{id}/photo", authed(listingsHandler.GetPhoto))

	// Requests: recipients make and read their own, providers read and
	// deliver those against their listings.
	mux.Handle("POST /api/requests/make", allowed(model.CapCreateRequest, requestsHandler.Create))
	mux.Handle("POST /api/requests", allowed(model.CapCreateRequest, requestsHandler.Create))
	mux.Handle("GET /api/requests/{recipientId}", authed(requestsHandler.ListByRecipient))
	mux.Handle("GET /api/requests/provider/{providerId}", authed(requestsHandler.ListByProvider))
	mux.Handle("PUT /api/requests/{id}/status", allowed(model.CapUpdateRequestStatus, requestsHandler.UpdateStatus))
	mux.Handle("GET /api/recipients/{recipientId}/summary", authed(requestsHandler.Summary))

	return mux
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/foodshare/internal/lifecycle"
	"github.com/erazemk/foodshare/internal/model"
)

const requestSelect = `SELECT r.id, r.listing_id, r.recipient_id, r.status, r.version, r.requested_at,
	        l.name AS listing_name, l.quantity AS listing_quantity, l.type AS listing_type,
	        l.location AS listing_location, l.provider_id,
	        COALESCE(u.name, '') AS recipient_name
	 FROM requests r
	 JOIN listings l ON l.id = r.listing_id
	 LEFT JOIN users u ON u.id = r.recipient_id`

// CreateRequest records a recipient's claim on a listing. The insert is
// conditional on the listing existing, so a missing listing writes nothing.
func CreateRequest(ctx context.Context, db *sql.DB, actor *model.User, listingID string) (*model.Request, error) {
	if err := model.Require(actor, model.CapCreateRequest); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	result, err := db.ExecContext(ctx,
		`INSERT INTO requests (id, listing_id, recipient_id, status, version, requested_at)
		 SELECT ?, l.id, ?, ?, 1, ? FROM listings l WHERE l.id = ?`,
		id, actor.ID, string(model.StatusPending), time.Now().UTC(), listingID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking created request: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: listing %s", model.ErrNotFound, listingID)
	}

	return GetRequest(ctx, db, id)
}

// GetRequest returns a request by ID with listing and recipient summaries,
// or nil if it does not exist.
func GetRequest(ctx context.Context, db *sql.DB, id string) (*model.Request, error) {
	r := &model.Request{}
	err := db.QueryRowContext(ctx, requestSelect+` WHERE r.id = ?`, id).Scan(requestDest(r)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting request: %w", err)
	}
	return r, nil
}

// ListRequestsByRecipient returns the requests a recipient has made, oldest
// first. Recipients may only read their own requests.
func ListRequestsByRecipient(ctx context.Context, db *sql.DB, actor *model.User, recipientID string) ([]model.Request, error) {
	if err := model.Require(actor, model.CapReadRecipientRequests); err != nil {
		return nil, err
	}
	if actor.ID != recipientID {
		return nil, fmt.Errorf("%w: cannot read another recipient's requests", model.ErrAuthorization)
	}

	rows, err := db.QueryContext(ctx,
		requestSelect+` WHERE r.recipient_id = ? ORDER BY r.requested_at, r.rowid`, recipientID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recipient requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// ListRequestsByProvider returns requests made against any listing owned by
// the provider. Listings are narrowed through the provider index first and
// requests are then matched by listing membership.
func ListRequestsByProvider(ctx context.Context, db *sql.DB, actor *model.User, providerID string) ([]model.Request, error) {
	if err := model.Require(actor, model.CapReadProviderRequests); err != nil {
		return nil, err
	}
	if actor.ID != providerID {
		return nil, fmt.Errorf("%w: cannot read another provider's requests", model.ErrAuthorization)
	}

	rows, err := db.QueryContext(ctx,
		requestSelect+`
		 WHERE r.listing_id IN (SELECT id FROM listings INDEXED BY idx_listings_provider WHERE provider_id = ?)
		 ORDER BY r.requested_at, r.rowid`, providerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing provider requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// UpdateRequestStatus moves a request to a new status on behalf of the
// provider owning the referenced listing. The write is a compare-and-swap on
// the request version; if expectedVersion is positive it must also match the
// caller's view. A lost race surfaces as ErrInvalidTransition.
func UpdateRequestStatus(ctx context.Context, db *sql.DB, actor *model.User, requestID string, newStatus model.Status, expectedVersion int64) (*model.Request, error) {
	if err := model.Require(actor, model.CapUpdateRequestStatus); err != nil {
		return nil, err
	}
	if _, err := model.ParseStatus(string(newStatus)); err != nil {
		return nil, err
	}

	var (
		current    string
		version    int64
		providerID string
	)
	err := db.QueryRowContext(ctx,
		`SELECT r.status, r.version, l.provider_id
		 FROM requests r JOIN listings l ON l.id = r.listing_id
		 WHERE r.id = ?`, requestID,
	).Scan(&current, &version, &providerID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: request %s", model.ErrNotFound, requestID)
	}
	if err != nil {
		return nil, fmt.Errorf("getting request status: %w", err)
	}

	if providerID != actor.ID {
		return nil, fmt.Errorf("%w: request belongs to another provider's listing", model.ErrAuthorization)
	}

	if err := lifecycle.CheckTransition(model.Status(current), newStatus); err != nil {
		return nil, err
	}

	if expectedVersion > 0 && expectedVersion != version {
		return nil, fmt.Errorf("%w: stale version %d, current is %d", model.ErrInvalidTransition, expectedVersion, version)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE requests SET status = ?, version = version + 1 WHERE id = ? AND version = ?`,
		string(newStatus), requestID, version,
	)
	if err != nil {
		return nil, fmt.Errorf("updating request status: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking request status update: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: request %s was modified concurrently", model.ErrInvalidTransition, requestID)
	}

	return GetRequest(ctx, db, requestID)
}

func requestDest(r *model.Request) []any {
	return []any{
		&r.ID, &r.ListingID, &r.RecipientID, &r.Status, &r.Version, &r.RequestedAt,
		&r.ListingName, &r.ListingQuantity, &r.ListingType,
		&r.ListingLocation, &r.ProviderID,
		&r.RecipientName,
	}
}

func scanRequests(rows *sql.Rows) ([]model.Request, error) {
	var requests []model.Request
	for rows.Next() {
		var r model.Request
		if err := rows.Scan(requestDest(&r)...); err != nil {
			return nil, fmt.Errorf("scanning request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

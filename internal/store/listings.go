package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/foodshare/internal/model"
)

const listingSelect = `SELECT l.id, l.name, l.quantity, l.type, l.expiry_date, l.location,
	        l.contact_number, l.provider_id, l.created_at,
	        COALESCE(u.name, '') AS provider_name,
	        EXISTS (SELECT 1 FROM listing_photos p WHERE p.listing_id = l.id) AS has_photo
	 FROM listings l
	 LEFT JOIN users u ON u.id = l.provider_id`

// CreateListing publishes a new listing on behalf of a provider. The role
// check runs before attribute validation so a recipient is always refused.
func CreateListing(ctx context.Context, db *sql.DB, actor *model.User, attrs model.ListingAttributes) (*model.Listing, error) {
	if err := model.Require(actor, model.CapCreateListing); err != nil {
		return nil, err
	}

	attrs = attrs.Normalize()
	if err := attrs.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO listings (id, name, quantity, type, expiry_date, location, contact_number, provider_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, attrs.Name, attrs.Quantity, attrs.Type, attrs.ExpiryDate, attrs.Location,
		attrs.ContactNumber, actor.ID, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating listing: %w", err)
	}

	return GetListing(ctx, db, id)
}

// GetListing returns a listing by ID, or nil if it does not exist.
func GetListing(ctx context.Context, db *sql.DB, id string) (*model.Listing, error) {
	l := &model.Listing{}
	err := db.QueryRowContext(ctx, listingSelect+` WHERE l.id = ?`, id).Scan(listingDest(l)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting listing: %w", err)
	}
	return l, nil
}

// ListListings returns every listing in creation order with the provider
// name resolved. Each call reads a fresh snapshot.
func ListListings(ctx context.Context, db *sql.DB, actor *model.User) ([]model.Listing, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: no acting user", model.ErrAuthorization)
	}

	rows, err := db.QueryContext(ctx, listingSelect+` ORDER BY l.created_at, l.rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		var l model.Listing
		if err := rows.Scan(listingDest(&l)...); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func listingDest(l *model.Listing) []any {
	return []any{
		&l.ID, &l.Name, &l.Quantity, &l.Type, &l.ExpiryDate, &l.Location,
		&l.ContactNumber, &l.ProviderID, &l.CreatedAt,
		&l.ProviderName, &l.HasPhoto,
	}
}

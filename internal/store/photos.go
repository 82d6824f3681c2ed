package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/foodshare/internal/model"
)

// SetListingPhoto stores (or replaces) the photo of a listing. Only the
// provider who published the listing may do this. The listing record itself
// is left untouched.
func SetListingPhoto(ctx context.Context, db *sql.DB, actor *model.User, listingID string, image []byte, mime string) error {
	if err := model.Require(actor, model.CapManageListingPhoto); err != nil {
		return err
	}

	var providerID string
	err := db.QueryRowContext(ctx,
		`SELECT provider_id FROM listings WHERE id = ?`, listingID,
	).Scan(&providerID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: listing %s", model.ErrNotFound, listingID)
	}
	if err != nil {
		return fmt.Errorf("getting listing owner: %w", err)
	}
	if providerID != actor.ID {
		return fmt.Errorf("%w: listing belongs to another provider", model.ErrAuthorization)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO listing_photos (listing_id, image, image_mime) VALUES (?, ?, ?)
		 ON CONFLICT (listing_id) DO UPDATE SET image = excluded.image,
		     image_mime = excluded.image_mime, updated_at = CURRENT_TIMESTAMP`,
		listingID, image, mime,
	)
	if err != nil {
		return fmt.Errorf("setting listing photo: %w", err)
	}
	return nil
}

// GetListingPhoto returns a listing's photo and MIME type, or nil data if
// the listing has none.
func GetListingPhoto(ctx context.Context, db *sql.DB, listingID string) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM listing_photos WHERE listing_id = ?`, listingID,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting listing photo: %w", err)
	}
	return image, mime, nil
}

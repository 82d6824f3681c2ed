package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE COLLATE NOCASE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL CHECK (role IN ('provider', 'recipient')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS listings (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL CHECK (name <> ''),
    quantity       INTEGER NOT NULL CHECK (quantity > 0),
    type           TEXT NOT NULL,
    expiry_date    TEXT NOT NULL,
    location       TEXT NOT NULL,
    contact_number TEXT NOT NULL,
    provider_id    TEXT NOT NULL REFERENCES users(id),
    created_at     DATETIME NOT NULL
);

-- Provider -> listings index used by the per-provider request join.
CREATE INDEX IF NOT EXISTS idx_listings_provider ON listings(provider_id);

CREATE TABLE IF NOT EXISTS listing_photos (
    listing_id TEXT PRIMARY KEY REFERENCES listings(id),
    image      BLOB NOT NULL,
    image_mime TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS requests (
    id           TEXT PRIMARY KEY,
    listing_id   TEXT NOT NULL REFERENCES listings(id),
    recipient_id TEXT NOT NULL REFERENCES users(id),
    status       TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'in transit', 'delivered')),
    version      INTEGER NOT NULL DEFAULT 1,
    requested_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_requests_listing ON requests(listing_id);
CREATE INDEX IF NOT EXISTS idx_requests_recipient ON requests(recipient_id);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

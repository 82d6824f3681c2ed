package model

import (
	"fmt"
	"time"
)

// Request is a recipient's claim on a listing.
type Request struct {
	ID          string    `json:"id"`
	ListingID   string    `json:"listing_id"`
	RecipientID string    `json:"recipient_id"`
	Status      Status    `json:"status"`
	Version     int64     `json:"version"`
	RequestedAt time.Time `json:"requested_at"`

	// Joined fields (not always populated).
	ListingName     string `json:"listing_name,omitempty"`
	ListingQuantity int    `json:"listing_quantity,omitempty"`
	ListingType     string `json:"listing_type,omitempty"`
	ListingLocation string `json:"listing_location,omitempty"`
	ProviderID      string `json:"provider_id,omitempty"`
	RecipientName   string `json:"recipient_name,omitempty"`
}

// Status is a request's position in the delivery workflow.
type Status string

// Request statuses, in lifecycle order.
const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in transit"
	StatusDelivered Status = "delivered"
)

// ParseStatus converts wire text to a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusInTransit, StatusDelivered:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusDelivered
}

package events

import (
	"time"

	"github.com/erazemk/foodshare/internal/model"
)

// ListingCreated is published after a provider adds a listing.
type ListingCreated struct {
	ListingID  string    `json:"listing_id"`
	ProviderID string    `json:"provider_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

// RequestEvent is published when a request is made or delivered.
type RequestEvent struct {
	RequestID   string       `json:"request_id"`
	ListingID   string       `json:"listing_id"`
	RecipientID string       `json:"recipient_id"`
	ProviderID  string       `json:"provider_id"`
	Status      model.Status `json:"status"`
	Version     int64        `json:"version"`
}

func NewListingCreated(l *model.Listing) ListingCreated {
	return ListingCreated{
		ListingID:  l.ID,
		ProviderID: l.ProviderID,
		Name:       l.Name,
		Type:       l.Type,
		Quantity:   l.Quantity,
		CreatedAt:  l.CreatedAt,
	}
}

func NewRequestEvent(r *model.Request) RequestEvent {
	return RequestEvent{
		RequestID:   r.ID,
		ListingID:   r.ListingID,
		RecipientID: r.RecipientID,
		ProviderID:  r.ProviderID,
		Status:      r.Status,
		Version:     r.Version,
	}
}

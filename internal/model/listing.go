package model

import (
	"fmt"
	"strings"
	"time"
)

// Listing is a surplus food offer published by a provider. Listings are
// never updated or deleted once created.
type Listing struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	Type          string    `json:"type"`
	ExpiryDate    string    `json:"expiry_date"`
	Location      string    `json:"location"`
	ContactNumber string    `json:"contact_number"`
	ProviderID    string    `json:"provider_id"`
	CreatedAt     time.Time `json:"created_at"`

	// Joined fields (not always populated).
	ProviderName string `json:"provider_name,omitempty"`
	HasPhoto     bool   `json:"has_photo"`
}

// Food types.
const (
	FoodTypeVeg    = "veg"
	FoodTypeNonVeg = "non-veg"
)

// ExpiryDateLayout is the calendar date format of Listing.ExpiryDate.
const ExpiryDateLayout = "2006-01-02"

// ListingAttributes are the provider-supplied fields of a new listing.
type ListingAttributes struct {
	Name          string
	Quantity      int
	Type          string
	ExpiryDate    string
	Location      string
	ContactNumber string
}

// Normalize trims surrounding whitespace and lower-cases the food type.
func (a ListingAttributes) Normalize() ListingAttributes {
	a.Name = strings.TrimSpace(a.Name)
	a.Type = strings.ToLower(strings.TrimSpace(a.Type))
	a.ExpiryDate = strings.TrimSpace(a.ExpiryDate)
	a.Location = strings.TrimSpace(a.Location)
	a.ContactNumber = strings.TrimSpace(a.ContactNumber)
	return a
}

// Validate reports the first missing or malformed attribute. The expiry
// date is only checked for format, not against today.
func (a ListingAttributes) Validate() error {
	switch {
	case a.Name == "":
		return fmt.Errorf("%w: name required", ErrValidation)
	case a.Quantity <= 0:
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	case a.Type == "":
		return fmt.Errorf("%w: type required", ErrValidation)
	case a.Type != FoodTypeVeg && a.Type != FoodTypeNonVeg:
		return fmt.Errorf("%w: type must be %q or %q", ErrValidation, FoodTypeVeg, FoodTypeNonVeg)
	case a.ExpiryDate == "":
		return fmt.Errorf("%w: expiry_date required", ErrValidation)
	case a.Location == "":
		return fmt.Errorf("%w: location required", ErrValidation)
	case a.ContactNumber == "":
		return fmt.Errorf("%w: contact_number required", ErrValidation)
	}
	if _, err := time.Parse(ExpiryDateLayout, a.ExpiryDate); err != nil {
		return fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

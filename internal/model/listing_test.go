package model

import (
	"errors"
	"testing"
)

func validAttributes() ListingAttributes {
	return ListingAttributes{
		Name:          "Rice",
		Quantity:      5,
		Type:          "veg",
		ExpiryDate:    "2026-10-20",
		Location:      "Koramangala",
		ContactNumber: "+91 98450 00000",
	}
}

func TestListingAttributesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ListingAttributes)
		ok     bool
	}{
		{"valid", func(a *ListingAttributes) {}, true},
		{"non-veg", func(a *ListingAttributes) { a.Type = FoodTypeNonVeg }, true},
		{"missing name", func(a *ListingAttributes) { a.Name = "" }, false},
		{"zero quantity", func(a *ListingAttributes) { a.Quantity = 0 }, false},
		{"negative quantity", func(a *ListingAttributes) { a.Quantity = -2 }, false},
		{"missing type", func(a *ListingAttributes) { a.Type = "" }, false},
		{"unknown type", func(a *ListingAttributes) { a.Type = "vegan" }, false},
		{"missing expiry", func(a *ListingAttributes) { a.ExpiryDate = "" }, false},
		{"bad expiry", func(a *ListingAttributes) { a.ExpiryDate = "20/10/2026" }, false},
		{"past expiry allowed", func(a *ListingAttributes) { a.ExpiryDate = "2001-01-01" }, true},
		{"missing location", func(a *ListingAttributes) { a.Location = "" }, false},
		{"missing contact", func(a *ListingAttributes) { a.ContactNumber = "" }, false},
	}

	for _, tt := range tests {
		a := validAttributes()
		tt.mutate(&a)
		err := a.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tt.name, err)
		}
	}
}

func TestListingAttributesNormalize(t *testing.T) {
	a := ListingAttributes{Name: "  Dal ", Type: " Non-Veg", Location: " HSR "}.Normalize()
	if a.Name != "Dal" || a.Type != FoodTypeNonVeg || a.Location != "HSR" {
		t.Errorf("unexpected normalized attributes: %+v", a)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "in transit", "delivered"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q): %v", s, err)
		}
	}
	if _, err := ParseStatus("shipped"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown status, got %v", err)
	}
	if !StatusDelivered.Terminal() || StatusPending.Terminal() || StatusInTransit.Terminal() {
		t.Error("only delivered should be terminal")
	}
}

package model

import (
	"fmt"
	"strings"
	"time"
)

// User is a registered account. Role is fixed at registration.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Role decides which mutating operations a user may perform.
type Role string

// Roles.
const (
	RoleProvider  Role = "provider"
	RoleRecipient Role = "recipient"
)

// ParseRole converts user input to a Role, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleProvider:
		return RoleProvider, nil
	case RoleRecipient:
		return RoleRecipient, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// Capability names an operation gated by role.
type Capability int

// Capabilities.
const (
	CapCreateListing Capability = iota + 1
	CapManageListingPhoto
	CapCreateRequest
	CapReadRecipientRequests
	CapReadProviderRequests
	CapUpdateRequestStatus
)

func (c Capability) String() string {
	switch c {
	case CapCreateListing:
		return "create_listing"
	case CapManageListingPhoto:
		return "manage_listing_photo"
	case CapCreateRequest:
		return "create_request"
	case CapReadRecipientRequests:
		return "read_recipient_requests"
	case CapReadProviderRequests:
		return "read_provider_requests"
	case CapUpdateRequestStatus:
		return "update_request_status"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// Can reports whether the role grants the capability. Unknown roles and
// capabilities are denied.
func (r Role) Can(c Capability) bool {
	switch r {
	case RoleProvider:
		switch c {
		case CapCreateListing, CapManageListingPhoto, CapReadProviderRequests, CapUpdateRequestStatus:
			return true
		case CapCreateRequest, CapReadRecipientRequests:
			return false
		}
	case RoleRecipient:
		switch c {
		case CapCreateRequest, CapReadRecipientRequests:
			return true
		case CapCreateListing, CapManageListingPhoto, CapReadProviderRequests, CapUpdateRequestStatus:
			return false
		}
	}
	return false
}

// Require returns an ErrAuthorization error unless u may perform c.
// A nil user is never authorized.
func Require(u *User, c Capability) error {
	if u == nil {
		return fmt.Errorf("%w: no acting user", ErrAuthorization)
	}
	if !u.Role.Can(c) {
		return fmt.Errorf("%w: role %q cannot %s", ErrAuthorization, u.Role, c)
	}
	return nil
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ValidatePassword checks password strength requirements.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	return nil
}

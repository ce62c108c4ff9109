package models

import (
	"time"

	"github.com/google/uuid"
)

// Namespace is a named grouping of short URLs owned by an organization.
// Namespace names are globally unique.
type Namespace struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ShortURL represents a shortened URL and its associated metadata.
type ShortURL struct {
	// ID is the unique identifier for the shortened URL record.
	ID uuid.UUID
	// NamespaceID is the namespace the short code lives in.
	NamespaceID uuid.UUID
	// ShortCode is the short code or key associated with the original URL.
	// It is unique within its namespace.
	ShortCode string
	// OriginalURL is the original, full-length URL that the short code points to.
	OriginalURL string
	// Title is an optional human-readable title for the link.
	Title string
	// Description is an optional description for the link.
	Description string
	// IsActive marks whether the link may still be resolved.
	IsActive bool
	// ExpiryDate, when set, is the moment after which the link no longer resolves.
	ExpiryDate *time.Time
	// ClickCount tracks the number of times the shortened URL has been resolved.
	ClickCount int64
	// CreatedBy is the user that created the record.
	CreatedBy uuid.UUID
	// CreatedAt is the timestamp indicating when the shortened URL was created.
	CreatedAt time.Time
	// UpdatedAt is the timestamp indicating when the shortened URL was last updated.
	UpdatedAt time.Time
}

// Expired reports whether the link's expiry date has passed at the given moment.
// Links without an expiry date never expire.
func (u *ShortURL) Expired(now time.Time) bool {
	return u.ExpiryDate != nil && now.After(*u.ExpiryDate)
}

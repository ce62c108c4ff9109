package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Accounts start unverified and must confirm
// their email with a one-time code before they can log in.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

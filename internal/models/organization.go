package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization groups users, namespaces and invites under a single tenant.
// The owner always holds an admin membership.
type Organization struct {
	ID          uuid.UUID
	Name        string
	OwnerID     uuid.UUID
	MemberCount int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Membership ties a user to an organization with a role. At most one
// membership exists per (organization, user) pair.
type Membership struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	UserEmail      string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

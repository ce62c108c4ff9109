package models

import (
	"time"

	"github.com/google/uuid"
)

// InviteStatus is the observable state of an invite. Pending invites may
// still be accepted or revoked; every other state is terminal.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusRevoked  InviteStatus = "revoked"
	InviteStatusExpired  InviteStatus = "expired"
)

// Invite is a time-boxed offer of a role in an organization, redeemed by a
// single-use opaque token.
//
// Used means the token can never be redeemed again; Accepted means a
// membership was actually created. A successful accept sets both, a revoke
// sets only Used.
type Invite struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	Role           Role
	Token          string
	Used           bool
	Accepted       bool
	CreatedBy      uuid.UUID
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Status derives the invite state at the given moment. Expiry is evaluated
// lazily; expired pending invites are reported as expired without a write.
func (i *Invite) Status(now time.Time) InviteStatus {
	switch {
	case i.Accepted:
		return InviteStatusAccepted
	case i.Used:
		return InviteStatusRevoked
	case now.After(i.ExpiresAt):
		return InviteStatusExpired
	default:
		return InviteStatusPending
	}
}

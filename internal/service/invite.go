package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vadimbarashkov/linknest/internal/database"
	"github.com/vadimbarashkov/linknest/internal/models"
)

// InviteRepository defines the storage operations for invites.
type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) (*models.Invite, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invite, error)
	GetByToken(ctx context.Context, token string) (*models.Invite, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.Invite, error)

	// Accept consumes a pending, unexpired token and creates the membership
	// atomically. It returns database.ErrInviteNotFound when no such invite
	// qualifies, which happens when a concurrent accept won.
	Accept(ctx context.Context, token string, userID uuid.UUID) (*models.Invite, error)

	// Revoke marks a pending invite used without accepting it, failing with
	// database.ErrInviteNotFound when the invite already left pending.
	Revoke(ctx context.Context, id uuid.UUID) (*models.Invite, error)
}

// OrganizationProvider resolves organizations for invite checks.
type OrganizationProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
}

// InviteMailer delivers invitation emails.
type InviteMailer interface {
	SendInvite(email, orgName, role, token string) error
}

// InviteService drives the invite state machine: Pending invites may be
// accepted or revoked, everything else is terminal. Tokens are single-use.
type InviteService struct {
	repo   InviteRepository
	orgs   OrganizationProvider
	access *AccessControl
	mailer InviteMailer
	ttl    time.Duration
}

func NewInviteService(repo InviteRepository, orgs OrganizationProvider, access *AccessControl, mailer InviteMailer, ttl time.Duration) *InviteService {
	return &InviteService{
		repo:   repo,
		orgs:   orgs,
		access: access,
		mailer: mailer,
		ttl:    ttl,
	}
}

// CreateInvite issues a pending invite with a fresh opaque token and mails it.
// The second return reports whether the email was actually delivered; the
// invite stands either way.
func (s *InviteService) CreateInvite(ctx context.Context, callerID, orgID uuid.UUID, email string, role models.Role) (*models.Invite, bool, error) {
	const op = "service.InviteService.CreateInvite"

	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: failed to get organization: %w", op, err)
	}

	if err := s.access.RequireMemberManager(ctx, orgID, callerID); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	if !role.Valid() {
		return nil, false, fmt.Errorf("%s: %w", op, ErrInvalidRole)
	}

	token, err := generateOpaqueToken(32)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	invite, err := s.repo.Create(ctx, &models.Invite{
		OrganizationID: orgID,
		Email:          email,
		Role:           role,
		Token:          token,
		CreatedBy:      callerID,
		ExpiresAt:      time.Now().Add(s.ttl),
	})
	if err != nil {
		return nil, false, fmt.Errorf("%s: failed to create invite: %w", op, err)
	}

	emailSent := true
	if err := s.mailer.SendInvite(invite.Email, org.Name, string(invite.Role), invite.Token); err != nil {
		emailSent = false
	}

	return invite, emailSent, nil
}

// ListInvites returns an organization's invites, admin-only.
func (s *InviteService) ListInvites(ctx context.Context, callerID, orgID uuid.UUID) ([]*models.Invite, error) {
	const op = "service.InviteService.ListInvites"

	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		return nil, fmt.Errorf("%s: failed to get organization: %w", op, err)
	}

	if err := s.access.RequireMemberManager(ctx, orgID, callerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	invites, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list invites: %w", op, err)
	}

	return invites, nil
}

// AcceptInvite redeems a token for the calling user, granting the invited
// role. A second accept with the same token fails with ErrInviteAlreadyUsed
// and creates no duplicate membership.
func (s *InviteService) AcceptInvite(ctx context.Context, callerID uuid.UUID, token string) (*models.Invite, error) {
	const op = "service.InviteService.AcceptInvite"

	invite, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, database.ErrInviteNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidInviteToken)
		}

		return nil, fmt.Errorf("%s: failed to accept invite: %w", op, err)
	}

	switch invite.Status(time.Now()) {
	case models.InviteStatusAccepted, models.InviteStatusRevoked:
		return nil, fmt.Errorf("%s: %w", op, ErrInviteAlreadyUsed)
	case models.InviteStatusExpired:
		return nil, fmt.Errorf("%s: %w", op, ErrInviteExpired)
	}

	invite, err = s.repo.Accept(ctx, token, callerID)
	if err != nil {
		// A concurrent accept can win between the read and the update.
		if errors.Is(err, database.ErrInviteNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInviteAlreadyUsed)
		}

		return nil, fmt.Errorf("%s: failed to accept invite: %w", op, err)
	}

	return invite, nil
}

// RevokeInvite cancels a pending invite so its token can never be redeemed.
func (s *InviteService) RevokeInvite(ctx context.Context, callerID, orgID, inviteID uuid.UUID) (*models.Invite, error) {
	const op = "service.InviteService.RevokeInvite"

	invite, err := s.repo.GetByID(ctx, inviteID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get invite: %w", op, err)
	}

	if invite.OrganizationID != orgID {
		return nil, fmt.Errorf("%s: %w", op, database.ErrInviteNotFound)
	}

	if err := s.access.RequireMemberManager(ctx, orgID, callerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if invite.Status(time.Now()) != models.InviteStatusPending {
		return nil, fmt.Errorf("%s: %w", op, ErrInviteNotPending)
	}

	invite, err = s.repo.Revoke(ctx, inviteID)
	if err != nil {
		if errors.Is(err, database.ErrInviteNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInviteNotPending)
		}

		return nil, fmt.Errorf("%s: failed to revoke invite: %w", op, err)
	}

	return invite, nil
}

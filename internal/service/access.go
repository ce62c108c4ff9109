package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vadimbarashkov/linknest/internal/database"
	"github.com/vadimbarashkov/linknest/internal/models"
)

// MembershipProvider resolves a caller's membership within an organization.
type MembershipProvider interface {
	GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*models.Membership, error)
}

// AccessControl resolves a caller's effective role and authorizes operations
// against it. Absence of membership always reads as ErrForbidden, so callers
// learn nothing about organizations they don't belong to.
type AccessControl struct {
	memberships MembershipProvider
}

func NewAccessControl(memberships MembershipProvider) *AccessControl {
	return &AccessControl{
		memberships: memberships,
	}
}

// RoleInOrganization returns the caller's role, or ErrForbidden if the caller
// is not a member of the organization.
func (a *AccessControl) RoleInOrganization(ctx context.Context, orgID, userID uuid.UUID) (models.Role, error) {
	const op = "service.AccessControl.RoleInOrganization"

	membership, err := a.memberships.GetMembership(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, database.ErrMembershipNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrForbidden)
		}

		return "", fmt.Errorf("%s: failed to resolve role: %w", op, err)
	}

	return membership.Role, nil
}

// RequireMember authorizes read access: any role suffices.
func (a *AccessControl) RequireMember(ctx context.Context, orgID, userID uuid.UUID) error {
	_, err := a.RoleInOrganization(ctx, orgID, userID)
	return err
}

// RequireURLManager authorizes short URL mutations (admin or editor).
func (a *AccessControl) RequireURLManager(ctx context.Context, orgID, userID uuid.UUID) error {
	const op = "service.AccessControl.RequireURLManager"

	role, err := a.RoleInOrganization(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if !role.CanManageURLs() {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return nil
}

// RequireNamespaceManager authorizes namespace mutations (admin only).
func (a *AccessControl) RequireNamespaceManager(ctx context.Context, orgID, userID uuid.UUID) error {
	const op = "service.AccessControl.RequireNamespaceManager"

	role, err := a.RoleInOrganization(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if !role.CanManageNamespaces() {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return nil
}

// RequireMemberManager authorizes invite and membership management (admin only).
func (a *AccessControl) RequireMemberManager(ctx context.Context, orgID, userID uuid.UUID) error {
	const op = "service.AccessControl.RequireMemberManager"

	role, err := a.RoleInOrganization(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if !role.CanManageMembers() {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return nil
}

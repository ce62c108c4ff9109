package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vadimbarashkov/linknest/internal/models"
)

// OrganizationRepository defines the storage operations for organizations and
// their memberships.
type OrganizationRepository interface {
	Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Organization, error)
	ListMembers(ctx context.Context, orgID uuid.UUID) ([]*models.Membership, error)
}

// OrganizationService manages tenants. Listings are scoped to the caller's
// memberships; reads on a specific organization require membership.
type OrganizationService struct {
	repo   OrganizationRepository
	access *AccessControl
}

func NewOrganizationService(repo OrganizationRepository, access *AccessControl) *OrganizationService {
	return &OrganizationService{
		repo:   repo,
		access: access,
	}
}

// CreateOrganization creates a tenant owned by the caller. The owner's admin
// membership is created atomically with the organization.
func (s *OrganizationService) CreateOrganization(ctx context.Context, callerID uuid.UUID, name string) (*models.Organization, error) {
	const op = "service.OrganizationService.CreateOrganization"

	org, err := s.repo.Create(ctx, name, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create organization: %w", op, err)
	}

	return org, nil
}

func (s *OrganizationService) GetOrganization(ctx context.Context, callerID, orgID uuid.UUID) (*models.Organization, error) {
	const op = "service.OrganizationService.GetOrganization"

	org, err := s.repo.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get organization: %w", op, err)
	}

	if err := s.access.RequireMember(ctx, orgID, callerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return org, nil
}

func (s *OrganizationService) ListOrganizations(ctx context.Context, callerID uuid.UUID) ([]*models.Organization, error) {
	const op = "service.OrganizationService.ListOrganizations"

	orgs, err := s.repo.ListByMember(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list organizations: %w", op, err)
	}

	return orgs, nil
}

// ListMembers returns the organization's memberships. Any member may view the
// roster; managing it is gated separately.
func (s *OrganizationService) ListMembers(ctx context.Context, callerID, orgID uuid.UUID) ([]*models.Membership, error) {
	const op = "service.OrganizationService.ListMembers"

	if _, err := s.repo.GetByID(ctx, orgID); err != nil {
		return nil, fmt.Errorf("%s: failed to get organization: %w", op, err)
	}

	if err := s.access.RequireMember(ctx, orgID, callerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	members, err := s.repo.ListMembers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list members: %w", op, err)
	}

	return members, nil
}

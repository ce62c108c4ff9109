package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vadimbarashkov/linknest/internal/models"
)

// NamespaceRepository defines the storage operations for namespaces.
type NamespaceRepository interface {
	Create(ctx context.Context, orgID uuid.UUID, name, description string) (*models.Namespace, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Namespace, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Namespace, error)
	Update(ctx context.Context, id uuid.UUID, name, description string) (*models.Namespace, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NamespaceService manages short URL namespaces. Mutations are admin-only;
// any member of the owning organization can read.
type NamespaceService struct {
	repo   NamespaceRepository
	access *AccessControl
}

func NewNamespaceService(repo NamespaceRepository, access *AccessControl) *NamespaceService {
	return &NamespaceService{
		repo:   repo,
		access: access,
	}
}

func (s *NamespaceService) CreateNamespace(ctx context.Context, callerID, orgID uuid.UUID, name, description string) (*models.Namespace, error) {
	const op = "service.NamespaceService.CreateNamespace"

	if err := s.access.RequireNamespaceManager(ctx, orgID, callerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	namespace, err := s.repo.Create(ctx, orgID, name, description)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create namespace: %w", op, err)
	}

	return namespace, nil
}

func (s *NamespaceService) GetNamespace(ctx context.Context, callerID, id uuid.UUID) (*models.Namespace, error) {
	const op = "service.NamespaceService.GetNamespace"

	namespace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get namespace: %w", op, err)
	}

	if err := s.access.RequireMember(ctx, namespace.OrganizationID, callerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return namespace, nil
}

func (s *NamespaceService) ListNamespaces(ctx context.Context, callerID uuid.UUID) ([]*models.Namespace, error) {
	const op = "service.NamespaceService.ListNamespaces"

	namespaces, err := s.repo.ListByMember(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list namespaces: %w", op, err)
	}

	return namespaces, nil
}

func (s *NamespaceService) UpdateNamespace(ctx context.Context, callerID, id uuid.UUID, name, description string) (*models.Namespace, error) {
	const op = "service.NamespaceService.UpdateNamespace"

	namespace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get namespace: %w", op, err)
	}

	if err := s.access.RequireNamespaceManager(ctx, namespace.OrganizationID, callerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	namespace, err = s.repo.Update(ctx, id, name, description)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update namespace: %w", op, err)
	}

	return namespace, nil
}

// DeleteNamespace removes the namespace and, by cascade, its short URLs.
func (s *NamespaceService) DeleteNamespace(ctx context.Context, callerID, id uuid.UUID) error {
	const op = "service.NamespaceService.DeleteNamespace"

	namespace, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: failed to get namespace: %w", op, err)
	}

	if err := s.access.RequireNamespaceManager(ctx, namespace.OrganizationID, callerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete namespace: %w", op, err)
	}

	return nil
}

package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vadimbarashkov/linknest/internal/models"
	"github.com/vadimbarashkov/linknest/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (s *MockAuthService) Register(ctx context.Context, email, password string) (*models.User, bool, error) {
	args := s.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Bool(1), args.Error(2)
}

func (s *MockAuthService) VerifyOTP(ctx context.Context, email, code string) (*models.User, error) {
	args := s.Called(ctx, email, code)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (s *MockAuthService) ResendOTP(ctx context.Context, email string) (bool, error) {
	args := s.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (s *MockAuthService) Login(ctx context.Context, email, password string) (*service.TokenPair, error) {
	args := s.Called(ctx, email, password)
	pair, _ := args.Get(0).(*service.TokenPair)
	return pair, args.Error(1)
}

func (s *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := s.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*service.TokenPair)
	return pair, args.Error(1)
}

func (s *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := s.Called(ctx, refreshToken)
	return args.Error(0)
}

func (s *MockAuthService) Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error) {
	args := s.Called(ctx, accessToken)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

type MockOrganizationService struct {
	mock.Mock
}

func (s *MockOrganizationService) CreateOrganization(ctx context.Context, callerID uuid.UUID, name string) (*models.Organization, error) {
	args := s.Called(ctx, callerID, name)
	org, _ := args.Get(0).(*models.Organization)
	return org, args.Error(1)
}

func (s *MockOrganizationService) GetOrganization(ctx context.Context, callerID, orgID uuid.UUID) (*models.Organization, error) {
	args := s.Called(ctx, callerID, orgID)
	org, _ := args.Get(0).(*models.Organization)
	return org, args.Error(1)
}

func (s *MockOrganizationService) ListOrganizations(ctx context.Context, callerID uuid.UUID) ([]*models.Organization, error) {
	args := s.Called(ctx, callerID)
	orgs, _ := args.Get(0).([]*models.Organization)
	return orgs, args.Error(1)
}

func (s *MockOrganizationService) ListMembers(ctx context.Context, callerID, orgID uuid.UUID) ([]*models.Membership, error) {
	args := s.Called(ctx, callerID, orgID)
	members, _ := args.Get(0).([]*models.Membership)
	return members, args.Error(1)
}

type MockNamespaceService struct {
	mock.Mock
}

func (s *MockNamespaceService) CreateNamespace(ctx context.Context, callerID, orgID uuid.UUID, name, description string) (*models.Namespace, error) {
	args := s.Called(ctx, callerID, orgID, name, description)
	ns, _ := args.Get(0).(*models.Namespace)
	return ns, args.Error(1)
}

func (s *MockNamespaceService) GetNamespace(ctx context.Context, callerID, id uuid.UUID) (*models.Namespace, error) {
	args := s.Called(ctx, callerID, id)
	ns, _ := args.Get(0).(*models.Namespace)
	return ns, args.Error(1)
}

func (s *MockNamespaceService) ListNamespaces(ctx context.Context, callerID uuid.UUID) ([]*models.Namespace, error) {
	args := s.Called(ctx, callerID)
	nss, _ := args.Get(0).([]*models.Namespace)
	return nss, args.Error(1)
}

func (s *MockNamespaceService) UpdateNamespace(ctx context.Context, callerID, id uuid.UUID, name, description string) (*models.Namespace, error) {
	args := s.Called(ctx, callerID, id, name, description)
	ns, _ := args.Get(0).(*models.Namespace)
	return ns, args.Error(1)
}

func (s *MockNamespaceService) DeleteNamespace(ctx context.Context, callerID, id uuid.UUID) error {
	args := s.Called(ctx, callerID, id)
	return args.Error(0)
}

type MockURLService struct {
	mock.Mock
}

func (s *MockURLService) CreateURL(ctx context.Context, callerID uuid.UUID, params service.CreateURLParams) (*models.ShortURL, error) {
	args := s.Called(ctx, callerID, params)
	url, _ := args.Get(0).(*models.ShortURL)
	return url, args.Error(1)
}

func (s *MockURLService) GetURL(ctx context.Context, callerID, id uuid.UUID) (*models.ShortURL, error) {
	args := s.Called(ctx, callerID, id)
	url, _ := args.Get(0).(*models.ShortURL)
	return url, args.Error(1)
}

func (s *MockURLService) ListURLs(ctx context.Context, callerID uuid.UUID) ([]*models.ShortURL, error) {
	args := s.Called(ctx, callerID)
	urls, _ := args.Get(0).([]*models.ShortURL)
	return urls, args.Error(1)
}

func (s *MockURLService) ListURLsByNamespace(ctx context.Context, callerID, namespaceID uuid.UUID) ([]*models.ShortURL, error) {
	args := s.Called(ctx, callerID, namespaceID)
	urls, _ := args.Get(0).([]*models.ShortURL)
	return urls, args.Error(1)
}

func (s *MockURLService) UpdateURL(ctx context.Context, callerID, id uuid.UUID, params service.UpdateURLParams) (*models.ShortURL, error) {
	args := s.Called(ctx, callerID, id, params)
	url, _ := args.Get(0).(*models.ShortURL)
	return url, args.Error(1)
}

func (s *MockURLService) DeleteURL(ctx context.Context, callerID, id uuid.UUID) error {
	args := s.Called(ctx, callerID, id)
	return args.Error(0)
}

func (s *MockURLService) ResolveURL(ctx context.Context, callerID, id uuid.UUID) (*models.ShortURL, error) {
	args := s.Called(ctx, callerID, id)
	url, _ := args.Get(0).(*models.ShortURL)
	return url, args.Error(1)
}

type MockInviteService struct {
	mock.Mock
}

func (s *MockInviteService) CreateInvite(ctx context.Context, callerID, orgID uuid.UUID, email string, role models.Role) (*models.Invite, bool, error) {
	args := s.Called(ctx, callerID, orgID, email, role)
	invite, _ := args.Get(0).(*models.Invite)
	return invite, args.Bool(1), args.Error(2)
}

func (s *MockInviteService) ListInvites(ctx context.Context, callerID, orgID uuid.UUID) ([]*models.Invite, error) {
	args := s.Called(ctx, callerID, orgID)
	invites, _ := args.Get(0).([]*models.Invite)
	return invites, args.Error(1)
}

func (s *MockInviteService) AcceptInvite(ctx context.Context, callerID uuid.UUID, token string) (*models.Invite, error) {
	args := s.Called(ctx, callerID, token)
	invite, _ := args.Get(0).(*models.Invite)
	return invite, args.Error(1)
}

func (s *MockInviteService) RevokeInvite(ctx context.Context, callerID, orgID, inviteID uuid.UUID) (*models.Invite, error) {
	args := s.Called(ctx, callerID, orgID, inviteID)
	invite, _ := args.Get(0).(*models.Invite)
	return invite, args.Error(1)
}

package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vadimbarashkov/linknest/internal/models"
)

type MockURLRepository struct {
	mock.Mock
}

func (r *MockURLRepository) Create(ctx context.Context, url *models.ShortURL) (*models.ShortURL, error) {
	args := r.Called(ctx, url)
	res, _ := args.Get(0).(*models.ShortURL)
	return res, args.Error(1)
}

func (r *MockURLRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ShortURL, error) {
	args := r.Called(ctx, id)
	res, _ := args.Get(0).(*models.ShortURL)
	return res, args.Error(1)
}

func (r *MockURLRepository) ListByNamespace(ctx context.Context, namespaceID uuid.UUID) ([]*models.ShortURL, error) {
	args := r.Called(ctx, namespaceID)
	res, _ := args.Get(0).([]*models.ShortURL)
	return res, args.Error(1)
}

func (r *MockURLRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.ShortURL, error) {
	args := r.Called(ctx, userID)
	res, _ := args.Get(0).([]*models.ShortURL)
	return res, args.Error(1)
}

func (r *MockURLRepository) Update(ctx context.Context, url *models.ShortURL) (*models.ShortURL, error) {
	args := r.Called(ctx, url)
	res, _ := args.Get(0).(*models.ShortURL)
	return res, args.Error(1)
}

func (r *MockURLRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

func (r *MockURLRepository) ResolveAndCount(ctx context.Context, id uuid.UUID) (*models.ShortURL, error) {
	args := r.Called(ctx, id)
	res, _ := args.Get(0).(*models.ShortURL)
	return res, args.Error(1)
}

type MockNamespaceRepository struct {
	mock.Mock
}

func (r *MockNamespaceRepository) Create(ctx context.Context, orgID uuid.UUID, name, description string) (*models.Namespace, error) {
	args := r.Called(ctx, orgID, name, description)
	res, _ := args.Get(0).(*models.Namespace)
	return res, args.Error(1)
}

func (r *MockNamespaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Namespace, error) {
	args := r.Called(ctx, id)
	res, _ := args.Get(0).(*models.Namespace)
	return res, args.Error(1)
}

func (r *MockNamespaceRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Namespace, error) {
	args := r.Called(ctx, userID)
	res, _ := args.Get(0).([]*models.Namespace)
	return res, args.Error(1)
}

func (r *MockNamespaceRepository) Update(ctx context.Context, id uuid.UUID, name, description string) (*models.Namespace, error) {
	args := r.Called(ctx, id, name, description)
	res, _ := args.Get(0).(*models.Namespace)
	return res, args.Error(1)
}

func (r *MockNamespaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (r *MockOrganizationRepository) Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Organization, error) {
	args := r.Called(ctx, name, ownerID)
	res, _ := args.Get(0).(*models.Organization)
	return res, args.Error(1)
}

func (r *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	args := r.Called(ctx, id)
	res, _ := args.Get(0).(*models.Organization)
	return res, args.Error(1)
}

func (r *MockOrganizationRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Organization, error) {
	args := r.Called(ctx, userID)
	res, _ := args.Get(0).([]*models.Organization)
	return res, args.Error(1)
}

func (r *MockOrganizationRepository) ListMembers(ctx context.Context, orgID uuid.UUID) ([]*models.Membership, error) {
	args := r.Called(ctx, orgID)
	res, _ := args.Get(0).([]*models.Membership)
	return res, args.Error(1)
}

type MockMembershipProvider struct {
	mock.Mock
}

func (p *MockMembershipProvider) GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*models.Membership, error) {
	args := p.Called(ctx, orgID, userID)
	res, _ := args.Get(0).(*models.Membership)
	return res, args.Error(1)
}

type MockInviteRepository struct {
	mock.Mock
}

func (r *MockInviteRepository) Create(ctx context.Context, invite *models.Invite) (*models.Invite, error) {
	args := r.Called(ctx, invite)
	res, _ := args.Get(0).(*models.Invite)
	return res, args.Error(1)
}

func (r *MockInviteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invite, error) {
	args := r.Called(ctx, id)
	res, _ := args.Get(0).(*models.Invite)
	return res, args.Error(1)
}

func (r *MockInviteRepository) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	args := r.Called(ctx, token)
	res, _ := args.Get(0).(*models.Invite)
	return res, args.Error(1)
}

func (r *MockInviteRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.Invite, error) {
	args := r.Called(ctx, orgID)
	res, _ := args.Get(0).([]*models.Invite)
	return res, args.Error(1)
}

func (r *MockInviteRepository) Accept(ctx context.Context, token string, userID uuid.UUID) (*models.Invite, error) {
	args := r.Called(ctx, token, userID)
	res, _ := args.Get(0).(*models.Invite)
	return res, args.Error(1)
}

func (r *MockInviteRepository) Revoke(ctx context.Context, id uuid.UUID) (*models.Invite, error) {
	args := r.Called(ctx, id)
	res, _ := args.Get(0).(*models.Invite)
	return res, args.Error(1)
}

type MockOrganizationProvider struct {
	mock.Mock
}

func (p *MockOrganizationProvider) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	args := p.Called(ctx, id)
	res, _ := args.Get(0).(*models.Organization)
	return res, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (r *MockUserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	args := r.Called(ctx, email, passwordHash)
	res, _ := args.Get(0).(*models.User)
	return res, args.Error(1)
}

func (r *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := r.Called(ctx, id)
	res, _ := args.Get(0).(*models.User)
	return res, args.Error(1)
}

func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := r.Called(ctx, email)
	res, _ := args.Get(0).(*models.User)
	return res, args.Error(1)
}

func (r *MockUserRepository) MarkVerified(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := r.Called(ctx, id)
	res, _ := args.Get(0).(*models.User)
	return res, args.Error(1)
}

type MockOTPStore struct {
	mock.Mock
}

func (s *MockOTPStore) Set(ctx context.Context, userID uuid.UUID, code string) error {
	args := s.Called(ctx, userID, code)
	return args.Error(0)
}

func (s *MockOTPStore) Consume(ctx context.Context, userID uuid.UUID, code string) (bool, error) {
	args := s.Called(ctx, userID, code)
	return args.Bool(0), args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (s *MockSessionStore) Save(ctx context.Context, token string, userID uuid.UUID) error {
	args := s.Called(ctx, token, userID)
	return args.Error(0)
}

func (s *MockSessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	args := s.Called(ctx, token)
	res, _ := args.Get(0).(uuid.UUID)
	return res, args.Error(1)
}

func (s *MockSessionStore) Delete(ctx context.Context, token string) error {
	args := s.Called(ctx, token)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOTP(email, code string) error {
	args := m.Called(email, code)
	return args.Error(0)
}

func (m *MockMailer) SendInvite(email, orgName, role, token string) error {
	args := m.Called(email, orgName, role, token)
	return args.Error(0)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/vadimbarashkov/linknest/internal/database"
	"github.com/vadimbarashkov/linknest/internal/models"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// shortCodeAlphabet is the charset for generated codes (base62).
const shortCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// maxGeneratedCodeLength caps the length growth on collision retries.
const maxGeneratedCodeLength = 8

// requestedCodePattern constrains caller-supplied codes: alphanumeric plus
// hyphen and underscore, 3 to 32 characters.
var requestedCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// URLRepository defines the interface for working with URLs at the business logic layer.
type URLRepository interface {
	Create(ctx context.Context, url *models.ShortURL) (*models.ShortURL, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ShortURL, error)
	ListByNamespace(ctx context.Context, namespaceID uuid.UUID) ([]*models.ShortURL, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.ShortURL, error)
	Update(ctx context.Context, url *models.ShortURL) (*models.ShortURL, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ResolveAndCount atomically increments the click count of an active,
	// unexpired link and returns it, or database.ErrURLNotFound if no such
	// link qualifies.
	ResolveAndCount(ctx context.Context, id uuid.UUID) (*models.ShortURL, error)
}

// NamespaceProvider resolves namespaces for permission checks.
type NamespaceProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Namespace, error)
}

// CreateURLParams carries the fields accepted when shortening a URL.
// ShortCode is optional; when empty a random code is generated.
type CreateURLParams struct {
	NamespaceID uuid.UUID
	OriginalURL string
	ShortCode   string
	Title       string
	Description string
	ExpiryDate  *time.Time
}

// UpdateURLParams carries the fields accepted when modifying a URL.
type UpdateURLParams struct {
	OriginalURL string
	ShortCode   string
	Title       string
	Description string
	IsActive    bool
	ExpiryDate  *time.Time
}

// URLService provides methods to manage URL shortening operations.
type URLService struct {
	repo            URLRepository
	namespaces      NamespaceProvider
	access          *AccessControl
	shortCodeLength int
}

// NewURLService creates a new instance of URLService with the provided repository and short code length.
func NewURLService(repo URLRepository, namespaces NamespaceProvider, access *AccessControl, shortCodeLength int) *URLService {
	return &URLService{
		repo:            repo,
		namespaces:      namespaces,
		access:          access,
		shortCodeLength: shortCodeLength,
	}
}

func validateOriginalURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}

// CreateURL shortens a URL in a namespace. With a requested code it validates
// the charset and fails on conflict; otherwise it generates a random code,
// retrying with a longer code on collision up to a bounded attempt count.
func (s *URLService) CreateURL(ctx context.Context, callerID uuid.UUID, params CreateURLParams) (*models.ShortURL, error) {
	const op = "service.URLService.CreateURL"
	const maxRetries = 5

	namespace, err := s.namespaces.GetByID(ctx, params.NamespaceID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get namespace: %w", op, err)
	}

	if err := s.access.RequireURLManager(ctx, namespace.OrganizationID, callerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateOriginalURL(params.OriginalURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if params.ExpiryDate != nil && !params.ExpiryDate.After(time.Now()) {
		return nil, fmt.Errorf("%s: %w", op, ErrExpiryInPast)
	}

	record := &models.ShortURL{
		NamespaceID: params.NamespaceID,
		OriginalURL: params.OriginalURL,
		Title:       params.Title,
		Description: params.Description,
		IsActive:    true,
		ExpiryDate:  params.ExpiryDate,
		CreatedBy:   callerID,
	}

	if params.ShortCode != "" {
		if !requestedCodePattern.MatchString(params.ShortCode) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidShortCode)
		}

		record.ShortCode = params.ShortCode

		url, err := s.repo.Create(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to create url: %w", op, err)
		}

		return url, nil
	}

	codeLength := s.shortCodeLength

	for i := 0; i < maxRetries; i++ {
		shortCode, err := gonanoid.Generate(shortCodeAlphabet, codeLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}
		record.ShortCode = shortCode

		url, err := s.repo.Create(ctx, record)
		if err != nil {
			if errors.Is(err, database.ErrShortCodeExists) {
				if codeLength < maxGeneratedCodeLength {
					codeLength++
				}
				continue
			}

			return nil, fmt.Errorf("%s: failed to create url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// GetURL retrieves a link without touching its click count.
func (s *URLService) GetURL(ctx context.Context, callerID, id uuid.UUID) (*models.ShortURL, error) {
	const op = "service.URLService.GetURL"

	url, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url: %w", op, err)
	}

	if err := s.requireMemberOfNamespace(ctx, callerID, url.NamespaceID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}

// ListURLs returns every link in namespaces the caller can see.
func (s *URLService) ListURLs(ctx context.Context, callerID uuid.UUID) ([]*models.ShortURL, error) {
	const op = "service.URLService.ListURLs"

	urls, err := s.repo.ListByMember(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}

func (s *URLService) ListURLsByNamespace(ctx context.Context, callerID, namespaceID uuid.UUID) ([]*models.ShortURL, error) {
	const op = "service.URLService.ListURLsByNamespace"

	if err := s.requireMemberOfNamespace(ctx, callerID, namespaceID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	urls, err := s.repo.ListByNamespace(ctx, namespaceID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list urls: %w", op, err)
	}

	return urls, nil
}

// UpdateURL modifies a link. A changed short code goes through the same
// charset validation and uniqueness enforcement as on create, and a changed
// expiry date must lie in the future. Keeping an already-passed expiry date
// is allowed, so expired links stay editable.
func (s *URLService) UpdateURL(ctx context.Context, callerID, id uuid.UUID, params UpdateURLParams) (*models.ShortURL, error) {
	const op = "service.URLService.UpdateURL"

	url, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url: %w", op, err)
	}

	if err := s.requireURLManagerOfNamespace(ctx, callerID, url.NamespaceID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateOriginalURL(params.OriginalURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if params.ShortCode != url.ShortCode && !requestedCodePattern.MatchString(params.ShortCode) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidShortCode)
	}

	if params.ExpiryDate != nil && !params.ExpiryDate.After(time.Now()) {
		unchanged := url.ExpiryDate != nil && params.ExpiryDate.Equal(*url.ExpiryDate)
		if !unchanged {
			return nil, fmt.Errorf("%s: %w", op, ErrExpiryInPast)
		}
	}

	url.OriginalURL = params.OriginalURL
	url.ShortCode = params.ShortCode
	url.Title = params.Title
	url.Description = params.Description
	url.IsActive = params.IsActive
	url.ExpiryDate = params.ExpiryDate

	url, err = s.repo.Update(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update url: %w", op, err)
	}

	return url, nil
}

// DeleteURL removes a link permanently.
func (s *URLService) DeleteURL(ctx context.Context, callerID, id uuid.UUID) error {
	const op = "service.URLService.DeleteURL"

	url, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: failed to get url: %w", op, err)
	}

	if err := s.requireURLManagerOfNamespace(ctx, callerID, url.NamespaceID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete url: %w", op, err)
	}

	return nil
}

// ResolveURL returns the target of a link and records the click. Inactive and
// expired links never resolve. The state check and the increment are one
// atomic storage operation, so a link deactivated mid-flight is not counted.
func (s *URLService) ResolveURL(ctx context.Context, callerID, id uuid.UUID) (*models.ShortURL, error) {
	const op = "service.URLService.ResolveURL"

	url, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url: %w", op, err)
	}

	if err := s.requireMemberOfNamespace(ctx, callerID, url.NamespaceID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := classifyUnresolvable(url); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resolved, err := s.repo.ResolveAndCount(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrURLNotFound) {
			// The link changed between the read and the increment; re-read to
			// report the current state.
			url, getErr := s.repo.GetByID(ctx, id)
			if getErr != nil {
				return nil, fmt.Errorf("%s: failed to resolve url: %w", op, getErr)
			}
			if stateErr := classifyUnresolvable(url); stateErr != nil {
				return nil, fmt.Errorf("%s: %w", op, stateErr)
			}
		}

		return nil, fmt.Errorf("%s: failed to resolve url: %w", op, err)
	}

	return resolved, nil
}

func classifyUnresolvable(url *models.ShortURL) error {
	if !url.IsActive {
		return ErrURLInactive
	}
	if url.Expired(time.Now()) {
		return ErrURLExpired
	}

	return nil
}

func (s *URLService) requireMemberOfNamespace(ctx context.Context, callerID, namespaceID uuid.UUID) error {
	namespace, err := s.namespaces.GetByID(ctx, namespaceID)
	if err != nil {
		return fmt.Errorf("failed to get namespace: %w", err)
	}

	return s.access.RequireMember(ctx, namespace.OrganizationID, callerID)
}

func (s *URLService) requireURLManagerOfNamespace(ctx context.Context, callerID, namespaceID uuid.UUID) error {
	namespace, err := s.namespaces.GetByID(ctx, namespaceID)
	if err != nil {
		return fmt.Errorf("failed to get namespace: %w", err)
	}

	return s.access.RequireURLManager(ctx, namespace.OrganizationID, callerID)
}

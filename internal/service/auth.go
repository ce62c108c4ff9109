package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vadimbarashkov/linknest/internal/database"
	"github.com/vadimbarashkov/linknest/internal/models"
)

// UserRepository defines the storage operations the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// OTPStore holds pending email verification codes. Consume removes the stored
// code only on a match, so a wrong guess cannot invalidate a pending code.
type OTPStore interface {
	Set(ctx context.Context, userID uuid.UUID, code string) error
	Consume(ctx context.Context, userID uuid.UUID, code string) (bool, error)
}

// SessionStore holds refresh-token sessions.
type SessionStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// OTPMailer delivers verification codes.
type OTPMailer interface {
	SendOTP(email, code string) error
}

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements the account lifecycle: registration with email
// verification, login, token refresh with rotation, and logout.
type AuthService struct {
	users    UserRepository
	otps     OTPStore
	sessions SessionStore
	mailer   OTPMailer
	tokens   *TokenManager
}

func NewAuthService(users UserRepository, otps OTPStore, sessions SessionStore, mailer OTPMailer, tokens *TokenManager) *AuthService {
	return &AuthService{
		users:    users,
		otps:     otps,
		sessions: sessions,
		mailer:   mailer,
		tokens:   tokens,
	}
}

// Register creates an unverified account and mails a verification code.
// Returns whether the code was actually delivered; the account is created
// either way and the code can be re-requested with ResendOTP.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, bool, error) {
	const op = "service.AuthService.Register"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		return nil, false, fmt.Errorf("%s: failed to register user: %w", op, err)
	}

	sent, err := s.issueOTP(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return user, sent, nil
}

func (s *AuthService) issueOTP(ctx context.Context, user *models.User) (bool, error) {
	code, err := generateOTP()
	if err != nil {
		return false, fmt.Errorf("failed to generate verification code: %w", err)
	}

	if err := s.otps.Set(ctx, user.ID, code); err != nil {
		return false, fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.mailer.SendOTP(user.Email, code); err != nil {
		// The account exists and the code is stored; delivery can be retried
		// via ResendOTP.
		return false, nil
	}

	return true, nil
}

// VerifyOTP confirms the account email. A matching code is removed atomically
// and never verifies twice; a wrong guess leaves the pending code usable.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*models.User, error) {
	const op = "service.AuthService.VerifyOTP"

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidOTP)
		}

		return nil, fmt.Errorf("%s: failed to verify otp: %w", op, err)
	}

	ok, err := s.otps.Consume(ctx, user.ID, code)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to verify otp: %w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidOTP)
	}

	user, err = s.users.MarkVerified(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to mark user verified: %w", op, err)
	}

	return user, nil
}

// ResendOTP issues a fresh verification code for an unverified account.
func (s *AuthService) ResendOTP(ctx context.Context, email string) (bool, error) {
	const op = "service.AuthService.ResendOTP"

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("%s: failed to resend otp: %w", op, err)
	}

	if user.Verified {
		return false, fmt.Errorf("%s: %w", op, ErrUserAlreadyVerified)
	}

	sent, err := s.issueOTP(ctx, user)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return sent, nil
}

// Login checks the credentials and opens a session. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	const op = "service.AuthService.Login"

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: failed to login: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !user.Verified {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotVerified)
	}

	pair, err := s.issueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := generateOpaqueToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.sessions.Save(ctx, refresh, userID); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a live refresh token for a new token pair. The old token
// is invalidated first, so each refresh token works at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	const op = "service.AuthService.Refresh"

	userID, err := s.sessions.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
		}

		return nil, fmt.Errorf("%s: failed to refresh tokens: %w", op, err)
	}

	if err := s.sessions.Delete(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("%s: failed to rotate session: %w", op, err)
	}

	pair, err := s.issueTokenPair(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

// Logout ends the session behind the refresh token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	const op = "service.AuthService.Logout"

	if err := s.sessions.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("%s: failed to logout: %w", op, err)
	}

	return nil
}

// Authenticate verifies an access token and returns the user id it names.
// Used by the API middleware.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error) {
	const op = "service.AuthService.Authenticate"

	userID, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return userID, nil
}

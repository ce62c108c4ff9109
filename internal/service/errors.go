package service

import "errors"

var (
	// ErrMaxRetriesExceeded is returned when the maximum number of retries for generating a short code is exceeded.
	ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")
	// ErrForbidden is returned when the caller's role in the organization is
	// insufficient for the operation, or the caller is not a member at all.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidURL is returned when the original URL is not a well-formed absolute URL.
	ErrInvalidURL = errors.New("invalid original url")
	// ErrInvalidShortCode is returned when a requested short code violates the
	// allowed charset or length.
	ErrInvalidShortCode = errors.New("invalid short code")
	// ErrExpiryInPast is returned when a link expiry date is not in the future.
	ErrExpiryInPast = errors.New("expiry date in the past")
	// ErrURLInactive is returned when resolving a link that has been deactivated.
	ErrURLInactive = errors.New("url inactive")
	// ErrURLExpired is returned when resolving a link past its expiry date.
	ErrURLExpired = errors.New("url expired")
	// ErrInvalidRole is returned when a role outside the known set is supplied.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidCredentials is returned on login with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotVerified is returned on login before the email is confirmed.
	ErrUserNotVerified = errors.New("user not verified")
	// ErrUserAlreadyVerified is returned when requesting a new verification
	// code for an already confirmed account.
	ErrUserAlreadyVerified = errors.New("user already verified")
	// ErrInvalidOTP is returned when a verification code is wrong or expired.
	ErrInvalidOTP = errors.New("invalid otp")
	// ErrInvalidRefreshToken is returned when a refresh token matches no live session.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrInvalidAccessToken is returned when an access token fails verification.
	ErrInvalidAccessToken = errors.New("invalid access token")
	// ErrInvalidInviteToken is returned when an invite token matches no invite.
	ErrInvalidInviteToken = errors.New("invalid invite token")
	// ErrInviteExpired is returned when accepting an invite past its expiry.
	ErrInviteExpired = errors.New("invite expired")
	// ErrInviteAlreadyUsed is returned when accepting a token that was already
	// consumed, whether by acceptance or revocation.
	ErrInviteAlreadyUsed = errors.New("invite already used")
	// ErrInviteNotPending is returned when revoking an invite that already
	// left the pending state.
	ErrInviteNotPending = errors.New("invite not pending")
)

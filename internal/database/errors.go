package database

import "errors"

var (
	// ErrUserNotFound is returned when no user matches the given id or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when an attempt is made to register
	// an email address that is already taken.
	ErrUserExists = errors.New("user exists")
	// ErrOrganizationNotFound is returned when no organization matches the given id.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrOrganizationExists is returned when an attempt is made to create
	// an organization with a name that is already taken.
	ErrOrganizationExists = errors.New("organization exists")
	// ErrMembershipExists is returned when an attempt is made to create
	// a second membership for the same (organization, user) pair.
	ErrMembershipExists = errors.New("membership exists")
	// ErrMembershipNotFound is returned when the caller has no membership
	// in the organization in question.
	ErrMembershipNotFound = errors.New("membership not found")
	// ErrNamespaceNotFound is returned when no namespace matches the given id.
	ErrNamespaceNotFound = errors.New("namespace not found")
	// ErrNamespaceExists is returned when an attempt is made to create
	// a namespace with a name that is already taken.
	ErrNamespaceExists = errors.New("namespace exists")
	// ErrShortCodeExists is returned when an attempt is made to create
	// a new shortened URL with a short code that already exists in the namespace.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when an attempt is made to retrieve
	// a URL that doesn't exist.
	ErrURLNotFound = errors.New("url not found")
	// ErrInviteNotFound is returned when no invite matches the given id or token.
	ErrInviteNotFound = errors.New("invite not found")
	// ErrSessionNotFound is returned when a refresh token doesn't match any
	// live session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTimeout is returned when a storage call exceeds its deadline.
	// The operation is safe to retry.
	ErrTimeout = errors.New("storage timeout")
)

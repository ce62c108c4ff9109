package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vadimbarashkov/linknest/internal/models"
	"github.com/vadimbarashkov/linknest/internal/service"
)

// AuthService defines the account lifecycle operations consumed by the API.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, bool, error)
	VerifyOTP(ctx context.Context, email, code string) (*models.User, error)
	ResendOTP(ctx context.Context, email string) (bool, error)
	Login(ctx context.Context, email, password string) (*service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Authenticate(ctx context.Context, accessToken string) (uuid.UUID, error)
}

// OrganizationService defines the tenant operations consumed by the API.
type OrganizationService interface {
	CreateOrganization(ctx context.Context, callerID uuid.UUID, name string) (*models.Organization, error)
	GetOrganization(ctx context.Context, callerID, orgID uuid.UUID) (*models.Organization, error)
	ListOrganizations(ctx context.Context, callerID uuid.UUID) ([]*models.Organization, error)
	ListMembers(ctx context.Context, callerID, orgID uuid.UUID) ([]*models.Membership, error)
}

// NamespaceService defines the namespace operations consumed by the API.
type NamespaceService interface {
	CreateNamespace(ctx context.Context, callerID, orgID uuid.UUID, name, description string) (*models.Namespace, error)
	GetNamespace(ctx context.Context, callerID, id uuid.UUID) (*models.Namespace, error)
	ListNamespaces(ctx context.Context, callerID uuid.UUID) ([]*models.Namespace, error)
	UpdateNamespace(ctx context.Context, callerID, id uuid.UUID, name, description string) (*models.Namespace, error)
	DeleteNamespace(ctx context.Context, callerID, id uuid.UUID) error
}

// URLService defines the short URL operations consumed by the API.
type URLService interface {
	CreateURL(ctx context.Context, callerID uuid.UUID, params service.CreateURLParams) (*models.ShortURL, error)
	GetURL(ctx context.Context, callerID, id uuid.UUID) (*models.ShortURL, error)
	ListURLs(ctx context.Context, callerID uuid.UUID) ([]*models.ShortURL, error)
	ListURLsByNamespace(ctx context.Context, callerID, namespaceID uuid.UUID) ([]*models.ShortURL, error)
	UpdateURL(ctx context.Context, callerID, id uuid.UUID, params service.UpdateURLParams) (*models.ShortURL, error)
	DeleteURL(ctx context.Context, callerID, id uuid.UUID) error
	ResolveURL(ctx context.Context, callerID, id uuid.UUID) (*models.ShortURL, error)
}

// InviteService defines the invitation operations consumed by the API.
type InviteService interface {
	CreateInvite(ctx context.Context, callerID, orgID uuid.UUID, email string, role models.Role) (*models.Invite, bool, error)
	ListInvites(ctx context.Context, callerID, orgID uuid.UUID) ([]*models.Invite, error)
	AcceptInvite(ctx context.Context, callerID uuid.UUID, token string) (*models.Invite, error)
	RevokeInvite(ctx context.Context, callerID, orgID, inviteID uuid.UUID) (*models.Invite, error)
}

// Services bundles everything the router needs.
type Services struct {
	Auth          AuthService
	Organizations OrganizationService
	Namespaces    NamespaceService
	URLs          URLService
	Invites       InviteService
}

// getValidate initializes a validator that reports field names from JSON tags.
func getValidate() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

// NewRouter initializes and returns a new HTTP router with all routes and middleware configured.
func NewRouter(logger *httplog.Logger, svcs Services) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.AllowContentType("application/json"))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		validate := getValidate()

		r.Get("/ping", handlePing)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handleRegister(svcs.Auth, validate))
			r.Post("/login", handleLogin(svcs.Auth, validate))
			r.Post("/logout", handleLogout(svcs.Auth, validate))
			r.Post("/verify-otp", handleVerifyOTP(svcs.Auth, validate))
			r.Post("/resend-otp", handleResendOTP(svcs.Auth, validate))
			r.Post("/token/refresh", handleRefreshToken(svcs.Auth, validate))
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth(svcs.Auth))

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/", handleListOrganizations(svcs.Organizations))
				r.Post("/", handleCreateOrganization(svcs.Organizations, validate))

				r.Route("/{orgID}", func(r chi.Router) {
					r.Get("/", handleGetOrganization(svcs.Organizations))
					r.Get("/members", handleListMembers(svcs.Organizations))

					r.Route("/invites", func(r chi.Router) {
						r.Get("/", handleListInvites(svcs.Invites))
						r.Post("/", handleCreateInvite(svcs.Invites, validate))
						r.Post("/{inviteID}/revoke", handleRevokeInvite(svcs.Invites))
					})
				})
			})

			r.Post("/invites/accept", handleAcceptInvite(svcs.Invites, validate))

			r.Route("/namespaces", func(r chi.Router) {
				r.Get("/", handleListNamespaces(svcs.Namespaces))
				r.Post("/", handleCreateNamespace(svcs.Namespaces, validate))

				r.Route("/{namespaceID}", func(r chi.Router) {
					r.Get("/", handleGetNamespace(svcs.Namespaces))
					r.Put("/", handleUpdateNamespace(svcs.Namespaces, validate))
					r.Delete("/", handleDeleteNamespace(svcs.Namespaces))
				})
			})

			r.Route("/short-urls", func(r chi.Router) {
				r.Get("/", handleListURLs(svcs.URLs))
				r.Post("/", handleCreateURL(svcs.URLs, validate))
				r.Get("/by_namespace", handleListURLsByNamespace(svcs.URLs))

				r.Route("/{urlID}", func(r chi.Router) {
					r.Get("/", handleGetURL(svcs.URLs))
					r.Put("/", handleUpdateURL(svcs.URLs, validate))
					r.Delete("/", handleDeleteURL(svcs.URLs))
					r.Post("/redirect", handleRedirect(svcs.URLs))
				})
			})
		})
	})

	return r
}

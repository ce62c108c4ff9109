package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/vadimbarashkov/linknest/internal/database"
	"github.com/vadimbarashkov/linknest/internal/service"
	"github.com/vadimbarashkov/linknest/pkg/response"
)

// uuidParam extracts a UUID path parameter. A malformed value renders 404,
// matching what a lookup with a nonexistent id would return.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.ResourceNotFoundResponse)
		return uuid.Nil, false
	}

	return id, true
}

// renderError maps business and storage errors onto the HTTP taxonomy.
// Unrecognized errors are logged with the operation name and surface as 500.
func renderError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.ForbiddenResponse)

	case errors.Is(err, database.ErrUserNotFound),
		errors.Is(err, database.ErrOrganizationNotFound),
		errors.Is(err, database.ErrNamespaceNotFound),
		errors.Is(err, database.ErrURLNotFound),
		errors.Is(err, database.ErrInviteNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.ResourceNotFoundResponse)

	case errors.Is(err, database.ErrUserExists),
		errors.Is(err, database.ErrOrganizationExists),
		errors.Is(err, database.ErrNamespaceExists),
		errors.Is(err, database.ErrShortCodeExists),
		errors.Is(err, database.ErrMembershipExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.ConflictResponse)

	case errors.Is(err, service.ErrInvalidURL):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Validation Error", "The original URL must be a well-formed absolute URL."))

	case errors.Is(err, service.ErrInvalidShortCode):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Validation Error", "Short codes are 3-32 characters of letters, digits, hyphen or underscore."))

	case errors.Is(err, service.ErrExpiryInPast):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Validation Error", "Expiry date must be in the future."))

	case errors.Is(err, service.ErrInvalidRole):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Validation Error", "Role must be one of admin, editor or viewer."))

	case errors.Is(err, service.ErrURLInactive):
		render.Status(r, http.StatusGone)
		render.JSON(w, r, response.ErrorResponse("Inactive", "Short URL is not active."))

	case errors.Is(err, service.ErrURLExpired):
		render.Status(r, http.StatusGone)
		render.JSON(w, r, response.ErrorResponse("Expired", "Short URL has expired."))

	case errors.Is(err, service.ErrInvalidCredentials):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.ErrorResponse("Unauthorized", "Invalid email or password."))

	case errors.Is(err, service.ErrUserNotVerified):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.ErrorResponse("Forbidden", "Please verify your email address before logging in."))

	case errors.Is(err, service.ErrUserAlreadyVerified):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Bad Request", "The account is already verified."))

	case errors.Is(err, service.ErrInvalidOTP):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Invalid Code", "The verification code is wrong or has expired."))

	case errors.Is(err, service.ErrInvalidRefreshToken):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.ErrorResponse("Unauthorized", "The refresh token is invalid or has expired."))

	case errors.Is(err, service.ErrInvalidInviteToken):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Invalid Token", "The invite token is invalid."))

	case errors.Is(err, service.ErrInviteExpired):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Token Expired", "The invite has expired. Ask for a new one."))

	case errors.Is(err, service.ErrInviteAlreadyUsed):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Already Used", "The invite token was already used."))

	case errors.Is(err, service.ErrInviteNotPending):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ErrorResponse("Invalid State", "Only pending invites can be revoked."))

	case errors.Is(err, service.ErrMaxRetriesExceeded):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.ErrorResponse("Conflict", "Could not allocate a unique short code. Please retry."))

	case errors.Is(err, database.ErrTimeout):
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.ServiceUnavailableResponse)

	default:
		httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.ServerErrorResponse)
	}
}

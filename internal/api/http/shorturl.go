package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vadimbarashkov/linknest/internal/models"
	"github.com/vadimbarashkov/linknest/internal/service"
	"github.com/vadimbarashkov/linknest/pkg/response"
)

type shortURLResponse struct {
	ID          uuid.UUID  `json:"id"`
	NamespaceID uuid.UUID  `json:"namespace_id"`
	ShortCode   string     `json:"short_code"`
	OriginalURL string     `json:"original_url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	ClickCount  int64      `json:"click_count"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toShortURLResponse(url *models.ShortURL) shortURLResponse {
	return shortURLResponse{
		ID:          url.ID,
		NamespaceID: url.NamespaceID,
		ShortCode:   url.ShortCode,
		OriginalURL: url.OriginalURL,
		Title:       url.Title,
		Description: url.Description,
		IsActive:    url.IsActive,
		ExpiryDate:  url.ExpiryDate,
		ClickCount:  url.ClickCount,
		CreatedBy:   url.CreatedBy,
		CreatedAt:   url.CreatedAt,
		UpdatedAt:   url.UpdatedAt,
	}
}

type redirectResponse struct {
	OriginalURL string `json:"original_url"`
	Redirect    bool   `json:"redirect"`
}

type createURLRequest struct {
	NamespaceID uuid.UUID  `json:"namespace_id" validate:"required"`
	OriginalURL string     `json:"original_url" validate:"required,url"`
	ShortCode   string     `json:"short_code" validate:"omitempty,min=3,max=32"`
	Title       string     `json:"title" validate:"max=255"`
	Description string     `json:"description" validate:"max=1024"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

type updateURLRequest struct {
	OriginalURL string     `json:"original_url" validate:"required,url"`
	ShortCode   string     `json:"short_code" validate:"required,min=3,max=32"`
	Title       string     `json:"title" validate:"max=255"`
	Description string     `json:"description" validate:"max=1024"`
	IsActive    bool       `json:"is_active"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

func handleCreateURL(svc URLService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleCreateURL"
	const successMsg = "The URL was shortened successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		var req createURLRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		url, err := svc.CreateURL(r.Context(), callerID, service.CreateURLParams{
			NamespaceID: req.NamespaceID,
			OriginalURL: req.OriginalURL,
			ShortCode:   req.ShortCode,
			Title:       req.Title,
			Description: req.Description,
			ExpiryDate:  req.ExpiryDate,
		})
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.SuccessResponse(successMsg, toShortURLResponse(url)))
	}
}

func handleGetURL(svc URLService) http.HandlerFunc {
	const op = "api.http.handleGetURL"
	const successMsg = "The URL was retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		urlID, ok := uuidParam(w, r, "urlID")
		if !ok {
			return
		}

		url, err := svc.GetURL(r.Context(), callerID, urlID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toShortURLResponse(url)))
	}
}

func handleListURLs(svc URLService) http.HandlerFunc {
	const op = "api.http.handleListURLs"
	const successMsg = "The URLs were retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		urls, err := svc.ListURLs(r.Context(), callerID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		resp := make([]shortURLResponse, 0, len(urls))
		for _, url := range urls {
			resp = append(resp, toShortURLResponse(url))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, resp))
	}
}

// handleListURLsByNamespace filters links by the namespace_id query parameter.
func handleListURLsByNamespace(svc URLService) http.HandlerFunc {
	const op = "api.http.handleListURLsByNamespace"
	const successMsg = "The URLs were retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		namespaceID, err := uuid.Parse(r.URL.Query().Get("namespace_id"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ErrorResponse("Validation Error", "The namespace_id query parameter must be a valid UUID."))
			return
		}

		urls, err := svc.ListURLsByNamespace(r.Context(), callerID, namespaceID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		resp := make([]shortURLResponse, 0, len(urls))
		for _, url := range urls {
			resp = append(resp, toShortURLResponse(url))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, resp))
	}
}

func handleUpdateURL(svc URLService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleUpdateURL"
	const successMsg = "The URL was updated successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		urlID, ok := uuidParam(w, r, "urlID")
		if !ok {
			return
		}

		var req updateURLRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationErrorResponse(err))
			return
		}

		url, err := svc.UpdateURL(r.Context(), callerID, urlID, service.UpdateURLParams{
			OriginalURL: req.OriginalURL,
			ShortCode:   req.ShortCode,
			Title:       req.Title,
			Description: req.Description,
			IsActive:    req.IsActive,
			ExpiryDate:  req.ExpiryDate,
		})
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toShortURLResponse(url)))
	}
}

func handleDeleteURL(svc URLService) http.HandlerFunc {
	const op = "api.http.handleDeleteURL"
	const successMsg = "The URL was deleted successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		urlID, ok := uuidParam(w, r, "urlID")
		if !ok {
			return
		}

		if err := svc.DeleteURL(r.Context(), callerID, urlID); err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}

// handleRedirect resolves a link and records the click. The response carries
// the destination; the client performs the actual navigation.
func handleRedirect(svc URLService) http.HandlerFunc {
	const op = "api.http.handleRedirect"
	const successMsg = "The URL was resolved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		urlID, ok := uuidParam(w, r, "urlID")
		if !ok {
			return
		}

		url, err := svc.ResolveURL(r.Context(), callerID, urlID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, redirectResponse{
			OriginalURL: url.OriginalURL,
			Redirect:    true,
		}))
	}
}

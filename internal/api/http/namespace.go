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
	"github.com/vadimbarashkov/linknest/pkg/response"
)

type namespaceResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toNamespaceResponse(ns *models.Namespace) namespaceResponse {
	return namespaceResponse{
		ID:             ns.ID,
		OrganizationID: ns.OrganizationID,
		Name:           ns.Name,
		Description:    ns.Description,
		CreatedAt:      ns.CreatedAt,
		UpdatedAt:      ns.UpdatedAt,
	}
}

type createNamespaceRequest struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Name           string    `json:"name" validate:"required,min=1,max=255"`
	Description    string    `json:"description" validate:"max=1024"`
}

type updateNamespaceRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"max=1024"`
}

func handleCreateNamespace(svc NamespaceService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleCreateNamespace"
	const successMsg = "The namespace was created successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		var req createNamespaceRequest

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

		ns, err := svc.CreateNamespace(r.Context(), callerID, req.OrganizationID, req.Name, req.Description)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.SuccessResponse(successMsg, toNamespaceResponse(ns)))
	}
}

func handleGetNamespace(svc NamespaceService) http.HandlerFunc {
	const op = "api.http.handleGetNamespace"
	const successMsg = "The namespace was retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		namespaceID, ok := uuidParam(w, r, "namespaceID")
		if !ok {
			return
		}

		ns, err := svc.GetNamespace(r.Context(), callerID, namespaceID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toNamespaceResponse(ns)))
	}
}

func handleListNamespaces(svc NamespaceService) http.HandlerFunc {
	const op = "api.http.handleListNamespaces"
	const successMsg = "The namespaces were retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		namespaces, err := svc.ListNamespaces(r.Context(), callerID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		resp := make([]namespaceResponse, 0, len(namespaces))
		for _, ns := range namespaces {
			resp = append(resp, toNamespaceResponse(ns))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, resp))
	}
}

func handleUpdateNamespace(svc NamespaceService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleUpdateNamespace"
	const successMsg = "The namespace was updated successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		namespaceID, ok := uuidParam(w, r, "namespaceID")
		if !ok {
			return
		}

		var req updateNamespaceRequest

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

		ns, err := svc.UpdateNamespace(r.Context(), callerID, namespaceID, req.Name, req.Description)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toNamespaceResponse(ns)))
	}
}

func handleDeleteNamespace(svc NamespaceService) http.HandlerFunc {
	const op = "api.http.handleDeleteNamespace"
	const successMsg = "The namespace was deleted successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		namespaceID, ok := uuidParam(w, r, "namespaceID")
		if !ok {
			return
		}

		if err := svc.DeleteNamespace(r.Context(), callerID, namespaceID); err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg))
	}
}

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

type organizationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	OwnerID     uuid.UUID `json:"owner_id"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toOrganizationResponse(org *models.Organization) organizationResponse {
	return organizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		OwnerID:     org.OwnerID,
		MemberCount: org.MemberCount,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

type membershipResponse struct {
	ID             uuid.UUID   `json:"id"`
	OrganizationID uuid.UUID   `json:"organization_id"`
	UserID         uuid.UUID   `json:"user_id"`
	UserEmail      string      `json:"user_email"`
	Role           models.Role `json:"role"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func toMembershipResponse(m *models.Membership) membershipResponse {
	return membershipResponse{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		UserEmail:      m.UserEmail,
		Role:           m.Role,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

type createOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

func handleCreateOrganization(svc OrganizationService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleCreateOrganization"
	const successMsg = "The organization was created successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		var req createOrganizationRequest

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

		org, err := svc.CreateOrganization(r.Context(), callerID, req.Name)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.SuccessResponse(successMsg, toOrganizationResponse(org)))
	}
}

func handleGetOrganization(svc OrganizationService) http.HandlerFunc {
	const op = "api.http.handleGetOrganization"
	const successMsg = "The organization was retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		orgID, ok := uuidParam(w, r, "orgID")
		if !ok {
			return
		}

		org, err := svc.GetOrganization(r.Context(), callerID, orgID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toOrganizationResponse(org)))
	}
}

func handleListOrganizations(svc OrganizationService) http.HandlerFunc {
	const op = "api.http.handleListOrganizations"
	const successMsg = "The organizations were retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		orgs, err := svc.ListOrganizations(r.Context(), callerID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		resp := make([]organizationResponse, 0, len(orgs))
		for _, org := range orgs {
			resp = append(resp, toOrganizationResponse(org))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, resp))
	}
}

func handleListMembers(svc OrganizationService) http.HandlerFunc {
	const op = "api.http.handleListMembers"
	const successMsg = "The members were retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		orgID, ok := uuidParam(w, r, "orgID")
		if !ok {
			return
		}

		members, err := svc.ListMembers(r.Context(), callerID, orgID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		resp := make([]membershipResponse, 0, len(members))
		for _, m := range members {
			resp = append(resp, toMembershipResponse(m))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, resp))
	}
}

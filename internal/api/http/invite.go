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

type inviteResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrganizationID uuid.UUID           `json:"organization_id"`
	Email          string              `json:"email"`
	Role           models.Role         `json:"role"`
	Status         models.InviteStatus `json:"status"`
	CreatedBy      uuid.UUID           `json:"created_by"`
	ExpiresAt      time.Time           `json:"expires_at"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// toInviteResponse renders an invite without its token. Tokens travel only in
// the invitation email.
func toInviteResponse(invite *models.Invite) inviteResponse {
	return inviteResponse{
		ID:             invite.ID,
		OrganizationID: invite.OrganizationID,
		Email:          invite.Email,
		Role:           invite.Role,
		Status:         invite.Status(time.Now()),
		CreatedBy:      invite.CreatedBy,
		ExpiresAt:      invite.ExpiresAt,
		CreatedAt:      invite.CreatedAt,
		UpdatedAt:      invite.UpdatedAt,
	}
}

type createInviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=admin editor viewer"`
}

type createInviteResponse struct {
	Invite    inviteResponse `json:"invite"`
	EmailSent bool           `json:"email_sent"`
}

func handleCreateInvite(svc InviteService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleCreateInvite"
	const successMsg = "The invitation was created successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		orgID, ok := uuidParam(w, r, "orgID")
		if !ok {
			return
		}

		var req createInviteRequest

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

		invite, emailSent, err := svc.CreateInvite(r.Context(), callerID, orgID, req.Email, models.Role(req.Role))
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.SuccessResponse(successMsg, createInviteResponse{
			Invite:    toInviteResponse(invite),
			EmailSent: emailSent,
		}))
	}
}

func handleListInvites(svc InviteService) http.HandlerFunc {
	const op = "api.http.handleListInvites"
	const successMsg = "The invitations were retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		orgID, ok := uuidParam(w, r, "orgID")
		if !ok {
			return
		}

		invites, err := svc.ListInvites(r.Context(), callerID, orgID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		resp := make([]inviteResponse, 0, len(invites))
		for _, invite := range invites {
			resp = append(resp, toInviteResponse(invite))
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, resp))
	}
}

type acceptInviteRequest struct {
	Token string `json:"token" validate:"required"`
}

func handleAcceptInvite(svc InviteService, validate *validator.Validate) http.HandlerFunc {
	const op = "api.http.handleAcceptInvite"
	const successMsg = "The invitation was accepted successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		var req acceptInviteRequest

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

		invite, err := svc.AcceptInvite(r.Context(), callerID, req.Token)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toInviteResponse(invite)))
	}
}

func handleRevokeInvite(svc InviteService) http.HandlerFunc {
	const op = "api.http.handleRevokeInvite"
	const successMsg = "The invitation was revoked successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}

		orgID, ok := uuidParam(w, r, "orgID")
		if !ok {
			return
		}

		inviteID, ok := uuidParam(w, r, "inviteID")
		if !ok {
			return
		}

		invite, err := svc.RevokeInvite(r.Context(), callerID, orgID, inviteID)
		if err != nil {
			renderError(w, r, op, err)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(successMsg, toInviteResponse(invite)))
	}
}

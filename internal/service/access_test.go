package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vadimbarashkov/linknest/internal/database"
	"github.com/vadimbarashkov/linknest/internal/models"
)

func setupAccessControl(t testing.TB, role models.Role, membershipErr error) (*AccessControl, uuid.UUID, uuid.UUID) {
	t.Helper()

	orgID := uuid.New()
	userID := uuid.New()

	memberships := new(MockMembershipProvider)
	if membershipErr != nil {
		memberships.
			On("GetMembership", context.Background(), orgID, userID).
			Return(nil, membershipErr)
	} else {
		memberships.
			On("GetMembership", context.Background(), orgID, userID).
			Return(&models.Membership{OrganizationID: orgID, UserID: userID, Role: role}, nil)
	}

	return NewAccessControl(memberships), orgID, userID
}

func TestAccessControl_RequireMember(t *testing.T) {
	t.Run("non-member forbidden", func(t *testing.T) {
		access, orgID, userID := setupAccessControl(t, "", database.ErrMembershipNotFound)

		err := access.RequireMember(context.Background(), orgID, userID)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("any role suffices", func(t *testing.T) {
		for _, role := range []models.Role{models.RoleAdmin, models.RoleEditor, models.RoleViewer} {
			access, orgID, userID := setupAccessControl(t, role, nil)

			err := access.RequireMember(context.Background(), orgID, userID)

			assert.NoError(t, err)
		}
	})
}

func TestAccessControl_RequireURLManager(t *testing.T) {
	tests := []struct {
		role    models.Role
		allowed bool
	}{
		{models.RoleAdmin, true},
		{models.RoleEditor, true},
		{models.RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			access, orgID, userID := setupAccessControl(t, tt.role, nil)

			err := access.RequireURLManager(context.Background(), orgID, userID)

			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAccessControl_RequireNamespaceManager(t *testing.T) {
	tests := []struct {
		role    models.Role
		allowed bool
	}{
		{models.RoleAdmin, true},
		{models.RoleEditor, false},
		{models.RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			access, orgID, userID := setupAccessControl(t, tt.role, nil)

			err := access.RequireNamespaceManager(context.Background(), orgID, userID)

			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAccessControl_RequireMemberManager(t *testing.T) {
	tests := []struct {
		role    models.Role
		allowed bool
	}{
		{models.RoleAdmin, true},
		{models.RoleEditor, false},
		{models.RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			access, orgID, userID := setupAccessControl(t, tt.role, nil)

			err := access.RequireMemberManager(context.Background(), orgID, userID)

			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

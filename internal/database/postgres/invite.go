package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vadimbarashkov/linknest/internal/database"
	"github.com/vadimbarashkov/linknest/internal/models"
)

type inviteRecord struct {
	ID             uuid.UUID   `db:"id"`
	OrganizationID uuid.UUID   `db:"organization_id"`
	Email          string      `db:"email"`
	Role           models.Role `db:"role"`
	Token          string      `db:"token"`
	Used           bool        `db:"used"`
	Accepted       bool        `db:"accepted"`
	CreatedBy      uuid.UUID   `db:"created_by"`
	ExpiresAt      time.Time   `db:"expires_at"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

func (r *inviteRecord) toInvite() *models.Invite {
	return &models.Invite{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Email:          r.Email,
		Role:           r.Role,
		Token:          r.Token,
		Used:           r.Used,
		Accepted:       r.Accepted,
		CreatedBy:      r.CreatedBy,
		ExpiresAt:      r.ExpiresAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type InviteRepository struct {
	db *sqlx.DB
}

func NewInviteRepository(db *sqlx.DB) *InviteRepository {
	return &InviteRepository{
		db: db,
	}
}

func (r *InviteRepository) Create(ctx context.Context, invite *models.Invite) (*models.Invite, error) {
	const op = "database.postgres.InviteRepository.Create"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(inviteRecord)
	query := `INSERT INTO invites(organization_id, email, role, token, created_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query,
		invite.OrganizationID, invite.Email, invite.Role,
		invite.Token, invite.CreatedBy, invite.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create invite record: %w", op, mapTimeout(err))
	}

	return rec.toInvite(), nil
}

func (r *InviteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invite, error) {
	const op = "database.postgres.InviteRepository.GetByID"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(inviteRecord)
	query := `SELECT * FROM invites WHERE id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrInviteNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get invite record: %w", op, mapTimeout(err))
	}

	return rec.toInvite(), nil
}

func (r *InviteRepository) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	const op = "database.postgres.InviteRepository.GetByToken"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(inviteRecord)
	query := `SELECT * FROM invites WHERE token = $1`

	err := r.db.GetContext(ctx, rec, query, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrInviteNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get invite record: %w", op, mapTimeout(err))
	}

	return rec.toInvite(), nil
}

func (r *InviteRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.Invite, error) {
	const op = "database.postgres.InviteRepository.ListByOrganization"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var recs []inviteRecord
	query := `SELECT * FROM invites
		WHERE organization_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &recs, query, orgID); err != nil {
		return nil, fmt.Errorf("%s: failed to list invite records: %w", op, mapTimeout(err))
	}

	invites := make([]*models.Invite, 0, len(recs))
	for i := range recs {
		invites = append(invites, recs[i].toInvite())
	}

	return invites, nil
}

// Accept consumes the token and creates the membership in one transaction.
// The conditional update guarantees the used flag flips false to true exactly
// once: a concurrent accept of the same token sees zero rows and fails with
// ErrInviteNotFound.
func (r *InviteRepository) Accept(ctx context.Context, token string, userID uuid.UUID) (*models.Invite, error) {
	const op = "database.postgres.InviteRepository.Accept"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, mapTimeout(err))
	}
	defer tx.Rollback() //nolint:errcheck

	rec := new(inviteRecord)
	query := `UPDATE invites
		SET used = TRUE, accepted = TRUE, updated_at = now()
		WHERE token = $1 AND NOT used AND expires_at > now()
		RETURNING *`

	if err := tx.GetContext(ctx, rec, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrInviteNotFound)
		}

		return nil, fmt.Errorf("%s: failed to consume invite: %w", op, mapTimeout(err))
	}

	query = `INSERT INTO memberships(organization_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id, user_id)
		DO UPDATE SET role = EXCLUDED.role, updated_at = now()`

	if _, err := tx.ExecContext(ctx, query, rec.OrganizationID, userID, rec.Role); err != nil {
		return nil, fmt.Errorf("%s: failed to create membership: %w", op, mapTimeout(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, mapTimeout(err))
	}

	return rec.toInvite(), nil
}

// Revoke marks a still-pending invite as used without accepting it.
// Zero affected rows means the invite was already consumed or revoked.
func (r *InviteRepository) Revoke(ctx context.Context, id uuid.UUID) (*models.Invite, error) {
	const op = "database.postgres.InviteRepository.Revoke"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(inviteRecord)
	query := `UPDATE invites
		SET used = TRUE, updated_at = now()
		WHERE id = $1 AND NOT used
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrInviteNotFound)
		}

		return nil, fmt.Errorf("%s: failed to revoke invite record: %w", op, mapTimeout(err))
	}

	return rec.toInvite(), nil
}

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

type organizationRecord struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	OwnerID     uuid.UUID `db:"owner_id"`
	MemberCount int64     `db:"member_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *organizationRecord) toOrganization() *models.Organization {
	return &models.Organization{
		ID:          r.ID,
		Name:        r.Name,
		OwnerID:     r.OwnerID,
		MemberCount: r.MemberCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type membershipRecord struct {
	ID             uuid.UUID   `db:"id"`
	OrganizationID uuid.UUID   `db:"organization_id"`
	UserID         uuid.UUID   `db:"user_id"`
	UserEmail      string      `db:"user_email"`
	Role           models.Role `db:"role"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

func (r *membershipRecord) toMembership() *models.Membership {
	return &models.Membership{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		UserID:         r.UserID,
		UserEmail:      r.UserEmail,
		Role:           r.Role,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

const organizationColumns = `o.id, o.name, o.owner_id, o.created_at, o.updated_at,
	(SELECT count(*) FROM memberships m WHERE m.organization_id = o.id) AS member_count`

type OrganizationRepository struct {
	db *sqlx.DB
}

func NewOrganizationRepository(db *sqlx.DB) *OrganizationRepository {
	return &OrganizationRepository{
		db: db,
	}
}

// Create inserts the organization and the owner's admin membership in a
// single transaction, so an organization never exists without its owner
// being a member.
func (r *OrganizationRepository) Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Organization, error) {
	const op = "database.postgres.OrganizationRepository.Create"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, mapTimeout(err))
	}
	defer tx.Rollback() //nolint:errcheck

	rec := new(organizationRecord)
	query := `INSERT INTO organizations(name, owner_id)
		VALUES ($1, $2)
		RETURNING id, name, owner_id, created_at, updated_at, 1::bigint AS member_count`

	if err := tx.GetContext(ctx, rec, query, name, ownerID); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrOrganizationExists)
		}

		return nil, fmt.Errorf("%s: failed to create organization record: %w", op, mapTimeout(err))
	}

	query = `INSERT INTO memberships(organization_id, user_id, role)
		VALUES ($1, $2, $3)`

	if _, err := tx.ExecContext(ctx, query, rec.ID, ownerID, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("%s: failed to create owner membership: %w", op, mapTimeout(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, mapTimeout(err))
	}

	return rec.toOrganization(), nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	const op = "database.postgres.OrganizationRepository.GetByID"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(organizationRecord)
	query := `SELECT ` + organizationColumns + `
		FROM organizations o
		WHERE o.id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrOrganizationNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get organization record: %w", op, mapTimeout(err))
	}

	return rec.toOrganization(), nil
}

func (r *OrganizationRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Organization, error) {
	const op = "database.postgres.OrganizationRepository.ListByMember"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var recs []organizationRecord
	query := `SELECT ` + organizationColumns + `
		FROM organizations o
		JOIN memberships m ON m.organization_id = o.id
		WHERE m.user_id = $1
		ORDER BY o.created_at DESC`

	if err := r.db.SelectContext(ctx, &recs, query, userID); err != nil {
		return nil, fmt.Errorf("%s: failed to list organization records: %w", op, mapTimeout(err))
	}

	orgs := make([]*models.Organization, 0, len(recs))
	for i := range recs {
		orgs = append(orgs, recs[i].toOrganization())
	}

	return orgs, nil
}

func (r *OrganizationRepository) ListMembers(ctx context.Context, orgID uuid.UUID) ([]*models.Membership, error) {
	const op = "database.postgres.OrganizationRepository.ListMembers"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var recs []membershipRecord
	query := `SELECT m.id, m.organization_id, m.user_id, u.email AS user_email,
			m.role, m.created_at, m.updated_at
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = $1
		ORDER BY m.created_at`

	if err := r.db.SelectContext(ctx, &recs, query, orgID); err != nil {
		return nil, fmt.Errorf("%s: failed to list membership records: %w", op, mapTimeout(err))
	}

	members := make([]*models.Membership, 0, len(recs))
	for i := range recs {
		members = append(members, recs[i].toMembership())
	}

	return members, nil
}

func (r *OrganizationRepository) GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*models.Membership, error) {
	const op = "database.postgres.OrganizationRepository.GetMembership"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(membershipRecord)
	query := `SELECT m.id, m.organization_id, m.user_id, u.email AS user_email,
			m.role, m.created_at, m.updated_at
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = $1 AND m.user_id = $2`

	err := r.db.GetContext(ctx, rec, query, orgID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrMembershipNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get membership record: %w", op, mapTimeout(err))
	}

	return rec.toMembership(), nil
}

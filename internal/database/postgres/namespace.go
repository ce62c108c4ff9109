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

type namespaceRecord struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *namespaceRecord) toNamespace() *models.Namespace {
	return &models.Namespace{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Name:           r.Name,
		Description:    r.Description,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type NamespaceRepository struct {
	db *sqlx.DB
}

func NewNamespaceRepository(db *sqlx.DB) *NamespaceRepository {
	return &NamespaceRepository{
		db: db,
	}
}

func (r *NamespaceRepository) Create(ctx context.Context, orgID uuid.UUID, name, description string) (*models.Namespace, error) {
	const op = "database.postgres.NamespaceRepository.Create"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(namespaceRecord)
	query := `INSERT INTO namespaces(organization_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, orgID, name, description)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrNamespaceExists)
		}

		return nil, fmt.Errorf("%s: failed to create namespace record: %w", op, mapTimeout(err))
	}

	return rec.toNamespace(), nil
}

func (r *NamespaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Namespace, error) {
	const op = "database.postgres.NamespaceRepository.GetByID"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(namespaceRecord)
	query := `SELECT * FROM namespaces WHERE id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrNamespaceNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get namespace record: %w", op, mapTimeout(err))
	}

	return rec.toNamespace(), nil
}

func (r *NamespaceRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Namespace, error) {
	const op = "database.postgres.NamespaceRepository.ListByMember"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var recs []namespaceRecord
	query := `SELECT n.*
		FROM namespaces n
		JOIN memberships m ON m.organization_id = n.organization_id
		WHERE m.user_id = $1
		ORDER BY n.created_at DESC`

	if err := r.db.SelectContext(ctx, &recs, query, userID); err != nil {
		return nil, fmt.Errorf("%s: failed to list namespace records: %w", op, mapTimeout(err))
	}

	namespaces := make([]*models.Namespace, 0, len(recs))
	for i := range recs {
		namespaces = append(namespaces, recs[i].toNamespace())
	}

	return namespaces, nil
}

func (r *NamespaceRepository) Update(ctx context.Context, id uuid.UUID, name, description string) (*models.Namespace, error) {
	const op = "database.postgres.NamespaceRepository.Update"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(namespaceRecord)
	query := `UPDATE namespaces
		SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, name, description, id)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrNamespaceExists)
		}
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrNamespaceNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update namespace record: %w", op, mapTimeout(err))
	}

	return rec.toNamespace(), nil
}

// Delete removes the namespace. Its short URLs go with it via the
// ON DELETE CASCADE constraint.
func (r *NamespaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "database.postgres.NamespaceRepository.Delete"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `DELETE FROM namespaces WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete namespace record: %w", op, mapTimeout(err))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrNamespaceNotFound)
	}

	return nil
}

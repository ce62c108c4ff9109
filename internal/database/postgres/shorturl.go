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

type urlRecord struct {
	ID          uuid.UUID  `db:"id"`
	NamespaceID uuid.UUID  `db:"namespace_id"`
	ShortCode   string     `db:"short_code"`
	OriginalURL string     `db:"original_url"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	IsActive    bool       `db:"is_active"`
	ExpiryDate  *time.Time `db:"expiry_date"`
	ClickCount  int64      `db:"click_count"`
	CreatedBy   uuid.UUID  `db:"created_by"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r *urlRecord) toShortURL() *models.ShortURL {
	return &models.ShortURL{
		ID:          r.ID,
		NamespaceID: r.NamespaceID,
		ShortCode:   r.ShortCode,
		OriginalURL: r.OriginalURL,
		Title:       r.Title,
		Description: r.Description,
		IsActive:    r.IsActive,
		ExpiryDate:  r.ExpiryDate,
		ClickCount:  r.ClickCount,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{
		db: db,
	}
}

// Create inserts a new short URL. Uniqueness of (namespace_id, short_code)
// rides on the table constraint, so two concurrent creates with the same code
// cannot both succeed.
func (r *URLRepository) Create(ctx context.Context, url *models.ShortURL) (*models.ShortURL, error) {
	const op = "database.postgres.URLRepository.Create"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(urlRecord)
	query := `INSERT INTO short_urls(namespace_id, short_code, original_url, title, description, is_active, expiry_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query,
		url.NamespaceID, url.ShortCode, url.OriginalURL, url.Title,
		url.Description, url.IsActive, url.ExpiryDate, url.CreatedBy)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrShortCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to create url record: %w", op, mapTimeout(err))
	}

	return rec.toShortURL(), nil
}

func (r *URLRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ShortURL, error) {
	const op = "database.postgres.URLRepository.GetByID"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(urlRecord)
	query := `SELECT * FROM short_urls WHERE id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get url record: %w", op, mapTimeout(err))
	}

	return rec.toShortURL(), nil
}

func (r *URLRepository) ListByNamespace(ctx context.Context, namespaceID uuid.UUID) ([]*models.ShortURL, error) {
	const op = "database.postgres.URLRepository.ListByNamespace"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var recs []urlRecord
	query := `SELECT * FROM short_urls
		WHERE namespace_id = $1
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &recs, query, namespaceID); err != nil {
		return nil, fmt.Errorf("%s: failed to list url records: %w", op, mapTimeout(err))
	}

	urls := make([]*models.ShortURL, 0, len(recs))
	for i := range recs {
		urls = append(urls, recs[i].toShortURL())
	}

	return urls, nil
}

// ListByMember returns every link in namespaces whose organization the user
// is a member of.
func (r *URLRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.ShortURL, error) {
	const op = "database.postgres.URLRepository.ListByMember"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var recs []urlRecord
	query := `SELECT s.*
		FROM short_urls s
		JOIN namespaces n ON n.id = s.namespace_id
		JOIN memberships m ON m.organization_id = n.organization_id
		WHERE m.user_id = $1
		ORDER BY s.created_at DESC`

	if err := r.db.SelectContext(ctx, &recs, query, userID); err != nil {
		return nil, fmt.Errorf("%s: failed to list url records: %w", op, mapTimeout(err))
	}

	urls := make([]*models.ShortURL, 0, len(recs))
	for i := range recs {
		urls = append(urls, recs[i].toShortURL())
	}

	return urls, nil
}

func (r *URLRepository) Update(ctx context.Context, url *models.ShortURL) (*models.ShortURL, error) {
	const op = "database.postgres.URLRepository.Update"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(urlRecord)
	query := `UPDATE short_urls
		SET short_code = $1, original_url = $2, title = $3, description = $4,
			is_active = $5, expiry_date = $6, updated_at = now()
		WHERE id = $7
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query,
		url.ShortCode, url.OriginalURL, url.Title, url.Description,
		url.IsActive, url.ExpiryDate, url.ID)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrShortCodeExists)
		}
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update url record: %w", op, mapTimeout(err))
	}

	return rec.toShortURL(), nil
}

func (r *URLRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "database.postgres.URLRepository.Delete"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `DELETE FROM short_urls WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete url record: %w", op, mapTimeout(err))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
	}

	return nil
}

// ResolveAndCount increments the click count and returns the link in one
// atomic statement. The predicate repeats the active/expiry checks so a link
// that was deactivated or expired after the caller's read is never counted.
// Concurrent resolutions serialize on the row lock; no update is lost.
func (r *URLRepository) ResolveAndCount(ctx context.Context, id uuid.UUID) (*models.ShortURL, error) {
	const op = "database.postgres.URLRepository.ResolveAndCount"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(urlRecord)
	query := `UPDATE short_urls
		SET click_count = click_count + 1
		WHERE id = $1
			AND is_active
			AND (expiry_date IS NULL OR expiry_date > now())
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to resolve url record: %w", op, mapTimeout(err))
	}

	return rec.toShortURL(), nil
}

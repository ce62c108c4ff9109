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

type userRecord struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Verified     bool      `db:"verified"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r *userRecord) toUser() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Verified:     r.Verified,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	const op = "database.postgres.UserRepository.Create"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(userRecord)
	query := `INSERT INTO users(email, password_hash)
		VALUES ($1, $2)
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, email, passwordHash)
	if err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, database.ErrUserExists)
		}

		return nil, fmt.Errorf("%s: failed to create user record: %w", op, mapTimeout(err))
	}

	return rec.toUser(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "database.postgres.UserRepository.GetByID"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(userRecord)
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get user record: %w", op, mapTimeout(err))
	}

	return rec.toUser(), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "database.postgres.UserRepository.GetByEmail"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(userRecord)
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, rec, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get user record: %w", op, mapTimeout(err))
	}

	return rec.toUser(), nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "database.postgres.UserRepository.MarkVerified"

	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rec := new(userRecord)
	query := `UPDATE users
		SET verified = TRUE, updated_at = now()
		WHERE id = $1
		RETURNING *`

	err := r.db.GetContext(ctx, rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: %w", op, database.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to mark user verified: %w", op, mapTimeout(err))
	}

	return rec.toUser(), nil
}

package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines user data access
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	IDByEmail(ctx context.Context, email string) (uuid.UUID, error)
	UpdateName(ctx context.Context, email, firstName, lastName string) error
	UpdateProfileImage(ctx context.Context, email, imageURL string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new user. The unique index on email is the authority
// on duplicates; a 23505 from it maps to ErrEmailAlreadyExists.
func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("user repository create: %w", err)
	}

	return nil
}

// GetByEmail returns user by email, ErrUserNotFound when absent
func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, profile_image, created_at, updated_at
		FROM users WHERE email = $1
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// IDByEmail resolves a user ID from the token's email claim
func (r *repository) IDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.GetContext(ctx, &id, `SELECT id FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, ErrUserNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateName updates the profile name fields
func (r *repository) UpdateName(ctx context.Context, email, firstName, lastName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, updated_at = NOW() WHERE email = $1`,
		email, firstName, lastName,
	)
	if err != nil {
		return fmt.Errorf("user repository update name: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateProfileImage stores the avatar URL
func (r *repository) UpdateProfileImage(ctx context.Context, email, imageURL string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET profile_image = $2, updated_at = NOW() WHERE email = $1`,
		email, imageURL,
	)
	if err != nil {
		return fmt.Errorf("user repository update image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

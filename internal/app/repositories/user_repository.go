package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kerem/classora/internal/app/models"
)

// UserRepository reads principal records owned by the external identity
// service. Only public-safe fields are ever selected; this service never
// writes user rows.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetPublicByID retrieves the public-safe fields of a principal.
// Returns (nil, nil) when the id is unknown.
func (r *UserRepository) GetPublicByID(ctx context.Context, id string) (*models.PublicUser, error) {
	query := `
		SELECT id, name, image, image_cld_pub_id, role
		FROM users
		WHERE id = $1
	`

	var user models.PublicUser
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Image,
		&user.ImageCldPubID,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// Exists reports whether a principal record is present
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}

	return exists, nil
}

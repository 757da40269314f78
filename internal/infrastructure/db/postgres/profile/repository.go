package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "clinic-storage-api/internal/domain/profile"
	"clinic-storage-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchRole(ctx context.Context, userID string) (string, error) {
	var role string
	if err := r.db.QueryRow(ctx, SelectRoleByUserID, userID).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	return role, nil
}

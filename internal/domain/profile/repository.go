package profile

import (
	"context"
)

type Repository interface {
	// FetchRole returns the role string for the user, or "" when no profile
	// row exists.
	FetchRole(ctx context.Context, userID string) (string, error)
}

package ports

import "context"

// IdentityResolver turns a raw bearer token into the identity provider's
// stable user id.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

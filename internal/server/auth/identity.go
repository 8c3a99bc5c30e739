// Package auth issues access tokens and turns them back into identities.
package auth

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adminvote/internal/server/models"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated user.
func WithIdentity(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, identityKey{}, user)
}

// IdentityFromContext returns the user stored by WithIdentity, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) any {
	user, ok := ctx.Value(identityKey{}).(*models.User)
	if !ok || user == nil {
		return nil
	}
	return user
}

// UserFinder loads users by primary key.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// IdentityResolver maps an access token onto the user it was issued to.
type IdentityResolver struct {
	users     UserFinder
	jwtSecret []byte
}

func NewIdentityResolver(users UserFinder, secretKey string) *IdentityResolver {
	return &IdentityResolver{users: users, jwtSecret: []byte(secretKey)}
}

// Resolve validates token and loads the current state of its user.
// The stored user is authoritative: a token minted before a rename does not
// carry the old name into a decision.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := ParseToken(token, r.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := r.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve user %d: %w", claims.UserID, err)
	}

	return user, nil
}

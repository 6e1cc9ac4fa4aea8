package graph

import (
	"context"

	"github.com/campustech/clubhub/backend/internal/auth"
	"github.com/campustech/clubhub/backend/internal/model"
)

type callerContextKey struct{}

// WithCaller attaches the resolved caller to a request context. A nil user
// marks the request anonymous.
func WithCaller(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, callerContextKey{}, user)
}

// CallerFrom returns the resolved caller, or nil for anonymous requests.
func CallerFrom(ctx context.Context) *model.User {
	user, _ := ctx.Value(callerContextKey{}).(*model.User)
	return user
}

// RequireAuth returns the caller or the authentication-required failure.
// Every guarded resolver calls this before touching the database.
func RequireAuth(ctx context.Context) (*model.User, error) {
	user := CallerFrom(ctx)
	if user == nil {
		return nil, auth.ErrAuthenticationRequired
	}
	return user, nil
}

// RequireAdmin returns the caller when it holds the global admin role.
func RequireAdmin(ctx context.Context) (*model.User, error) {
	user, err := RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, auth.ErrAdminRequired
	}
	return user, nil
}

func actorFor(user *model.User) auth.Actor {
	return auth.Actor{UserID: user.ID, Admin: user.IsAdmin()}
}

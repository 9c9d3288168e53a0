package auth

import (
	"context"

	"github.com/jw6ventures/stravaview/internal/strava"
)

type contextKey string

const contextKeyUser contextKey = "user"

func WithUser(ctx context.Context, user *strava.TokenBundle) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

// UserFromContext returns the signed-in athlete's unexpired token bundle.
func UserFromContext(ctx context.Context) (*strava.TokenBundle, bool) {
	u, ok := ctx.Value(contextKeyUser).(*strava.TokenBundle)
	return u, ok && u != nil
}

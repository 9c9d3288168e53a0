package auth

import (
	"time"

	"github.com/jw6ventures/stravaview/internal/strava"
)

// ResolveUser returns b when it is present and still valid at now.
// A token is expired from the second named by ExpiresAt onwards.
func ResolveUser(b *strava.TokenBundle, now time.Time) *strava.TokenBundle {
	if b == nil {
		return nil
	}
	if !now.Before(b.Expiry()) {
		return nil
	}
	return b
}

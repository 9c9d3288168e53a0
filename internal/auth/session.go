package auth

import (
	"crypto/sha256"
	"encoding/gob"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/hkdf"

	"github.com/jw6ventures/stravaview/internal/config"
	"github.com/jw6ventures/stravaview/internal/strava"
)

const (
	cookieName = "stravaview_session"
	userKey    = "strava_user"
)

func init() {
	gob.Register(strava.TokenBundle{})
}

// SessionManager stores the Strava token bundle in a signed, encrypted cookie.
type SessionManager struct {
	store *sessions.CookieStore
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewSessionManager(cfg *config.Config, log logrus.FieldLogger) (*SessionManager, error) {
	hashKey, err := deriveKey(cfg.Session.Secret, "stravaview session hash", 64)
	if err != nil {
		return nil, err
	}
	blockKey, err := deriveKey(cfg.Session.Secret, "stravaview session block", 32)
	if err != nil {
		return nil, err
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.SecureCookies(),
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(cfg.Session.MaxAge / time.Second))

	return &SessionManager{
		store: store,
		log:   log,
		now:   time.Now,
	}, nil
}

func deriveKey(secret, info string, size int) ([]byte, error) {
	key := make([]byte, size)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Wrap(err, "derive session key")
	}
	return key, nil
}

// Save replaces the session's token bundle.
func (m *SessionManager) Save(w http.ResponseWriter, r *http.Request, bundle *strava.TokenBundle) error {
	// A stale or tampered cookie yields a fresh session alongside the error.
	sess, _ := m.store.Get(r, cookieName)
	sess.Values[userKey] = *bundle
	if err := sess.Save(r, w); err != nil {
		return errors.Wrap(err, "save session")
	}
	return nil
}

// Stored returns the token bundle held by the session, expired or not.
func (m *SessionManager) Stored(r *http.Request) *strava.TokenBundle {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		m.log.WithError(err).Debug("ignoring unreadable session cookie")
		return nil
	}
	bundle, ok := sess.Values[userKey].(strava.TokenBundle)
	if !ok {
		return nil
	}
	return &bundle
}

// CurrentUser returns the session's token bundle if it has not expired.
func (m *SessionManager) CurrentUser(r *http.Request) *strava.TokenBundle {
	return ResolveUser(m.Stored(r), m.now())
}

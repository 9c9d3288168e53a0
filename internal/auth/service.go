package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jw6ventures/stravaview/internal/config"
	httperrors "github.com/jw6ventures/stravaview/internal/http/errors"
	"github.com/jw6ventures/stravaview/internal/strava"
)

// CallbackPath is where Strava sends the user back after authorization.
const CallbackPath = "/strava_redirect"

// TokenExchanger is the part of the Strava client the OAuth flow needs.
type TokenExchanger interface {
	AuthCodeURL(redirectURI string) string
	Exchange(ctx context.Context, code string) (*strava.TokenBundle, error)
}

// Service runs the Strava OAuth flow and resolves the signed-in athlete.
type Service struct {
	cfg      *config.Config
	strava   TokenExchanger
	sessions *SessionManager
	log      logrus.FieldLogger
}

func NewService(cfg *config.Config, exchanger TokenExchanger, sessions *SessionManager, log logrus.FieldLogger) *Service {
	return &Service{cfg: cfg, strava: exchanger, sessions: sessions, log: log}
}

// BeginOAuth redirects the browser to Strava's authorization page.
func (s *Service) BeginOAuth(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.strava.AuthCodeURL(s.redirectURI(r)), http.StatusTemporaryRedirect)
}

// HandleOAuthCallback exchanges the authorization code and stores the token in the session.
func (s *Service) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		httperrors.BadRequestError(w, r, s.log, strava.ErrMissingCode, "Error: Missing code param")
		return
	}

	bundle, err := s.strava.Exchange(r.Context(), code)
	if err != nil {
		httperrors.UpstreamError(w, r, s.log, err, "strava token exchange failed")
		return
	}

	if err := s.sessions.Save(w, r, bundle); err != nil {
		httperrors.InternalError(w, r, s.log, err, "failed to store session")
		return
	}

	httperrors.LogInfo(r, s.log.WithFields(logrus.Fields{
		"athlete_id": bundle.Athlete.ID,
		"athlete":    bundle.Athlete.FullName(),
	}), "authorized athlete")
	http.Redirect(w, r, "/activities", http.StatusTemporaryRedirect)
}

// LoadUser puts the unexpired session user, if any, into the request context.
func (s *Service) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := s.sessions.CurrentUser(r); user != nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) redirectURI(r *http.Request) string {
	if s.cfg.BaseURL != "" {
		return s.cfg.BaseURL + CallbackPath
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + CallbackPath
}

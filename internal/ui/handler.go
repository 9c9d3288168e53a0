package ui

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/jw6ventures/stravaview/internal/activity"
	"github.com/jw6ventures/stravaview/internal/auth"
	"github.com/jw6ventures/stravaview/internal/cache"
	httperrors "github.com/jw6ventures/stravaview/internal/http/errors"
	"github.com/jw6ventures/stravaview/internal/strava"
)

// ActivityFetcher lists an athlete's recent activities.
type ActivityFetcher interface {
	Activities(ctx context.Context, accessToken string) ([]strava.RawActivity, error)
}

// Handler serves server-rendered HTML pages.
type Handler struct {
	fetcher   ActivityFetcher
	cache     *cache.ActivityCache
	log       logrus.FieldLogger
	templates templateSet
}

func NewHandler(fetcher ActivityFetcher, activityCache *cache.ActivityCache, log logrus.FieldLogger) *Handler {
	return &Handler{fetcher: fetcher, cache: activityCache, log: log, templates: templates}
}

// Index sends signed-in athletes to their activities and everyone else to the login page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.UserFromContext(r.Context()); ok {
		h.log.WithField("athlete_id", user.Athlete.ID).Debug("found authorized athlete")
		http.Redirect(w, r, "/activities", http.StatusTemporaryRedirect)
		return
	}
	http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserFromContext(r.Context()); ok {
		http.Redirect(w, r, "/activities", http.StatusTemporaryRedirect)
		return
	}
	h.render(w, r, "login.html", map[string]any{
		"Title": "Log in",
	})
}

// Activities fetches the latest activities from Strava, caches them and renders the list
// with the newest one opened.
func (h *Handler) Activities(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
		return
	}

	raws, err := h.fetcher.Activities(r.Context(), user.AccessToken)
	if err != nil {
		httperrors.UpstreamError(w, r, h.log, err, "failed to fetch strava activities")
		return
	}

	views := activity.BuildAll(raws)
	h.cache.Put(user.Athlete.ID, views)

	var selected *activity.View
	if len(views) > 0 {
		selected = &views[0]
	}

	h.render(w, r, "activities.html", map[string]any{
		"Title":      "Activities",
		"Athlete":    user.Athlete,
		"Activities": views,
		"Activity":   selected,
	})
}

// Activity renders one cached activity as an HTMX fragment.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// The list page is stale; make HTMX reload it so the login redirect happens.
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusOK)
		return
	}

	idParam := chi.URLParam(r, "activity_id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		httperrors.BadRequestError(w, r, h.log, err, "invalid activity id")
		return
	}

	view, res := h.cache.Find(user.Athlete.ID, id)
	if res != cache.Found {
		msg := fmt.Sprintf("Activity Id %d not found.", id)
		httperrors.BadRequestError(w, r, h.log, fmt.Errorf("cache lookup for athlete %d: %s", user.Athlete.ID, describe(res)), msg)
		return
	}

	h.renderPartial(w, r, "activity", view)
}

func describe(res cache.FindResult) string {
	switch res {
	case cache.NoEntry:
		return "no cached activities"
	case cache.NoActivity:
		return "activity not in cached list"
	}
	return "found"
}

// render executes the page inside the base layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, ok := h.templates.pages[name]
	if !ok {
		httperrors.InternalError(w, r, h.log, fmt.Errorf("template not found"), fmt.Sprintf("template %q not found", name))
		return
	}
	h.execute(w, r, tmpl, baseTemplate, data)
}

func (h *Handler) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.execute(w, r, h.templates.partials, name, data)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, tmpl *template.Template, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		httperrors.InternalError(w, r, h.log, err, fmt.Sprintf("template render error for %q", name))
	}
}

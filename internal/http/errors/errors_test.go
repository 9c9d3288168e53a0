package errors

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	tests := []struct {
		name       string
		call       func(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger)
		wantStatus int
		wantBody   string
		wantLevel  logrus.Level
	}{
		{
			name: "internal",
			call: func(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger) {
				InternalError(w, r, log, errors.New("boom"), "render failed")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
			wantLevel:  logrus.ErrorLevel,
		},
		{
			name: "upstream",
			call: func(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger) {
				UpstreamError(w, r, log, errors.New("401"), "fetch failed")
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   "upstream service error",
			wantLevel:  logrus.ErrorLevel,
		},
		{
			name: "bad request",
			call: func(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger) {
				BadRequestError(w, r, log, errors.New("no code"), "Error: Missing code param")
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Error: Missing code param",
			wantLevel:  logrus.WarnLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			req := httptest.NewRequest(http.MethodGet, "/strava_redirect", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-1"))
			w := httptest.NewRecorder()

			tc.call(w, req, log)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantBody)
			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tc.wantLevel, entry.Level)
			assert.Equal(t, "req-1", entry.Data["request_id"])
			assert.Equal(t, "/strava_redirect", entry.Data["path"])
		})
	}
}

func TestLogInfo(t *testing.T) {
	log, hook := test.NewNullLogger()
	req := httptest.NewRequest(http.MethodGet, "/strava_redirect", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-2"))

	LogInfo(req, log.WithField("athlete_id", int64(42)), "authorized athlete")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "authorized athlete", entry.Message)
	assert.Equal(t, "req-2", entry.Data["request_id"])
	assert.Equal(t, int64(42), entry.Data["athlete_id"])
}

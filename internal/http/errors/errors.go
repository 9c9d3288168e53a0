package errors

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func withRequest(log logrus.FieldLogger, r *http.Request) logrus.FieldLogger {
	entry := log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path})
	if requestID := middleware.GetReqID(r.Context()); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	return entry
}

// InternalError logs err and answers with a generic 500.
func InternalError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error, message string) {
	withRequest(log, r).WithError(err).Error(message)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// UpstreamError logs a failed Strava call and answers with 502.
func UpstreamError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error, message string) {
	withRequest(log, r).WithError(err).Error(message)
	http.Error(w, "upstream service error", http.StatusBadGateway)
}

// BadRequestError logs at warn level and sends clientMessage with a 400.
func BadRequestError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error, clientMessage string) {
	withRequest(log, r).WithError(err).Warn("bad request")
	http.Error(w, clientMessage, http.StatusBadRequest)
}

// LogInfo logs message tagged with the request's method, path and id.
func LogInfo(r *http.Request, log logrus.FieldLogger, message string) {
	withRequest(log, r).Info(message)
}

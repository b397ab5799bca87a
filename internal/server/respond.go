package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/observability"
	"github.com/MASHUOA/MetaboAnalystR/pkg/session"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	// Recoverable is set when the session is still usable after the error.
	Recoverable bool `json:"recoverable"`
}

// statusOf maps an error code onto an HTTP status.
func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeEmpty, errors.ErrCodeTooSmall:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTable, errors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if stderrors.Is(err, session.ErrNotFound) || stderrors.Is(err, session.ErrExpired) {
		err = errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %s not found", chi.URLParam(r, "id"))
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusOf(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
		msg = "internal error"
	}
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), string(code))
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg, Recoverable: errors.IsRecoverable(err)})
}

// validName rejects malformed subnetwork names before any session lookup.
func (s *Server) validName(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := errors.ValidateSubnetworkName(chi.URLParam(r, "name")); err != nil {
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// decode reads a JSON body bounded by MaxBodyBytes. An empty body leaves v
// untouched.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	return nil
}

// observe reports every response to the HTTP hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, routePattern(r), ww.Status(), time.Since(start))
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

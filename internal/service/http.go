package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const maxRequestBody = 1 << 20

const HEADER_REQUEST_ID = "X-Request-Id"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

var errEmptyBody = errors.New("request body is required")

func decodeBody(w http.ResponseWriter, r *http.Request, target any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	err := decoder.Decode(target)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	if err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}

type requestIDKey struct{}

// RequestID returns the id assigned to the request by the service middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s Service) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HEADER_REQUEST_ID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HEADER_REQUEST_ID, id)
		s.tel.ReportDebug("request", r.Method, r.URL.Path, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s Service) allowedOrigin(origin string) string {
	if slices.Contains(s.origins, "*") {
		return "*"
	}
	for _, allowed := range s.origins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

func (s Service) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("origin")
		if origin != "" {
			allowed := s.allowedOrigin(origin)
			if allowed != "" {
				w.Header().Set("access-control-allow-origin", allowed)
				w.Header().Set("access-control-allow-methods", "GET, POST, OPTIONS")
				w.Header().Set("access-control-allow-headers", "content-type, authorization, x-request-id")
				w.Header().Add("vary", "origin")
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRecovery turns a handler panic into a 500, http.ErrAbortHandler is
// re-raised so net/http aborts the response.
func (s Service) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}
			err := fmt.Errorf("%v", recovered)
			s.tel.ReportBroken(report_request_panic, err, r.URL.Path, RequestID(r.Context()))
			writeError(w, http.StatusInternalServerError, err)
		}()
		next.ServeHTTP(w, r)
	})
}

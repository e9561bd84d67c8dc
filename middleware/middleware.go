// Package middleware binds HTTP form posts and query strings to typed values
// through a flatmap mapping.
package middleware

import (
	"context"
	"net/http"

	j "github.com/goccy/go-json"

	"github.com/reoring/flatmap"
	"github.com/reoring/flatmap/source"
)

// ctxKeyBound is a typed context key for storing a bound T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyBound[T any] struct{}

// ContextWithValue attaches a bound value to the context.
func ContextWithValue[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyBound[T]{}, v)
}

// ValueFromContext retrieves the value bound by Form.
func ValueFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyBound[T]{}).(T)
	return v, ok
}

// ErrorHandler writes the response for a request that could not be bound.
// err is nil when the mapping produced nothing.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures Form.
type Option func(*config)

type config struct {
	onError  ErrorHandler
	optional bool
}

// WithErrorHandler replaces the default JSON error response.
func WithErrorHandler(h ErrorHandler) Option { return func(c *config) { c.onError = h } }

// Optional lets requests through when the mapping produced nothing; the
// handler then finds no value in the context.
func Optional() Option { return func(c *config) { c.optional = true } }

// Form parses the request's query string and form body, deserializes them
// through m and stores the result for ValueFromContext. Requests that fail to
// bind are answered by the error handler and never reach next.
func Form[T any](m flatmap.Mapping[T], opts ...Option) func(http.Handler) http.Handler {
	cfg := config{onError: DefaultErrorHandler}
	for _, o := range opts {
		o(&cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				cfg.onError(w, r, flatmap.Issues{{Code: flatmap.CodeParseError, Hint: "malformed form body", Cause: err}})
				return
			}
			v, ok, err := flatmap.Deserialize(r.Context(), m, source.URLValues(r.Form))
			switch {
			case err != nil:
				cfg.onError(w, r, err)
				return
			case !ok && !cfg.optional:
				cfg.onError(w, r, nil)
				return
			case ok:
				r = r.WithContext(ContextWithValue(r.Context(), v))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DefaultErrorHandler answers 422 with ErrorPayload, or 500 when the mapping
// itself is broken.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusUnprocessableEntity
	var issues []flatmap.Issue
	if err != nil {
		iss, ok := flatmap.AsIssues(err)
		if ok {
			issues = iss
		} else {
			issues = []flatmap.Issue{{Code: flatmap.CodeInvalidOperation, Message: err.Error()}}
		}
		// broken trees and foreign errors map to 500
		if !ok || flatmap.HasCode(err, flatmap.CodeInvalidMapping) || flatmap.HasCode(err, flatmap.CodeInvalidOperation) {
			status = http.StatusInternalServerError
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = j.NewEncoder(w).Encode(ErrorPayload(issues))
}

// IssueJSON is the wire form of one Issue.
type IssueJSON struct {
	Key     string `json:"key,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues []flatmap.Issue) map[string]any {
	out := make([]IssueJSON, 0, len(issues))
	for _, it := range issues {
		out = append(out, IssueJSON{Key: it.Key, Code: it.Code, Message: it.Message, Hint: it.Hint})
	}
	return map[string]any{"issues": out}
}

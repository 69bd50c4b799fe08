package http

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestVerifier authenticates a request.
type RequestVerifier interface {
	Verify(r *http.Request) error
}

// TokenVerifier accepts requests carrying one of a fixed set of bearer tokens.
type TokenVerifier struct {
	tokens [][]byte
}

// NewTokenVerifier returns a verifier accepting any of tokens.
func NewTokenVerifier(tokens []string) *TokenVerifier {
	v := &TokenVerifier{tokens: make([][]byte, 0, len(tokens))}
	for _, t := range tokens {
		if t != "" {
			v.tokens = append(v.tokens, []byte(t))
		}
	}
	return v
}

// Verify checks the Authorization header against the configured tokens.
func (v *TokenVerifier) Verify(r *http.Request) error {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	// Compare against every token so timing does not reveal which one matched.
	matched := 0
	for _, t := range v.tokens {
		matched |= subtle.ConstantTimeCompare([]byte(token), t)
	}
	if matched != 1 {
		return fmt.Errorf("%w: invalid bearer token", ErrUnauthorized)
	}
	return nil
}

// AuthMiddleware creates middleware that rejects requests the verifier refuses.
// Pass nil to disable authentication (public access).
func AuthMiddleware(verifier RequestVerifier) func(http.Handler) http.Handler {
	if verifier == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := verifier.Verify(r); err != nil {
				HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs every request at debug level once it completes.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey struct{}

const headerName = "X-Session-ID"

// Middleware resolves the client session from the X-Session-ID header,
// minting a fresh id when the client sends none, and echoes it back so the
// client can carry it forward. The session id is the unit of state scoping:
// one id maps to one cart, one address book, one auth profile.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerName)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(headerName, id)
		ctx := context.WithValue(r.Context(), contextKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the session id set by Middleware, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

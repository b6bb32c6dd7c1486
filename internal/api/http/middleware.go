package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/adarsh-sng/JustRentIt/internal/domain"
	"github.com/adarsh-sng/JustRentIt/internal/security"
)

type contextKey string

const callerIDKey contextKey = "caller_id"

// AuthMiddleware validates the bearer token and injects the caller's user
// id into the request context.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errorBody{Kind: "unauthorized", Message: "missing bearer token"}})
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: errorBody{Kind: "unauthorized", Message: "invalid or expired token"}})
			return
		}

		ctx := context.WithValue(r.Context(), callerIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerID returns the authenticated user id stored by AuthMiddleware.
func callerID(r *http.Request) (int32, error) {
	id, ok := r.Context().Value(callerIDKey).(int32)
	if !ok {
		return 0, domain.NewError(domain.ErrForbidden, "no authenticated caller")
	}
	return id, nil
}

// pageParams parses offset pagination query parameters with defaults.
func pageParams(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}

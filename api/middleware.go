package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/julianramos/wardrobe-api/utils"
)

type contextKey string

const userIDKey contextKey = "user_id"

// AuthMiddleware verifies the bearer token and puts the user id into
// the request context. A missing token is 401, an invalid one 403.
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(w, nil, "Access token required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			utils.RespondError(w, nil, "Invalid token", http.StatusForbidden)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.RespondError(w, nil, "Invalid token", http.StatusForbidden)
			return
		}
		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			utils.RespondError(w, nil, "Invalid token", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

// GetUserIDFromContext returns the authenticated user's id hex string
func GetUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}

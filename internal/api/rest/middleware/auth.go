package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/propertyops/maintenance-console/pkg/auth"
	"github.com/propertyops/maintenance-console/pkg/logger"
	"go.uber.org/zap"
)

// JWTAuth is a middleware that validates JWT tokens and puts the calling
// manager's identity on the request context
func JWTAuth(jwtManager *auth.JWTManager, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "Missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := jwtManager.ValidateAccessToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				respondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), "claims", claims)
			ctx = context.WithValue(ctx, "manager_id", claims.ManagerID)
			ctx = context.WithValue(ctx, "manager_name", claims.Name)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// respondError sends an error response with proper JSON encoding
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	json.NewEncoder(w).Encode(response)
}

// GetManagerID extracts the authenticated manager's ID from request context
// Returns uuid.Nil if not found
func GetManagerID(ctx context.Context) uuid.UUID {
	if managerID, ok := ctx.Value("manager_id").(uuid.UUID); ok {
		return managerID
	}
	return uuid.Nil
}

// GetClaims extracts JWT claims from request context
func GetClaims(ctx context.Context) *auth.JWTClaims {
	if claims, ok := ctx.Value("claims").(*auth.JWTClaims); ok {
		return claims
	}
	return nil
}

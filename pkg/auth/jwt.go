package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenDuration is the lifetime of tokens minted by this service.
// Tokens issued by the identity provider carry their own expiry.
const AccessTokenDuration = 15 * time.Minute

// JWTManager handles JWT token operations
type JWTManager struct {
	secretKey      []byte
	accessTokenTTL time.Duration
}

// JWTClaims represents the claims in a console access token
type JWTClaims struct {
	ManagerID uuid.UUID `json:"manager_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	jwt.RegisteredClaims
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secretKey string) *JWTManager {
	return &JWTManager{
		secretKey:      []byte(secretKey),
		accessTokenTTL: AccessTokenDuration,
	}
}

// GenerateAccessToken generates a new JWT access token
func (m *JWTManager) GenerateAccessToken(managerID uuid.UUID, name, email string, roles []string) (string, error) {
	now := time.Now()

	claims := &JWTClaims{
		ManagerID: managerID,
		Name:      name,
		Email:     email,
		Roles:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "maintenance-console",
			Subject:   managerID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateAccessToken validates and parses a JWT access token
func (m *JWTManager) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.ManagerID == uuid.Nil {
		return nil, fmt.Errorf("token missing manager identity")
	}

	return claims, nil
}

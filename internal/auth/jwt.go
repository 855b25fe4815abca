package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims holds the custom JWT claims for all account roles.
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"` // client, professional, admin
	Email string `json:"email,omitempty"`
}

// JWTManager handles token generation and validation with role-specific expiry.
type JWTManager struct {
	secret             []byte
	clientExpiry       time.Duration
	professionalExpiry time.Duration
	adminExpiry        time.Duration
}

// NewJWTManager creates a JWT manager with role-specific expiry durations.
func NewJWTManager(secret string, clientExpiry, professionalExpiry, adminExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		clientExpiry:       clientExpiry,
		professionalExpiry: professionalExpiry,
		adminExpiry:        adminExpiry,
	}
}

// GenerateToken creates a signed JWT for the given role and subject.
func (m *JWTManager) GenerateToken(role string, subjectID uuid.UUID, email string) (string, error) {
	var expiry time.Duration
	switch role {
	case RoleClient:
		expiry = m.clientExpiry
	case RoleProfessional:
		expiry = m.professionalExpiry
	case RoleAdmin:
		expiry = m.adminExpiry
	default:
		return "", fmt.Errorf("unknown role: %s", role)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			ID:        uuid.New().String(),
		},
		Role:  role,
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a JWT, returning claims if valid.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

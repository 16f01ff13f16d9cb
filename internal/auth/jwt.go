package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/productforge/backend/internal/config"
	"github.com/productforge/backend/internal/utils"
)

// JWT errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrMissingSubject       = errors.New("token has no subject")
)

// Claims are the claims read from tokens issued by the external auth provider.
// Only the subject is required; it identifies the history owner.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService verifies HS256 tokens signed with the shared project secret.
type JWTService struct {
	Config *config.JWTSettings
}

// NewJWTService creates a new JWTService instance
func NewJWTService(cfg *config.JWTSettings) *JWTService {
	return &JWTService{
		Config: cfg,
	}
}

// Enabled reports whether a secret is configured. Without one every
// request is treated as anonymous.
func (s *JWTService) Enabled() bool {
	return s.Config != nil && s.Config.Secret != ""
}

// ValidateToken verifies a token and returns its claims.
//
// Parameters:
//   - tokenString: The raw token without the Bearer prefix
//
// Returns:
//   - The verified claims
//   - An expired-token error, or an invalid-token error for any other failure
//     (bad signature, wrong algorithm, wrong issuer, missing subject)
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if !s.Enabled() {
		return nil, utils.NewInvalidTokenError()
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(s.Config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	if s.Config.Issuer != "" && !claims.VerifyIssuer(s.Config.Issuer, true) {
		return nil, utils.NewInvalidTokenError()
	}

	if claims.Subject == "" {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}

// GenerateToken signs a token for subject. The service never issues tokens to
// clients; this exists for local development and tests.
func (s *JWTService) GenerateToken(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Config.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.Config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

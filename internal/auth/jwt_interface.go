package auth

// JWTValidator defines the interface for JWT validation
type JWTValidator interface {
	// Enabled reports whether tokens can be verified at all
	Enabled() bool

	// ValidateToken validates a JWT token and returns its claims if valid
	ValidateToken(tokenString string) (*Claims, error)
}

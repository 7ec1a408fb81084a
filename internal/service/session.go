package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/whamhub/backend/internal/types"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// sessionClaims mirrors the auth provider's access token payload.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

// SessionService resolves the caller's identity from credentials already
// attached to the request. It only verifies tokens the auth provider
// minted; it never creates sessions of its own.
type SessionService struct {
	jwtSecret string
}

// NewSessionService creates a new SessionService instance
func NewSessionService(jwtSecret string) *SessionService {
	return &SessionService{jwtSecret: jwtSecret}
}

// VerifyToken validates an access token and extracts the identity.
// Invalid or expired tokens return ErrInvalidToken/ErrTokenExpired so
// the boundary can answer 401; any other error means the accessor itself
// failed and maps to 500.
func (s *SessionService) VerifyToken(tokenString string) (*types.Identity, error) {
	if s.jwtSecret == "" {
		return nil, errors.New("session verifier is not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("read token subject: %w", err)
	}
	id, err := uuid.Parse(subject)
	if err != nil {
		// A well-signed token with a malformed subject is a provider
		// problem, not a credentials problem.
		return nil, fmt.Errorf("parse token subject %q: %w", subject, err)
	}

	identity := &types.Identity{
		ID:    id,
		Email: claims.Email,
	}
	if fullName, ok := claims.UserMetadata["full_name"].(string); ok {
		identity.FullName = fullName
	}
	return identity, nil
}

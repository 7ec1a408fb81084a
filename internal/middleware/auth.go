package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/whamhub/backend/internal/service"
	"github.com/whamhub/backend/internal/types"
)

// accessTokenCookie is where the auth provider's browser client keeps
// the session when no Authorization header is sent.
const accessTokenCookie = "sb-access-token"

const identityContextKey = "identity"

// TokenVerifier is an interface for resolving access tokens into identities
type TokenVerifier interface {
	VerifyToken(token string) (*types.Identity, error)
}

// AuthMiddleware creates a middleware that resolves the caller's session.
// Missing or rejected credentials answer 401 with a fixed message; a
// failure of the verifier itself answers 500 carrying its message.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		identity, err := verifier.VerifyToken(token)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			c.Abort()
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the identity stored by AuthMiddleware.
func IdentityFromContext(c *gin.Context) (*types.Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*types.Identity)
	return identity, ok
}

// tokenFromRequest reads the bearer token, falling back to the auth
// provider's session cookie.
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

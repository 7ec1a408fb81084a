package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whamhub/backend/internal/service"
	"github.com/whamhub/backend/internal/testhelpers"
	"github.com/whamhub/backend/internal/types"
)

func authTestRouter(verifier TokenVerifier) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)
	hits := 0
	router := gin.New()
	router.Use(AuthMiddleware(verifier))
	router.GET("/protected", func(c *gin.Context) {
		hits++
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": identity.ID.String()})
	})
	return router, &hits
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	verifier := new(testhelpers.MockTokenVerifier)
	router, hits := authTestRouter(verifier)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, *hits)
	verifier.AssertNotCalled(t, "VerifyToken")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	verifier := new(testhelpers.MockTokenVerifier)
	verifier.On("VerifyToken", "bad-token").Return(nil, service.ErrInvalidToken)
	router, hits := authTestRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
	assert.Equal(t, 0, *hits)
}

func TestAuthMiddlewareAccessorFailure(t *testing.T) {
	verifier := new(testhelpers.MockTokenVerifier)
	verifier.On("VerifyToken", "any-token").Return(nil, errors.New("verifier unreachable"))
	router, hits := authTestRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer any-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "verifier unreachable")
	assert.Equal(t, 0, *hits)
}

func TestAuthMiddlewareBearerToken(t *testing.T) {
	identity := &types.Identity{ID: uuid.New(), Email: "ann@example.com"}
	verifier := new(testhelpers.MockTokenVerifier)
	verifier.On("VerifyToken", "good-token").Return(identity, nil)
	router, hits := authTestRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), identity.ID.String())
	assert.Equal(t, 1, *hits)
}

func TestAuthMiddlewareCookieFallback(t *testing.T) {
	identity := &types.Identity{ID: uuid.New(), Email: "ann@example.com"}
	verifier := new(testhelpers.MockTokenVerifier)
	verifier.On("VerifyToken", "cookie-token").Return(identity, nil)
	router, hits := authTestRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "cookie-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *hits)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	verifier := new(testhelpers.MockTokenVerifier)
	router, hits := authTestRouter(verifier)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, *hits)
}

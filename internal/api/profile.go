package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whamhub/backend/internal/middleware"
	"github.com/whamhub/backend/internal/service"
	"github.com/whamhub/backend/internal/types"
)

// ProfileHandler exposes the profile service over HTTP. Every handler
// resolves the session first, delegates, and maps failures to status
// codes; nothing is allowed to crash a handler.
type ProfileHandler struct {
	profileService service.IProfileService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// RegisterRoutes registers the profile API routes
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)

		avatar := profile.Group("/avatar")
		if limiter != nil {
			avatar.Use(limiter.RateLimitMiddleware())
		}
		avatar.POST("", h.UploadAvatar)
	}
}

// GetProfile returns the caller's profile, creating it on first fetch.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profileService.FetchOrCreate(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile writes the fields present in the body. Omitted fields
// stay untouched, explicit nulls clear.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), identity, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UploadAvatar stores the multipart "file" field as the caller's avatar
// and returns the refreshed profile with a freshly signed URL.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer func() { _ = file.Close() }()

	profile, err := h.profileService.UploadAvatar(
		c.Request.Context(),
		identity,
		file,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Filename,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

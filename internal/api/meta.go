package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whamhub/backend/config"
	"github.com/whamhub/backend/internal/models"
)

// MetaHandler serves the public surfaces the frontend needs before any
// session exists: the auth client bootstrap values and the theme
// catalog shared by the profile card and the lookup widget accent.
type MetaHandler struct {
	cfg *config.Config
}

// NewMetaHandler creates a new MetaHandler instance
func NewMetaHandler(cfg *config.Config) *MetaHandler {
	return &MetaHandler{cfg: cfg}
}

// RegisterRoutes registers the public meta routes
func (h *MetaHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/config", h.GetConfig)
	router.GET("/themes", h.GetThemes)
}

// GetConfig returns the values the browser auth client is booted with.
// Only the publishable key ever leaves the server.
func (h *MetaHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"backendUrl":     h.cfg.BackendURL,
		"publishableKey": h.cfg.PublishableKey,
	})
}

// GetThemes returns the gradient theme catalog.
func (h *MetaHandler) GetThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"themes":  models.Themes,
		"default": models.DefaultThemeID,
	})
}

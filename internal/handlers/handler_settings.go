package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/famvault/famvault-backend/internal/core/ports/services"

	"github.com/famvault/famvault-backend/internal/dto"
	"github.com/famvault/famvault-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingsHandler handles HTTP requests for per-user currency settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

// newSettingsHandler creates a new settingsHandler.
func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// registerSettingsRoutes registers routes related to per-user currency settings.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	users := rg.Group("/users/:userID")
	{
		users.GET("/settings", h.getSettings)
		users.PUT("/settings", h.updateSettings)
	}
}

// authorizedUserID returns the path user id when it matches the
// authenticated caller, aborting the request otherwise. Settings are
// strictly per-user.
func authorizedUserID(c *gin.Context) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	callerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}

	pathUserID := c.Param("userID")
	if pathUserID != callerID {
		logger.Warn("User attempted to access another user's settings",
			slog.String("caller_id", callerID),
			slog.String("path_user_id", pathUserID))
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot access another user's settings"})
		return "", false
	}

	return pathUserID, true
}

// getSettings returns the user's currency settings. A user who has never
// saved settings gets a default-populated record, never an error.
func (h *settingsHandler) getSettings(c *gin.Context) {
	userID, ok := authorizedUserID(c)
	if !ok {
		return
	}

	settings := h.settingsService.LoadUserCurrencySettings(c.Request.Context(), userID)
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// updateSettings overwrites the user's currency settings wholesale.
func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := authorizedUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	saved, err := h.settingsService.SaveUserCurrencySettings(c.Request.Context(), req.ToUserCurrencySettings(userID))
	if err != nil {
		logger.Error("Failed to save currency settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(saved))
}

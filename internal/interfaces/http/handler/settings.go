package handler

import (
	"github.com/gin-gonic/gin"

	appsettings "github.com/invoicemgr/backend/internal/application/settings"
	"github.com/invoicemgr/backend/internal/domain/settings"
)

// SettingsHandler handles application settings endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *appsettings.Service
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *appsettings.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// SetSettingRequest sets a single setting value
type SetSettingRequest struct {
	Value string `json:"value" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=string integer decimal boolean"`
}

// List returns all settings
func (h *SettingsHandler) List(c *gin.Context) {
	items, err := h.settingsService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Get returns a single setting by key
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")

	setting, err := h.settingsService.Get(c.Request.Context(), key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, setting)
}

// Set creates or updates a setting. Admin only.
func (h *SettingsHandler) Set(c *gin.Context) {
	key := c.Param("key")

	var req SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	updatedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	setting, err := h.settingsService.Set(c.Request.Context(), key, req.Value, settings.SettingType(req.Type), updatedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, setting)
}

package handler

import (
	"fmt"
	"hydration/internal/application/dto"
	"hydration/internal/application/service"
	appErrors "hydration/internal/pkg/errors"
	"hydration/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SettingsHandler exposes the reminder settings over JSON.
type SettingsHandler struct {
	reminderService service.ReminderService
	log             logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(reminderService service.ReminderService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		reminderService: reminderService,
		log:             log,
	}
}

// GetSettings returns the preference and the scheduled reminder notifications.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	return h.respond(c, http.StatusOK)
}

// SetEnabled toggles reminders.
func (h *SettingsHandler) SetEnabled(c echo.Context) error {
	var req dto.SetEnabledRequest
	if err := c.Bind(&req); err != nil || req.Enabled == nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "enabled (bool) is required"})
	}
	if !h.reminderService.SetEnabled(c.Request().Context(), *req.Enabled) {
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: appErrors.ErrBackend.Error()})
	}
	return h.respond(c, http.StatusOK)
}

// SetInterval changes the reminder interval.
func (h *SettingsHandler) SetInterval(c echo.Context) error {
	var req dto.SetIntervalRequest
	if err := c.Bind(&req); err != nil || req.IntervalSeconds <= 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: appErrors.ErrInvalidInterval.Error()})
	}
	if !h.reminderService.SetInterval(c.Request().Context(), req.IntervalSeconds) {
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: appErrors.ErrBackend.Error()})
	}
	return h.respond(c, http.StatusOK)
}

// SendTest fires a test notification now.
func (h *SettingsHandler) SendTest(c echo.Context) error {
	if !h.reminderService.SendTestNow(c.Request().Context()) {
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: appErrors.ErrBackend.Error()})
	}
	return h.respond(c, http.StatusAccepted)
}

func (h *SettingsHandler) respond(c echo.Context, status int) error {
	tagged, err := h.reminderService.ListTagged(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to list hydration notifications for settings response", err)
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: fmt.Sprintf("%v", appErrors.ErrBackend)})
	}
	return c.JSON(status, dto.ToPreferenceResponse(h.reminderService.Preference(), tagged))
}

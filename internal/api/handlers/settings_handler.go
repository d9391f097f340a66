package handlers

import (
	"calmspace_service/internal/user/app"
	"calmspace_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SettingsHandler 處理使用者設定相關的 HTTP 請求
type SettingsHandler struct {
	UC *app.SettingsUseCase
}

// NewSettingsHandler 創建新的 SettingsHandler
func NewSettingsHandler(uc *app.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{
		UC: uc,
	}
}

// Get 查詢設定,查無資料時回預設值
// @Summary 查詢使用者設定
// @Tags Settings
// @Produce json
// @Param userId query string true "user id"
// @Success 200 {object} string "設定內容"
// @Failure 400 {object} string "缺少 userId"
// @Router /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing userId"})
	}

	settings, err := h.UC.Get(c.Context(), userID)
	if err != nil {
		logger.Log.Errorf("get settings failed:", err, zap.String("userId", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}

	return c.JSON(settings)
}

// Save upsert 設定
// @Summary 儲存使用者設定
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} string "儲存後設定"
// @Failure 400 {object} string "缺少 userId"
// @Router /api/settings [post]
func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	type request struct {
		UserID               string `json:"userId"`
		DisplayName          string `json:"displayName"`
		ReminderTime         string `json:"reminderTime"`
		DarkMode             bool   `json:"darkMode"`
		NotificationsEnabled *bool  `json:"notificationsEnabled"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing userId"})
	}

	settings, err := h.UC.Save(c.Context(), app.SaveSettingsRequest{
		UserID:               req.UserID,
		DisplayName:          req.DisplayName,
		ReminderTime:         req.ReminderTime,
		DarkMode:             req.DarkMode,
		NotificationsEnabled: req.NotificationsEnabled,
	})
	if err != nil {
		logger.Log.Errorf("save settings failed:", err, zap.String("userId", req.UserID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save settings"})
	}

	return c.JSON(fiber.Map{
		"message":  "Settings saved",
		"settings": settings,
	})
}

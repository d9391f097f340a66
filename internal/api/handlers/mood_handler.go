package handlers

import (
	"calmspace_service/internal/mood/app"
	"calmspace_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MoodHandler 處理 mood entry 相關的 HTTP 請求
type MoodHandler struct {
	UC *app.MoodUseCase
}

// NewMoodHandler 創建新的 MoodHandler
func NewMoodHandler(uc *app.MoodUseCase) *MoodHandler {
	return &MoodHandler{
		UC: uc,
	}
}

// CreateEntry 建立 mood entry 並 fan-out 通知
// @Summary 建立 mood entry
// @Description 持久化一筆心情紀錄並廣播給所有連線的訂閱者
// @Tags Moods
// @Accept json
// @Produce json
// @Success 201 {object} string "建立成功"
// @Failure 400 {object} string "缺少必填欄位"
// @Failure 500 {object} string "伺服器錯誤"
// @Router /api/mood [post]
func (h *MoodHandler) CreateEntry(c *fiber.Ctx) error {
	type request struct {
		Mood      string `json:"mood"`
		UserID    string `json:"userId"`
		Timestamp string `json:"timestamp"`
		Note      string `json:"note"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if req.Mood == "" || req.UserID == "" || req.Timestamp == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	logger.Log.Debug("CreateEntry", zap.String("userId", req.UserID), zap.String("mood", req.Mood))

	entry, err := h.UC.CreateEntry(c.Context(), req.Mood, req.UserID, req.Timestamp, req.Note)
	if err != nil {
		logger.Log.Errorf("create mood entry failed:", err, zap.String("userId", req.UserID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Mood entry created",
		"entry":   entry,
	})
}

// History 查詢歷史紀錄
// @Summary 查詢 mood 歷史
// @Description 依時間倒序分頁,可用 date 過濾
// @Tags Moods
// @Produce json
// @Param userId query string true "user id"
// @Param date query string false "YYYY-MM-DD"
// @Param limit query int false "page size, default 50"
// @Param offset query int false "page offset"
// @Success 200 {object} string "歷史紀錄"
// @Failure 400 {object} string "缺少 userId"
// @Router /api/mood/history [get]
func (h *MoodHandler) History(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing userId parameter"})
	}

	date := c.Query("date")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	page, err := h.UC.History(c.Context(), userID, date, limit, offset)
	if err != nil {
		logger.Log.Errorf("fetch mood history failed:", err, zap.String("userId", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mood history"})
	}

	return c.JSON(page)
}

// Stats 查詢統計
// @Summary 查詢 mood 統計
// @Description daysTracked / mostCommonMood / positiveDaysPercentage
// @Tags Moods
// @Produce json
// @Param userId query string true "user id"
// @Success 200 {object} string "統計結果"
// @Failure 400 {object} string "缺少 userId"
// @Router /api/mood/stats [get]
func (h *MoodHandler) Stats(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing userId"})
	}

	stats, err := h.UC.Stats(c.Context(), userID)
	if err != nil {
		logger.Log.Errorf("fetch mood stats failed:", err, zap.String("userId", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mood stats"})
	}

	return c.JSON(stats)
}

// DeleteAll 刪除該用戶全部紀錄
// @Summary 刪除全部 mood 紀錄
// @Tags Moods
// @Accept json
// @Produce json
// @Success 200 {object} string "刪除筆數"
// @Failure 400 {object} string "缺少 userId"
// @Router /api/mood/delete-all [post]
func (h *MoodHandler) DeleteAll(c *fiber.Ctx) error {
	type request struct {
		UserID string `json:"userId"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing userId"})
	}

	deleted, err := h.UC.DeleteAll(c.Context(), req.UserID)
	if err != nil {
		logger.Log.Errorf("delete mood entries failed:", err, zap.String("userId", req.UserID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete mood entries"})
	}

	return c.JSON(fiber.Map{
		"message":      "Successfully deleted mood entries",
		"deletedCount": deleted,
	})
}

package handlers

import (
	"errors"

	"calmspace_service/internal/goal/app"
	"calmspace_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GoalHandler 處理 mood goal 相關的 HTTP 請求
type GoalHandler struct {
	UC *app.GoalUseCase
}

// NewGoalHandler 創建新的 GoalHandler
func NewGoalHandler(uc *app.GoalUseCase) *GoalHandler {
	return &GoalHandler{
		UC: uc,
	}
}

// Create 建立目標
// @Summary 建立 mood goal
// @Tags Goals
// @Accept json
// @Produce json
// @Success 201 {object} string "建立成功"
// @Failure 400 {object} string "缺少必填欄位"
// @Router /api/goals [post]
func (h *GoalHandler) Create(c *fiber.Ctx) error {
	type request struct {
		UserID   string `json:"userId"`
		GoalName string `json:"goalName"`
		Target   int    `json:"target"`
		Progress int    `json:"progress"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.UserID == "" || req.GoalName == "" || req.Target <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: userId, goalName, target"})
	}

	goal, err := h.UC.Create(c.Context(), req.UserID, req.GoalName, req.Target, req.Progress)
	if err != nil {
		logger.Log.Errorf("create goal failed:", err, zap.String("userId", req.UserID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create goal"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Goal created",
		"goal":    goal.View(),
	})
}

// List 查詢目標清單
// @Summary 查詢 mood goals
// @Tags Goals
// @Produce json
// @Param userId query string true "user id"
// @Success 200 {object} string "目標清單"
// @Failure 400 {object} string "缺少 userId"
// @Router /api/goals [get]
func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing userId"})
	}

	goals, err := h.UC.List(c.Context(), userID)
	if err != nil {
		logger.Log.Errorf("list goals failed:", err, zap.String("userId", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch goals"})
	}

	return c.JSON(fiber.Map{"goals": goals})
}

// UpdateProgress 更新目標進度
// @Summary 更新 goal 進度
// @Tags Goals
// @Accept json
// @Produce json
// @Success 200 {object} string "更新後目標"
// @Failure 403 {object} string "非目標擁有者"
// @Failure 404 {object} string "目標不存在"
// @Router /api/goals [put]
func (h *GoalHandler) UpdateProgress(c *fiber.Ctx) error {
	type request struct {
		GoalID   string `json:"goalId"`
		UserID   string `json:"userId"`
		Progress int    `json:"progress"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}
	if req.GoalID == "" || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: goalId, userId"})
	}

	goal, err := h.UC.UpdateProgress(c.Context(), req.GoalID, req.UserID, req.Progress)
	if err != nil {
		return goalError(c, err, req.GoalID)
	}

	return c.JSON(fiber.Map{
		"message": "Goal updated",
		"goal":    goal.View(),
	})
}

// Delete 刪除目標
// @Summary 刪除 mood goal
// @Tags Goals
// @Produce json
// @Param goalId query string true "goal id"
// @Param userId query string true "user id"
// @Success 200 {object} string "刪除成功"
// @Failure 403 {object} string "非目標擁有者"
// @Failure 404 {object} string "目標不存在"
// @Router /api/goals [delete]
func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	goalID := c.Query("goalId")
	userID := c.Query("userId")
	if goalID == "" || userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: goalId, userId"})
	}

	if err := h.UC.Delete(c.Context(), goalID, userID); err != nil {
		return goalError(c, err, goalID)
	}

	return c.JSON(fiber.Map{"message": "Goal deleted"})
}

// goalError map use case errors onto HTTP statuses
func goalError(c *fiber.Ctx, err error, goalID string) error {
	switch {
	case errors.Is(err, app.ErrGoalNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, app.ErrNotGoalOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Log.Errorf("goal operation failed:", err, zap.String("goalId", goalID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update goal"})
	}
}

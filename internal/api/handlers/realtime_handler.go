package handlers

import (
	"errors"

	"calmspace_service/internal/realtime/app"
	"calmspace_service/internal/realtime/domain"
	"calmspace_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RealtimeHandler 處理 broadcast / negotiate 相關的 HTTP 請求
type RealtimeHandler struct {
	UC *app.BroadcastUseCase
	// WSURL 交給客戶端連線用的 websocket url
	WSURL string
}

// NewRealtimeHandler 創建新的 RealtimeHandler
func NewRealtimeHandler(uc *app.BroadcastUseCase, wsURL string) *RealtimeHandler {
	return &RealtimeHandler{
		UC:    uc,
		WSURL: wsURL,
	}
}

// Broadcast 將一則訊息發到全域 fan-out
// @Summary 廣播訊息
// @Description 依 type 映射成對應的 target 後發佈給所有訂閱者
// @Tags Realtime
// @Accept json
// @Produce json
// @Success 200 {object} string "已送出"
// @Failure 400 {object} string "缺少欄位或 type 不合法"
// @Failure 500 {object} string "發佈失敗"
// @Router /api/broadcast [post]
func (h *RealtimeHandler) Broadcast(c *fiber.Ctx) error {
	type request struct {
		UserID string      `json:"userId"`
		Type   string      `json:"type"`
		Data   interface{} `json:"data"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: userId, type, data"})
	}
	if req.UserID == "" || req.Type == "" || emptyData(req.Data) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields: userId, type, data"})
	}

	if err := h.UC.Execute(req.Type, req.Data); err != nil {
		if errors.Is(err, app.ErrInvalidMessageType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message type"})
		}
		logger.Log.Errorf("broadcast failed:", err, zap.String("type", req.Type))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send broadcast"})
	}

	return c.JSON(fiber.Map{"message": "Broadcast sent successfully"})
}

// emptyData data 為 null、false、0、空字串時視同缺欄位
func emptyData(v interface{}) bool {
	switch d := v.(type) {
	case nil:
		return true
	case bool:
		return !d
	case float64:
		return d == 0
	case string:
		return d == ""
	}
	return false
}

// Negotiate 回傳 websocket 連線資訊
// @Summary 連線協商
// @Description 客戶端先呼叫這裡拿 url,再開 websocket
// @Tags Realtime
// @Produce json
// @Success 200 {object} string "連線資訊"
// @Router /api/negotiate [post]
func (h *RealtimeHandler) Negotiate(c *fiber.Ctx) error {
	return c.JSON(domain.NegotiateInfo{URL: h.WSURL})
}

package app

import (
	"context"
	"encoding/json"
	"sync"

	"calmspace_service/internal/realtime/domain"
	"calmspace_service/internal/realtime/repository"
	"calmspace_service/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Conn 連線的最小寫入介面 (websocket.Conn 滿足此介面)
type Conn interface {
	WriteMessage(messageType int, data []byte) error
}

// Hub 維護目前連上的訂閱者,把 fan-out channel 的訊息寫給所有人
// 不做任何 per-user 過濾
type Hub struct {
	mu    sync.Mutex
	conns map[Conn]struct{}
}

// NewHub create Hub
func NewHub() *Hub {
	return &Hub{
		conns: map[Conn]struct{}{},
	}
}

// Run 訂閱 broadcast channel,收到的每則訊息轉發給全部連線
func (h *Hub) Run(ctx context.Context, pubsub *repository.RedisPubSub, channel string) error {
	return pubsub.Subscribe(ctx, channel, h.Broadcast)
}

// Register add a live connection
func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

// Unregister remove a connection
func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// Broadcast 寫給所有連線,寫失敗的連線直接剔除
func (h *Hub) Broadcast(msg domain.BroadcastMessage) {
	b, err := json.Marshal(msg)
	if err != nil {
		logger.Log.Errorf("broadcast marshal failed:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			logger.Log.Errorf("broadcast write failed:", err)
			delete(h.conns, c)
		}
	}
}

// HandleConnection websocket 連線進入點
// 讀取迴圈只負責偵測斷線,訊息一律由 Broadcast 下行
func (h *Hub) HandleConnection(conn *websocket.Conn) {
	h.Register(conn)

	defer func() {
		h.Unregister(conn)
		conn.Close()
		logger.Log.Info("websocket close", zap.String("remote", conn.RemoteAddr().String()))
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Infof("connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
	}
}

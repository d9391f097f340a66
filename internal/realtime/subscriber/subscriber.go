package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"calmspace_service/internal/realtime/domain"
	"calmspace_service/pkg/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// reconnectSchedule 重連間隔: 立即, 2s, 10s, 30s
// 用完後固定以最後一個間隔重試,只有呼叫端 Stop 才會真正停止
var reconnectSchedule = []time.Duration{0, 2 * time.Second, 10 * time.Second, 30 * time.Second}

// transportConn 傳輸連線的最小介面 (gorilla websocket.Conn 滿足此介面)
type transportConn interface {
	ReadMessage() (int, []byte, error)
	Close() error
}

// dialFunc 建立一條傳輸連線 (negotiate + handshake)
type dialFunc func(ctx context.Context) (transportConn, error)

// wireMessage fan-out channel 上的訊息格式
type wireMessage struct {
	Target    domain.Target     `json:"target"`
	Arguments []json.RawMessage `json:"arguments"`
}

// Subscriber 維護單一條到 fan-out channel 的連線
// 狀態機單一寫入者,事件以到達順序寫入 MessageLog
type Subscriber struct {
	identity string
	dial     dialFunc

	mu           sync.Mutex
	state        domain.ConnectionState
	retryAttempt int
	lastErr      string
	messages     []domain.LogEntry
	conn         transportConn
	cancel       context.CancelFunc
	stopped      bool
}

// New create a Subscriber; identity 僅作本地記錄,不做 server 端過濾
func New(identity, negotiateURL string) (*Subscriber, error) {
	if identity == "" {
		return nil, errors.New("subscriber identity is required")
	}

	s := &Subscriber{
		identity: identity,
		state:    domain.Disconnected,
	}
	s.dial = func(ctx context.Context) (transportConn, error) {
		return negotiateAndDial(ctx, negotiateURL)
	}
	return s, nil
}

// newWithDial 測試用,注入假傳輸
func newWithDial(identity string, dial dialFunc) *Subscriber {
	return &Subscriber{
		identity: identity,
		state:    domain.Disconnected,
		dial:     dial,
	}
}

// negotiateAndDial 先向 negotiate endpoint 拿連線資訊,再開 websocket
func negotiateAndDial(ctx context.Context, negotiateURL string) (transportConn, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, negotiateURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("negotiate failed: %s", resp.Status)
	}

	var info domain.NegotiateInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, info.URL, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Start 啟動連線迴圈,重複呼叫只有第一次有效
func (s *Subscriber) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil || s.stopped {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = domain.Connecting

	go s.run(ctx)
}

func (s *Subscriber) run(ctx context.Context) {
	attempt := 0

	for {
		conn, err := s.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				// Stop 與握手的 race,屬預期情況
				logger.Log.Info("subscriber stopped during negotiation", zap.String("identity", s.identity))
				return
			}

			s.mu.Lock()
			if s.stopped {
				s.mu.Unlock()
				return
			}
			s.lastErr = err.Error()
			s.retryAttempt = attempt
			s.state = domain.Reconnecting
			s.mu.Unlock()
			logger.Log.Errorf("subscriber connect failed:", err, zap.String("identity", s.identity))
		} else {
			s.mu.Lock()
			if s.stopped {
				s.mu.Unlock()
				conn.Close()
				return
			}
			s.conn = conn
			s.state = domain.Connected
			s.retryAttempt = 0
			s.lastErr = ""
			s.mu.Unlock()

			// 讀取直到斷線
			s.readLoop(conn)
			conn.Close()

			if ctx.Err() != nil {
				return
			}

			attempt = 0
			s.mu.Lock()
			if s.stopped {
				s.mu.Unlock()
				return
			}
			s.conn = nil
			s.state = domain.Reconnecting
			s.mu.Unlock()
		}

		delay := reconnectSchedule[len(reconnectSchedule)-1]
		if attempt < len(reconnectSchedule) {
			delay = reconnectSchedule[attempt]
		}
		attempt++

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
	}
}

func (s *Subscriber) readLoop(conn transportConn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.handleFrame(data)
	}
}

// handleFrame 解析 wire message,映射成本地 type 後寫入 log
// Stop 之後到達的訊息直接丟棄
func (s *Subscriber) handleFrame(data []byte) {
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.Log.Errorf("subscriber frame unmarshal failed:", err)
		return
	}

	localType, ok := domain.TypeForTarget(msg.Target)
	if !ok {
		return
	}

	var payload json.RawMessage
	if len(msg.Arguments) > 0 {
		payload = msg.Arguments[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.messages = append(s.messages, domain.LogEntry{
		Type:       localType,
		Payload:    payload,
		ReceivedAt: time.Now(),
	})
}

// Stop 呼叫端主動拆除,唯一會走到 Disconnected 的路徑
func (s *Subscriber) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	s.state = domain.Disconnected

	if s.cancel != nil {
		s.cancel()
	}
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

// IsConnected live flag for UI display
func (s *Subscriber) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == domain.Connected
}

// State current connection state
func (s *Subscriber) State() domain.ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError 最後一次連線錯誤,僅供 log/debug
func (s *Subscriber) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Messages ordered copy of the received event log
func (s *Subscriber) Messages() []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LogEntry, len(s.messages))
	copy(out, s.messages)
	return out
}

// ClearMessages 清空 log,不影響連線狀態
func (s *Subscriber) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

package subscriber

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"calmspace_service/internal/realtime/domain"
	"calmspace_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

// fakeTransport 以 channel 驅動的假連線
type fakeTransport struct {
	frames chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		frames: make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

func (c *fakeTransport) ReadMessage() (int, []byte, error) {
	select {
	case f := <-c.frames:
		return 1, f, nil
	case <-c.closed:
		return 0, nil, errors.New("connection closed")
	}
}

func (c *fakeTransport) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

// drop 模擬 server 端斷線
func (c *fakeTransport) drop() {
	c.Close()
}

// sequenceDial 依序回傳預先排好的連線或錯誤
type sequenceDial struct {
	mu    sync.Mutex
	steps []func() (transportConn, error)
	calls int
}

func (d *sequenceDial) dial(ctx context.Context) (transportConn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	step := d.steps[len(d.steps)-1]
	if d.calls < len(d.steps) {
		step = d.steps[d.calls]
	}
	d.calls++
	return step()
}

func connStep(c *fakeTransport) func() (transportConn, error) {
	return func() (transportConn, error) { return c, nil }
}

func errStep(err error) func() (transportConn, error) {
	return func() (transportConn, error) { return nil, err }
}

func waitForState(t *testing.T, s *Subscriber, want domain.ConnectionState) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return s.State() == want
	}, 3*time.Second, 10*time.Millisecond)
}

func TestSubscriber_New(t *testing.T) {
	// **情境: identity 為空直接回錯誤**
	_, err := New("", "http://localhost:8080/api/negotiate")
	assert.Error(t, err)

	s, err := New("watcher", "http://localhost:8080/api/negotiate")
	assert.NoError(t, err)
	assert.Equal(t, domain.Disconnected, s.State())
}

func TestSubscriber_ConnectAndReceive(t *testing.T) {
	logger.SetNewNop()

	conn := newFakeTransport()
	dial := &sequenceDial{steps: []func() (transportConn, error){connStep(conn)}}

	s := newWithDial("watcher", dial.dial)
	s.Start()
	defer s.Stop()

	waitForState(t, s, domain.Connected)
	assert.True(t, s.IsConnected())

	conn.frames <- []byte(`{"target":"MoodUpdated","arguments":[{"mood":"happy","displayMessage":"alice is feeling happy"}]}`)

	assert.Eventually(t, func() bool {
		return len(s.Messages()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	messages := s.Messages()
	assert.Equal(t, domain.MoodUpdate, messages[0].Type)
	assert.JSONEq(t, `{"mood":"happy","displayMessage":"alice is feeling happy"}`, string(messages[0].Payload))

	// 未知 target 的 frame 直接忽略
	conn.frames <- []byte(`{"target":"UnknownTarget","arguments":[{}]}`)
	conn.frames <- []byte(`{"target":"NotificationReceived","arguments":[{"text":"hi"}]}`)

	assert.Eventually(t, func() bool {
		return len(s.Messages()) == 2
	}, 3*time.Second, 10*time.Millisecond)
	assert.Equal(t, domain.Notification, s.Messages()[1].Type)
}

func TestSubscriber_ReconnectAfterDialFailure(t *testing.T) {
	logger.SetNewNop()

	conn := newFakeTransport()
	dial := &sequenceDial{steps: []func() (transportConn, error){
		errStep(errors.New("negotiate failed")),
		connStep(conn),
	}}

	s := newWithDial("watcher", dial.dial)
	s.Start()
	defer s.Stop()

	// 第一次 dial 失敗 → Reconnecting,排程立即重試後成功
	waitForState(t, s, domain.Connected)
	assert.Empty(t, s.LastError())
}

func TestSubscriber_ReconnectAfterDrop(t *testing.T) {
	logger.SetNewNop()

	first := newFakeTransport()
	second := newFakeTransport()
	dial := &sequenceDial{steps: []func() (transportConn, error){
		connStep(first),
		connStep(second),
	}}

	s := newWithDial("watcher", dial.dial)
	s.Start()
	defer s.Stop()

	waitForState(t, s, domain.Connected)
	first.frames <- []byte(`{"target":"MoodUpdated","arguments":[{"mood":"calm"}]}`)
	assert.Eventually(t, func() bool {
		return len(s.Messages()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	// server 端斷線 → 自動重連到第二條連線
	first.drop()
	assert.Eventually(t, func() bool {
		return s.IsConnected() && dial.calls >= 2
	}, 3*time.Second, 10*time.Millisecond)

	// 斷線前收到的 log 保留
	assert.Len(t, s.Messages(), 1)

	second.frames <- []byte(`{"target":"StatsUpdated","arguments":[{"daysTracked":3}]}`)
	assert.Eventually(t, func() bool {
		return len(s.Messages()) == 2
	}, 3*time.Second, 10*time.Millisecond)
}

func TestSubscriber_Stop(t *testing.T) {
	logger.SetNewNop()

	conn := newFakeTransport()
	dial := &sequenceDial{steps: []func() (transportConn, error){connStep(conn)}}

	s := newWithDial("watcher", dial.dial)
	s.Start()
	waitForState(t, s, domain.Connected)

	s.Stop()
	assert.Equal(t, domain.Disconnected, s.State())
	assert.False(t, s.IsConnected())

	// Stop 之後到達的 frame 丟棄
	s.handleFrame([]byte(`{"target":"MoodUpdated","arguments":[{"mood":"sad"}]}`))
	assert.Empty(t, s.Messages())

	// Stop 之後 Start 無效
	s.Start()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, domain.Disconnected, s.State())

	// 重複 Stop 安全
	s.Stop()
}

func TestSubscriber_StopRaceKeepsDisconnected(t *testing.T) {
	logger.SetNewNop()

	// **情境 1: Stop 與 dial 失敗交錯,最終狀態必須是 Disconnected**
	// 先佔住鎖讓 Stop 與失敗後的狀態寫入在鎖上排隊,無論誰先拿到鎖結果都要一致
	t.Run("Stop 與 dial 失敗交錯", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			dialed := make(chan struct{})
			proceed := make(chan struct{})
			var dialOnce sync.Once

			s := newWithDial("watcher", func(ctx context.Context) (transportConn, error) {
				dialOnce.Do(func() { close(dialed) })
				<-proceed
				return nil, errors.New("negotiate failed")
			})
			s.Start()
			<-dialed

			s.mu.Lock()
			stopDone := make(chan struct{})
			go func() {
				s.Stop()
				close(stopDone)
			}()
			time.Sleep(5 * time.Millisecond)
			close(proceed)
			time.Sleep(5 * time.Millisecond)
			s.mu.Unlock()

			<-stopDone
			time.Sleep(20 * time.Millisecond)
			assert.Equal(t, domain.Disconnected, s.State())
		}
	})

	// **情境 2: Stop 與 server 斷線交錯,最終狀態必須是 Disconnected**
	t.Run("Stop 與斷線交錯", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			conn := newFakeTransport()
			dial := &sequenceDial{steps: []func() (transportConn, error){connStep(conn)}}

			s := newWithDial("watcher", dial.dial)
			s.Start()
			waitForState(t, s, domain.Connected)

			s.mu.Lock()
			stopDone := make(chan struct{})
			go func() {
				s.Stop()
				close(stopDone)
			}()
			time.Sleep(5 * time.Millisecond)
			conn.drop()
			time.Sleep(5 * time.Millisecond)
			s.mu.Unlock()

			<-stopDone
			time.Sleep(20 * time.Millisecond)
			assert.Equal(t, domain.Disconnected, s.State())
		}
	})
}

func TestSubscriber_ClearMessages(t *testing.T) {
	logger.SetNewNop()

	conn := newFakeTransport()
	dial := &sequenceDial{steps: []func() (transportConn, error){connStep(conn)}}

	s := newWithDial("watcher", dial.dial)
	s.Start()
	defer s.Stop()
	waitForState(t, s, domain.Connected)

	conn.frames <- []byte(`{"target":"MoodUpdated","arguments":[{"mood":"happy"}]}`)
	assert.Eventually(t, func() bool {
		return len(s.Messages()) == 1
	}, 3*time.Second, 10*time.Millisecond)

	s.ClearMessages()
	assert.Empty(t, s.Messages())
	assert.True(t, s.IsConnected())
}

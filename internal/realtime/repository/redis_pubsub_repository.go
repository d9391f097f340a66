package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"calmspace_service/internal/realtime/domain"
	"calmspace_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Broadcaster definition publish side of the fan-out channel
type Broadcaster interface {
	Publish(channel string, message interface{}) error
}

// RedisPubSub definition redis pub/sub
type RedisPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisPubSub create RedisPubSub
func NewRedisPubSub(client *redis.Client) *RedisPubSub {
	return &RedisPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish 將 message 序列化後,發布到指定 channel
func (r *RedisPubSub) Publish(channel string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, channel, data).Err()
}

// Subscribe 訂閱 broadcast channel,收到訊息後呼叫 handler 處理
func (r *RedisPubSub) Subscribe(ctx context.Context, channel string, handler func(msg domain.BroadcastMessage)) error {
	sub := r.client.Subscribe(r.ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var result domain.BroadcastMessage
				if err := json.Unmarshal([]byte(m.Payload), &result); err != nil {
					logger.Log.Error("broadcast unmarshal err :", zap.String("err", fmt.Sprintf("failed to unmarshal broadcast message: %v", err)))
					continue
				}

				handler(result)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				// 當 ctx 被取消時,關閉訂閱,channel 關閉後退出循環
				sub.Close()
			}
		}
	}()
	return nil
}

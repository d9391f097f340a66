package app

import (
	"errors"

	"calmspace_service/internal/realtime/domain"
	"calmspace_service/internal/realtime/repository"
)

// ErrInvalidMessageType unknown broadcast type
var ErrInvalidMessageType = errors.New("Invalid message type")

// BroadcastUseCase 通用 broadcast,把 {type, data} 轉成 wire target 後全體發送
type BroadcastUseCase struct {
	broadcaster repository.Broadcaster
	channel     string
}

// NewBroadcastUseCase init broadcast use case
func NewBroadcastUseCase(broadcaster repository.Broadcaster, channel string) *BroadcastUseCase {
	return &BroadcastUseCase{
		broadcaster: broadcaster,
		channel:     channel,
	}
}

// Execute map the request type to its target and publish to all subscribers
func (uc *BroadcastUseCase) Execute(reqType string, data interface{}) error {
	target, ok := domain.TargetForType(reqType)
	if !ok {
		return ErrInvalidMessageType
	}

	return uc.broadcaster.Publish(uc.channel, domain.NewBroadcastMessage(target, data))
}

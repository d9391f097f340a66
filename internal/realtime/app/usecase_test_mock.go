package app

import (
	"github.com/stretchr/testify/mock"
)

// MockBroadcaster Mock Broadcaster
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Publish(channel string, message interface{}) error {
	args := m.Called(channel, message)
	return args.Error(0)
}

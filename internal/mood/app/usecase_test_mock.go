package app

import (
	"context"

	"calmspace_service/internal/mood/domain"
	user_domain "calmspace_service/internal/user/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

// MockEntryRepo Mock EntryRepository
type MockEntryRepo struct {
	mock.Mock
}

func (m *MockEntryRepo) Create(ctx context.Context, entry *domain.MoodEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepo) FindByID(ctx context.Context, id string) (*domain.MoodEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.MoodEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntryRepo) FindByUser(ctx context.Context, userID string) ([]domain.MoodEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.MoodEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntryRepo) FindPage(ctx context.Context, userID, date string, limit, offset int) ([]domain.MoodEntry, error) {
	args := m.Called(ctx, userID, date, limit, offset)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.MoodEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEntryRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserLookup Mock UserLookup
type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) FindByID(ctx context.Context, id string) (*user_domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*user_domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserLookup) FindByIDOrUserID(ctx context.Context, id string) (*user_domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*user_domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockBroadcaster Mock Broadcaster
type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Publish(channel string, message interface{}) error {
	args := m.Called(channel, message)
	return args.Error(0)
}

// MockEventWriter Mock EventWriter
type MockEventWriter struct {
	mock.Mock
}

func (m *MockEventWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

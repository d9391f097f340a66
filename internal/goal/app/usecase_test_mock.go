package app

import (
	"context"

	"calmspace_service/internal/goal/domain"

	"github.com/stretchr/testify/mock"
)

// MockGoalRepo Mock GoalRepository
type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepo) FindByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Goal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGoalRepo) FindByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Goal), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGoalRepo) Replace(ctx context.Context, goal *domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepo) Delete(ctx context.Context, goalID string) error {
	args := m.Called(ctx, goalID)
	return args.Error(0)
}

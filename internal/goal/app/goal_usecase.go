package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"calmspace_service/internal/goal/domain"
	"calmspace_service/internal/goal/repository"

	"github.com/google/uuid"
)

var (
	// ErrGoalNotFound 目標不存在
	ErrGoalNotFound = errors.New("Goal not found")
	// ErrNotGoalOwner 目標不屬於請求者
	ErrNotGoalOwner = errors.New("Unauthorized to modify this goal")
)

// GoalUseCase 目標 CRUD
type GoalUseCase struct {
	goalRepo repository.GoalRepository
}

// NewGoalUseCase init goal use case
func NewGoalUseCase(goalRepo repository.GoalRepository) *GoalUseCase {
	return &GoalUseCase{
		goalRepo: goalRepo,
	}
}

// Create 建立目標,completed 由 progress/target 推導
func (uc *GoalUseCase) Create(ctx context.Context, userID, goalName string, target, progress int) (*domain.Goal, error) {
	now := isoNow()
	goal := &domain.Goal{
		ID:        fmt.Sprintf("goal-%s-%d-%s", userID, time.Now().UnixMilli(), uuid.NewString()[:8]),
		UserID:    userID,
		GoalName:  strings.TrimSpace(goalName),
		Target:    target,
		Progress:  progress,
		Completed: progress >= target,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// List 依建立時間升序,映射成前端欄位
func (uc *GoalUseCase) List(ctx context.Context, userID string) ([]domain.GoalView, error) {
	goals, err := uc.goalRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]domain.GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, g.View())
	}
	return views, nil
}

// UpdateProgress 先驗證擁有權,再更新進度
func (uc *GoalUseCase) UpdateProgress(ctx context.Context, goalID, userID string, progress int) (*domain.Goal, error) {
	goal, err := uc.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return nil, ErrGoalNotFound
	}
	if goal.UserID != userID {
		return nil, ErrNotGoalOwner
	}

	goal.Progress = progress
	goal.Completed = progress >= goal.Target
	goal.UpdatedAt = isoNow()

	if err := uc.goalRepo.Replace(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete 先驗證擁有權,再刪除
func (uc *GoalUseCase) Delete(ctx context.Context, goalID, userID string) error {
	goal, err := uc.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return ErrGoalNotFound
	}
	if goal.UserID != userID {
		return ErrNotGoalOwner
	}

	return uc.goalRepo.Delete(ctx, goalID)
}

// isoNow ISO-8601 UTC with milliseconds
func isoNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

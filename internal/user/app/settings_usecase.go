package app

import (
	"context"

	"calmspace_service/internal/user/domain"
	"calmspace_service/internal/user/repository"
)

// SaveSettingsRequest 設定儲存輸入
// NotificationsEnabled 用指標區分「未帶」與 false
type SaveSettingsRequest struct {
	UserID               string
	DisplayName          string
	ReminderTime         string
	DarkMode             bool
	NotificationsEnabled *bool
}

// SettingsUseCase 使用者設定的讀取與 upsert
type SettingsUseCase struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsUseCase init settings use case
func NewSettingsUseCase(settingsRepo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{
		settingsRepo: settingsRepo,
	}
}

// Get 查無資料時回預設值,不回 404
func (uc *SettingsUseCase) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	settings, err := uc.settingsRepo.Get(ctx, userID)
	if err != nil {
		defaults := domain.DefaultSettings(userID)
		return &defaults, nil
	}
	return settings, nil
}

// Save upsert,缺的欄位補預設值
func (uc *SettingsUseCase) Save(ctx context.Context, req SaveSettingsRequest) (*domain.Settings, error) {
	settings := domain.DefaultSettings(req.UserID)
	settings.DisplayName = req.DisplayName
	if req.ReminderTime != "" {
		settings.ReminderTime = req.ReminderTime
	}
	settings.DarkMode = req.DarkMode
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	settings.UpdatedAt = isoNow()

	if err := uc.settingsRepo.Upsert(ctx, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"calmspace_service/internal/user/domain"
	"calmspace_service/pkg/encrypt"
	"calmspace_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	// **情境 1: 註冊成功**
	t.Run("成功註冊", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByEmail", ctx, "alice@example.com").Return(nil, errors.New("not found")).Once()
		mockRepo.On("FindByUsername", ctx, "alice").Return(nil, errors.New("not found")).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		uc := NewUserUseCase(mockRepo)
		user, token, err := uc.Register(ctx, RegisterRequest{
			Email:    "Alice@Example.com",
			Password: "secret123",
			Name:     "  Alice Smith  ",
			Username: "Alice",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "Alice Smith", user.Name)
		assert.True(t, strings.HasPrefix(user.ID, "user-"))
		assert.Contains(t, user.Avatar, "dicebear.com")
		assert.Equal(t, "light", user.Preferences.Theme)
		// 密碼存的是 bcrypt hash
		assert.NoError(t, encrypt.CheckPassword(user.Password, "secret123"))
		mockRepo.AssertExpectations(t)
	})

	// **情境 2: email 已存在**
	t.Run("email 已存在", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByEmail", ctx, "alice@example.com").Return(&domain.User{ID: "u1"}, nil).Once()

		uc := NewUserUseCase(mockRepo)
		_, _, err := uc.Register(ctx, RegisterRequest{
			Email:    "alice@example.com",
			Password: "secret123",
			Name:     "Alice",
			Username: "alice",
		})

		assert.ErrorIs(t, err, ErrEmailTaken)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	// **情境 3: username 已存在**
	t.Run("username 已存在", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByEmail", ctx, "alice@example.com").Return(nil, errors.New("not found")).Once()
		mockRepo.On("FindByUsername", ctx, "alice").Return(&domain.User{ID: "u1"}, nil).Once()

		uc := NewUserUseCase(mockRepo)
		_, _, err := uc.Register(ctx, RegisterRequest{
			Email:    "alice@example.com",
			Password: "secret123",
			Name:     "Alice",
			Username: "alice",
		})

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	hashed, _ := encrypt.HashPassword("secret123")
	stored := &domain.User{
		ID:       "u1",
		Email:    "alice@example.com",
		Username: "alice",
		Password: hashed,
		Name:     "Alice",
	}

	// **情境 1: email 登入成功**
	t.Run("email 登入成功", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByEmail", ctx, "alice@example.com").Return(stored, nil).Once()
		mockRepo.On("Replace", ctx, mock.Anything).Return(nil).Once()

		uc := NewUserUseCase(mockRepo)
		user, token, err := uc.Login(ctx, "Alice@Example.com", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "u1", user.ID)
		mockRepo.AssertExpectations(t)
	})

	// **情境 2: username 登入成功**
	t.Run("username 登入成功", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByUsername", ctx, "alice").Return(stored, nil).Once()
		mockRepo.On("Replace", ctx, mock.Anything).Return(nil).Once()

		uc := NewUserUseCase(mockRepo)
		_, _, err := uc.Login(ctx, "alice", "secret123")

		assert.NoError(t, err)
	})

	// **情境 3: 密碼錯誤**
	t.Run("密碼錯誤", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByEmail", ctx, "alice@example.com").Return(stored, nil).Once()

		uc := NewUserUseCase(mockRepo)
		_, _, err := uc.Login(ctx, "alice@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	// **情境 4: 查無使用者**
	t.Run("查無使用者", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByUsername", ctx, "ghost").Return(nil, errors.New("not found")).Once()

		uc := NewUserUseCase(mockRepo)
		_, _, err := uc.Login(ctx, "ghost", "secret123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	// **情境 5: lastLoginAt 更新失敗不擋登入**
	t.Run("lastLoginAt 更新失敗不擋登入", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByEmail", ctx, "alice@example.com").Return(stored, nil).Once()
		mockRepo.On("Replace", ctx, mock.Anything).Return(errors.New("db down")).Once()

		uc := NewUserUseCase(mockRepo)
		_, token, err := uc.Login(ctx, "alice@example.com", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

func TestUserUseCase_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	// **情境 1: 合併 name 與 preferences**
	t.Run("合併更新", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByID", ctx, "u1").Return(&domain.User{
			ID:          "u1",
			Name:        "Alice",
			Avatar:      "old.png",
			Preferences: domain.DefaultPreferences(),
		}, nil).Once()
		mockRepo.On("Replace", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == "Alicia" && u.Avatar == "old.png" && u.Preferences.Theme == "dark"
		})).Return(nil).Once()

		uc := NewUserUseCase(mockRepo)
		user, err := uc.UpdateProfile(ctx, "u1", domain.ProfileUpdate{
			Name:        "Alicia",
			Preferences: &domain.Preferences{Theme: "dark", Notifications: true},
		})

		assert.NoError(t, err)
		assert.Equal(t, "Alicia", user.Name)
		mockRepo.AssertExpectations(t)
	})

	// **情境 2: 使用者不存在**
	t.Run("使用者不存在", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockRepo.On("FindByID", ctx, "ghost").Return(nil, errors.New("not found")).Once()

		uc := NewUserUseCase(mockRepo)
		_, err := uc.UpdateProfile(ctx, "ghost", domain.ProfileUpdate{Name: "x"})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestSettingsUseCase(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	// **情境 1: 查無設定回預設值**
	t.Run("查無設定回預設值", func(t *testing.T) {
		mockRepo := new(MockSettingsRepo)
		mockRepo.On("Get", ctx, "u1").Return(nil, errors.New("not found")).Once()

		uc := NewSettingsUseCase(mockRepo)
		settings, err := uc.Get(ctx, "u1")

		assert.NoError(t, err)
		assert.Equal(t, "u1", settings.UserID)
		assert.Equal(t, "08:00", settings.ReminderTime)
		assert.True(t, settings.NotificationsEnabled)
		assert.False(t, settings.DarkMode)
	})

	// **情境 2: 儲存時缺的欄位補預設值**
	t.Run("儲存時缺的欄位補預設值", func(t *testing.T) {
		mockRepo := new(MockSettingsRepo)
		mockRepo.On("Upsert", ctx, mock.MatchedBy(func(s *domain.Settings) bool {
			return s.UserID == "u1" && s.ReminderTime == "08:00" && s.DarkMode && s.NotificationsEnabled
		})).Return(nil).Once()

		uc := NewSettingsUseCase(mockRepo)
		settings, err := uc.Save(ctx, SaveSettingsRequest{
			UserID:      "u1",
			DisplayName: "Alice",
			DarkMode:    true,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Alice", settings.DisplayName)
		mockRepo.AssertExpectations(t)
	})

	// **情境 3: notificationsEnabled 明確給 false 要保留**
	t.Run("notificationsEnabled 明確 false", func(t *testing.T) {
		mockRepo := new(MockSettingsRepo)
		mockRepo.On("Upsert", ctx, mock.Anything).Return(nil).Once()

		disabled := false
		uc := NewSettingsUseCase(mockRepo)
		settings, err := uc.Save(ctx, SaveSettingsRequest{
			UserID:               "u1",
			NotificationsEnabled: &disabled,
		})

		assert.NoError(t, err)
		assert.False(t, settings.NotificationsEnabled)
	})
}

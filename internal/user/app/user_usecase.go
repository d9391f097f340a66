package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"calmspace_service/internal/user/domain"
	"calmspace_service/internal/user/repository"
	"calmspace_service/pkg/config"
	"calmspace_service/pkg/encrypt"
	"calmspace_service/pkg/logger"
	token "calmspace_service/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 錯誤定義,handler 層映射成對應的 HTTP status
var (
	// ErrEmailTaken email 已註冊
	ErrEmailTaken = errors.New("User with this email already exists")
	// ErrUsernameTaken username 已註冊
	ErrUsernameTaken = errors.New("Username already taken")
	// ErrInvalidCredentials 帳密錯誤,不透露是哪個錯
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	// ErrUserNotFound 使用者不存在
	ErrUserNotFound = errors.New("User not found")
)

// RegisterRequest 註冊輸入
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Username string
	Avatar   string
}

// UserUseCase 這裡封裝了對外提供的應用服務
type UserUseCase interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error)
	Login(ctx context.Context, identifier, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}

type userUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase 建立一個新的 UserUseCase
func NewUserUseCase(userRepo repository.UserRepository) UserUseCase {
	return &userUseCase{
		userRepo: userRepo,
	}
}

// Register 建立新使用者,回傳 user 與 7 天效期的 JWT
func (u *userUseCase) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	email := strings.ToLower(req.Email)
	username := strings.ToLower(req.Username)
	name := strings.TrimSpace(req.Name)

	// 檢查 email / username 是否已存在
	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	}
	if _, err := u.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, "", ErrUsernameTaken
	}

	pw, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	now := isoNow()
	avatar := req.Avatar
	if avatar == "" {
		avatar = fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", url.QueryEscape(name))
	}

	user := &domain.User{
		ID:          fmt.Sprintf("user-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:9]),
		Email:       email,
		Username:    username,
		Password:    pw,
		Name:        name,
		Avatar:      avatar,
		CreatedAt:   now,
		LastLoginAt: now,
		MoodStreak:  0,
		Preferences: domain.DefaultPreferences(),
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	t, err := token.GenerateJWT(user.ID, user.Email, user.Username, user.Name, config.EnvConfig.MoodService)
	if err != nil {
		return nil, "", err
	}

	return user, t, nil
}

// Login identifier 含 '@' 走 email 查詢,否則用 username
func (u *userUseCase) Login(ctx context.Context, identifier, password string) (*domain.User, string, error) {
	identifier = strings.ToLower(identifier)

	var user *domain.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = u.userRepo.FindByEmail(ctx, identifier)
	} else {
		user, err = u.userRepo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		logger.Log.Error("login user lookup failed", zap.String("identifier", identifier))
		return nil, "", ErrInvalidCredentials
	}

	if err := encrypt.CheckPassword(user.Password, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	// lastLoginAt 更新失敗不擋登入
	user.LastLoginAt = isoNow()
	if err := u.userRepo.Replace(ctx, user); err != nil {
		logger.Log.Errorf("update last login failed:", err, zap.String("userId", user.ID))
	}

	t, err := token.GenerateJWT(user.ID, user.Email, user.Username, user.Name, config.EnvConfig.MoodService)
	if err != nil {
		return nil, "", err
	}

	return user, t, nil
}

// GetProfile point lookup by user id
func (u *userUseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 合併 name/avatar/preferences 後回寫
func (u *userUseCase) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if update.Name != "" {
		user.Name = strings.TrimSpace(update.Name)
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}
	if update.Preferences != nil {
		user.Preferences = *update.Preferences
	}
	user.UpdatedAt = isoNow()

	if err := u.userRepo.Replace(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// isoNow ISO-8601 UTC with milliseconds
func isoNow() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

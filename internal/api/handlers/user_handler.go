package handlers

import (
	"errors"
	"regexp"

	"calmspace_service/internal/user/app"
	"calmspace_service/internal/user/domain"
	"calmspace_service/pkg/logger"
	"calmspace_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserHandler 處理 user 相關的 HTTP 請求
type UserHandler struct {
	UC app.UserUseCase
}

// NewUserHandler 創建新的 UserHandler
func NewUserHandler(uc app.UserUseCase) *UserHandler {
	return &UserHandler{
		UC: uc,
	}
}

// Register 註冊
// @Summary 使用者註冊
// @Description 驗證欄位後建立帳號並回傳 JWT
// @Tags Users
// @Accept json
// @Produce json
// @Success 201 {object} string "註冊成功"
// @Failure 400 {object} string "欄位驗證失敗"
// @Failure 409 {object} string "email 或 username 已存在"
// @Router /api/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	}
	if !emailPattern.MatchString(req.Email) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 6 characters long"})
	}
	if len(req.Username) < 3 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username must be at least 3 characters long"})
	}

	user, token, err := h.UC.Register(c.Context(), app.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Username: req.Username,
		Avatar:   req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmailTaken), errors.Is(err, app.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			logger.Log.Errorf("register failed:", err, zap.String("email", req.Email))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Registration failed"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"user":    user,
		"token":   token,
	})
}

// Login 登入
// @Summary 使用者登入
// @Description identifier 可為 email 或 username
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} string "登入成功"
// @Failure 400 {object} string "缺少欄位"
// @Failure 401 {object} string "帳密錯誤"
// @Router /api/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	type request struct {
		EmailOrUsername string `json:"emailOrUsername"`
		Email           string `json:"email"`
		Username        string `json:"username"`
		Password        string `json:"password"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	identifier := req.EmailOrUsername
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Login identifier and password are required"})
	}

	user, token, err := h.UC.Login(c.Context(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		logger.Log.Errorf("login failed:", err, zap.String("identifier", identifier))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// GetProfile 查詢個人資料,userID 來自 JWT
// @Summary 查詢個人資料
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} string "使用者資料"
// @Failure 401 {object} string "token 無效"
// @Failure 404 {object} string "使用者不存在"
// @Router /api/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)

	user, err := h.UC.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		logger.Log.Errorf("get profile failed:", err, zap.String("userId", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{"user": user})
}

// UpdateProfile 更新個人資料,userID 來自 JWT
// @Summary 更新個人資料
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} string "更新後資料"
// @Failure 401 {object} string "token 無效"
// @Failure 404 {object} string "使用者不存在"
// @Router /api/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals(middlewares.TokenUserID).(string)

	var update domain.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	user, err := h.UC.UpdateProfile(c.Context(), userID, update)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		logger.Log.Errorf("update profile failed:", err, zap.String("userId", userID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

package middlewares

import (
	"net/http/httptest"
	"testing"

	"calmspace_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestJWTMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": c.Locals(TokenUserID)})
	})

	// **情境 1: 沒帶 token 回 401**
	t.Run("沒帶 token 回 401", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	// **情境 2: token 亂碼回 401**
	t.Run("token 亂碼回 401", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	// **情境 3: 合法 token 放行並帶出 claims**
	t.Run("合法 token 放行", func(t *testing.T) {
		jwt, err := token.GenerateJWT("u1", "alice@example.com", "alice", "Alice", "mood_service")
		assert.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+jwt)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestCORS(t *testing.T) {
	// **情境 1: 預設 CORS 放行任意來源,OPTIONS 回 200**
	t.Run("預設 CORS", func(t *testing.T) {
		app := fiber.New()
		app.Use(CORS())
		app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

		req := httptest.NewRequest(fiber.MethodOptions, "/x", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	})

	// **情境 2: allow list 比對到 Origin**
	t.Run("allow list 比對到 Origin", func(t *testing.T) {
		app := fiber.New()
		app.Use(CORSAllowList([]string{"https://calm.example.com"}, "http://localhost:3000"))
		app.Post("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

		req := httptest.NewRequest(fiber.MethodPost, "/x", nil)
		req.Header.Set(fiber.HeaderOrigin, "https://calm.example.com")
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, "https://calm.example.com", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	})

	// **情境 3: 不在 allow list 退回預設來源**
	t.Run("不在 allow list 退回預設", func(t *testing.T) {
		app := fiber.New()
		app.Use(CORSAllowList([]string{"https://calm.example.com"}, "http://localhost:3000"))
		app.Post("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

		req := httptest.NewRequest(fiber.MethodPost, "/x", nil)
		req.Header.Set(fiber.HeaderOrigin, "https://evil.example.com")
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:3000", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	})

	// **情境 4: 單一來源**
	t.Run("單一來源", func(t *testing.T) {
		app := fiber.New()
		app.Use(CORSSingleOrigin("https://calm.example.com"))
		app.Post("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

		req := httptest.NewRequest(fiber.MethodPost, "/x", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, "https://calm.example.com", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	})
}

package middlewares

import (
	"calmspace_service/pkg"

	"github.com/gofiber/fiber/v2"
)

// CORS 預設的跨域設定,任意來源
// OPTIONS 預檢直接回 200
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}

// CORSSingleOrigin 僅允許單一來源 (broadcast endpoint)
func CORSSingleOrigin(origin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, Authorization, x-signalr-user-agent, x-requested-with")
		c.Set(fiber.HeaderAccessControlAllowCredentials, "false")

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}

// CORSAllowList 從允許清單比對請求的 Origin,無符合時退回預設開發來源 (negotiate endpoint)
func CORSAllowList(allowed []string, fallback string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		corsOrigin := fallback
		if pkg.Contains(allowed, origin) {
			corsOrigin = origin
		}

		c.Set(fiber.HeaderAccessControlAllowOrigin, corsOrigin)
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, Authorization, x-signalr-user-agent, x-requested-with")
		c.Set(fiber.HeaderAccessControlMaxAge, "86400")
		c.Set(fiber.HeaderAccessControlAllowCredentials, "false")

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}

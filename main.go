package main

import (
	"calmspace_service/internal/api/router"
	"calmspace_service/pkg/config"

	"github.com/gofiber/fiber/v2"
)

// 此程式用於 init swagger
// swag init output ./docs
func main() {
	app := fiber.New()

	router.RegisterRoutes(app, router.Handlers{}, config.CorsConfig{})
}

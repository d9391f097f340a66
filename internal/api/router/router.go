package router

import (
	"calmspace_service/internal/api/handlers"
	realtimeapp "calmspace_service/internal/realtime/app"
	"calmspace_service/pkg/config"
	"calmspace_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// Handlers 路由需要的全部 handler
type Handlers struct {
	Mood     *handlers.MoodHandler
	Realtime *handlers.RealtimeHandler
	User     *handlers.UserHandler
	Goal     *handlers.GoalHandler
	Settings *handlers.SettingsHandler
	Hub      *realtimeapp.Hub
}

// RegisterRoutes 註冊 mood service 的全部路由
// broadcast 與 negotiate 各有自己的 CORS 規則,其餘走預設
// @title CalmSpace Mood Service API
// @version 1.0
// @description API documentation for CalmSpace Mood Service
// @host localhost:8080
// @BasePath /
func RegisterRoutes(r *fiber.App, h Handlers, cors config.CorsConfig) {
	r.Get("/swagger/*", swagger.HandlerDefault)
	r.Get("/", handlers.ConnectCheck)
	r.Post("/debug", handlers.DebugLogFlag)

	// realtime 入口,各自掛上對應的 CORS
	r.Post("/api/broadcast", middlewares.CORSSingleOrigin(cors.BroadcastOrigin), h.Realtime.Broadcast)
	r.Options("/api/broadcast", middlewares.CORSSingleOrigin(cors.BroadcastOrigin))
	r.Post("/api/negotiate", middlewares.CORSAllowList(cors.NegotiateOrigins, cors.DefaultOrigin), h.Realtime.Negotiate)
	r.Get("/api/negotiate", middlewares.CORSAllowList(cors.NegotiateOrigins, cors.DefaultOrigin), h.Realtime.Negotiate)
	r.Options("/api/negotiate", middlewares.CORSAllowList(cors.NegotiateOrigins, cors.DefaultOrigin))

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		h.Hub.HandleConnection(c)
	}))

	api := r.Group("/api", middlewares.CORS())

	api.Post("/mood", h.Mood.CreateEntry)
	api.Get("/mood/history", h.Mood.History)
	api.Get("/mood/stats", h.Mood.Stats)
	api.Post("/mood/delete-all", h.Mood.DeleteAll)

	api.Post("/register", h.User.Register)
	api.Post("/login", h.User.Login)

	profile := api.Group("/profile", middlewares.JWTMiddleware())
	profile.Get("/", h.User.GetProfile)
	profile.Put("/", h.User.UpdateProfile)

	api.Post("/goals", h.Goal.Create)
	api.Get("/goals", h.Goal.List)
	api.Put("/goals", h.Goal.UpdateProgress)
	api.Delete("/goals", h.Goal.Delete)

	api.Get("/settings", h.Settings.Get)
	api.Post("/settings", h.Settings.Save)
}

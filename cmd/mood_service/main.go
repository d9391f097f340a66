package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"calmspace_service/internal/api/handlers"
	"calmspace_service/internal/api/router"
	goalapp "calmspace_service/internal/goal/app"
	goalrepo "calmspace_service/internal/goal/repository"
	moodapp "calmspace_service/internal/mood/app"
	moodrepo "calmspace_service/internal/mood/repository"
	realtimeapp "calmspace_service/internal/realtime/app"
	realtimerepo "calmspace_service/internal/realtime/repository"
	userapp "calmspace_service/internal/user/app"
	userrepo "calmspace_service/internal/user/repository"
	"calmspace_service/pkg/config"
	"calmspace_service/pkg/database"
	"calmspace_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.MoodService, config.EnvConfig.MoodServiceLogPath)
	cfg := config.LoadConfig[config.Mood](config.EnvConfig.MoodService, config.EnvConfig.MoodServiceYAMLPath)

	// 1. 建立 Mongo 連線 (mood entries / users / goals / settings)
	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// 2. 建立 Redis 連線 (Pub/Sub fan-out)
	redisClient, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// 3. 建立 Kafka Writer (event archive,連不上時僅警告,不擋服務)
	var eventWriter moodapp.EventWriter
	if len(cfg.Kafka.Brokers) > 0 {
		writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryInterval: cfg.Kafka.RetryInterval,
			RetryCount:    cfg.Kafka.RetryCount,
		})
		if err != nil {
			logger.Log.Warn(fmt.Sprintf("kafka unavailable, event archive disabled : %v", err))
		} else {
			defer writer.Close()
			eventWriter = writer
		}
	}

	// 4. 初始化 Repository
	entryRepo := moodrepo.NewMongoEntryRepository(mongo.Database)
	userRepo := userrepo.NewMongoUserRepository(mongo.Database)
	settingsRepo := userrepo.NewMongoSettingsRepository(mongo.Database)
	goalRepo := goalrepo.NewMongoGoalRepository(mongo.Database)
	pubsub := realtimerepo.NewRedisPubSub(redisClient)

	// 5. 初始化 UseCases
	moodUC := moodapp.NewMoodUseCase(entryRepo, userRepo, pubsub, eventWriter, cfg.BroadcastChannel)
	broadcastUC := realtimeapp.NewBroadcastUseCase(pubsub, cfg.BroadcastChannel)
	userUC := userapp.NewUserUseCase(userRepo)
	settingsUC := userapp.NewSettingsUseCase(settingsRepo)
	goalUC := goalapp.NewGoalUseCase(goalRepo)

	// 6. 啟動 hub,訂閱 fan-out channel
	hub := realtimeapp.NewHub()
	if err := hub.Run(ctx, pubsub, cfg.BroadcastChannel); err != nil {
		logger.Log.Fatal(fmt.Sprintf("subscribe broadcast channel err : %v", err))
	}

	// 7. 啟動 Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.MoodServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	// 注册路由
	router.RegisterRoutes(r, router.Handlers{
		Mood:     handlers.NewMoodHandler(moodUC),
		Realtime: handlers.NewRealtimeHandler(broadcastUC, cfg.PublicWSURL),
		User:     handlers.NewUserHandler(userUC),
		Goal:     handlers.NewGoalHandler(goalUC),
		Settings: handlers.NewSettingsHandler(settingsUC),
		Hub:      hub,
	}, cfg.Cors)

	// Listen
	port := ":" + cfg.Port
	log.Printf("Mood Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}

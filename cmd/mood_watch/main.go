package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calmspace_service/internal/realtime/subscriber"
	"calmspace_service/pkg/config"
	"calmspace_service/pkg/logger"
)

// mood_watch 訂閱全域 fan-out,把收到的訊息印到 stdout
// 斷線後會自動重連,Ctrl+C 結束
func main() {
	identity := flag.String("identity", "mood_watch", "subscriber identity")
	negotiateURL := flag.String("negotiate", "http://localhost:8080/api/negotiate", "negotiate endpoint")
	flag.Parse()

	logger.Log = logger.Initialize("mood_watch", config.EnvConfig.MoodServiceLogPath)

	sub, err := subscriber.New(*identity, *negotiateURL)
	if err != nil {
		log.Fatalf("Failed to create subscriber: %v", err)
	}

	sub.Start()
	defer sub.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	seen := 0
	for {
		select {
		case <-ticker.C:
			messages := sub.Messages()
			for _, m := range messages[seen:] {
				fmt.Printf("[%s] %s %s\n", m.ReceivedAt.Format(time.RFC3339), m.Type, string(m.Payload))
			}
			seen = len(messages)
		case <-quit:
			fmt.Printf("state: %s, %d messages received\n", sub.State(), len(sub.Messages()))
			return
		}
	}
}

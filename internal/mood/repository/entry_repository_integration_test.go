package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"calmspace_service/internal/mood/domain"
	"calmspace_service/pkg/database"
	"calmspace_service/pkg/logger"
	testtool "calmspace_service/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// **需要 docker,RUN_INTEGRATION=1 才會執行**
func TestEntryRepositoryIntegration(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") == "" {
		t.Skip("set RUN_INTEGRATION=1 to run integration tests")
	}

	ctx := context.Background()
	logger.SetNewNop()

	// **啟動 MongoDB**
	container, host, port, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "mongo:latest",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	})
	if err != nil {
		t.Fatalf("❌ Failed to start MongoDB container: %v", err)
	}
	defer container.Terminate(ctx)

	mongo, err := database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    fmt.Sprintf("mongodb://%s:%s", host, port),
		RetryCount:    5,
		RetryInterval: 5,
	}, "test_calmspace_db")
	if err != nil {
		t.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer mongo.Close(ctx)

	repo := NewMongoEntryRepository(mongo.Database)

	entries := []domain.MoodEntry{
		{ID: "u1-1", Mood: "happy", UserID: "u1", Timestamp: "2025-06-01T10:00:00.000Z", Note: "a"},
		{ID: "u1-2", Mood: "sad", UserID: "u1", Timestamp: "2025-06-02T10:00:00.000Z"},
		{ID: "u2-1", Mood: "calm", UserID: "u2", Timestamp: "2025-06-01T12:00:00.000Z"},
	}
	for i := range entries {
		assert.NoError(t, repo.Create(ctx, &entries[i]))
	}

	// point lookup
	got, err := repo.FindByID(ctx, "u1-1")
	assert.NoError(t, err)
	assert.Equal(t, "happy", got.Mood)

	// 只撈該 user 的 entries
	all, err := repo.FindByUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	// 分頁依時間倒序
	page, err := repo.FindPage(ctx, "u1", "", 10, 0)
	assert.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, "u1-2", page[0].ID)

	// date 前綴過濾
	filtered, err := repo.FindPage(ctx, "u1", "2025-06-01", 10, 0)
	assert.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "u1-1", filtered[0].ID)

	// 刪除全部
	deleted, err := repo.DeleteByUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := repo.FindByUser(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, remaining)
}

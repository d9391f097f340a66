package app

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"calmspace_service/internal/mood/domain"
	"calmspace_service/internal/mood/repository"
	rt_domain "calmspace_service/internal/realtime/domain"
	rt_repository "calmspace_service/internal/realtime/repository"
	user_domain "calmspace_service/internal/user/domain"
	"calmspace_service/pkg"
	errprocess "calmspace_service/pkg/err"
	"calmspace_service/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// displayNamePlaceholder 名稱解析失敗時的預設值
const displayNamePlaceholder = "Someone"

// UserLookup 解析顯示名稱需要的查詢
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*user_domain.User, error)
	FindByIDOrUserID(ctx context.Context, id string) (*user_domain.User, error)
}

// EventWriter event archive 寫入端 (kafka.Writer 滿足此介面)
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// MoodUseCase 心情紀錄的建立/查詢/統計與 broadcast publisher
type MoodUseCase struct {
	entryRepo        repository.EntryRepository
	users            UserLookup
	broadcaster      rt_repository.Broadcaster
	events           EventWriter // nil 時停用 archive
	broadcastChannel string
}

// NewMoodUseCase init mood use case
func NewMoodUseCase(
	entryRepo repository.EntryRepository,
	users UserLookup,
	broadcaster rt_repository.Broadcaster,
	events EventWriter,
	broadcastChannel string,
) *MoodUseCase {
	return &MoodUseCase{
		entryRepo:        entryRepo,
		users:            users,
		broadcaster:      broadcaster,
		events:           events,
		broadcastChannel: broadcastChannel,
	}
}

// CreateEntry 持久化一筆 mood entry,成功後 fan-out 通知所有訂閱者
// broadcast 是 best-effort,失敗不影響已寫入的 entry
func (uc *MoodUseCase) CreateEntry(ctx context.Context, mood, userID, timestamp, note string) (*domain.MoodEntry, error) {
	entry := &domain.MoodEntry{
		ID:        fmt.Sprintf("%s-%d", userID, time.Now().UnixMilli()),
		Mood:      mood,
		UserID:    userID,
		Timestamp: timestamp,
		Note:      note,
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, errprocess.Set(fmt.Sprintf("create mood entry %s failed: %v", entry.ID, err))
	}

	// entry 已落地,以下全部吞掉錯誤
	name := uc.resolveDisplayName(ctx, userID)

	payload := rt_domain.NotificationPayload{
		Mood:           entry.Mood,
		Timestamp:      entry.Timestamp,
		UserID:         entry.UserID,
		Note:           entry.Note,
		DisplayMessage: fmt.Sprintf("%s is feeling %s", name, entry.Mood),
		EntryID:        entry.ID,
	}

	msg := rt_domain.NewBroadcastMessage(rt_domain.TargetMoodUpdated, payload)
	if err := uc.broadcaster.Publish(uc.broadcastChannel, msg); err != nil {
		logger.Log.Errorf("mood broadcast failed:", err, zap.String("entryId", entry.ID))
	}

	uc.archiveEntryCreated(ctx, entry)

	return entry, nil
}

// resolveDisplayName 依序嘗試: point lookup → id/userId scan → placeholder
// 任何錯誤只記 log,一律不讓外層請求失敗
func (uc *MoodUseCase) resolveDisplayName(ctx context.Context, userID string) string {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		user, err = uc.users.FindByIDOrUserID(ctx, userID)
	}
	if err != nil || user == nil {
		logger.Log.Warn("resolve display name failed, using placeholder", zap.String("userId", userID))
		return displayNamePlaceholder
	}

	if user.Username != "" {
		return user.Username
	}
	if user.Name != "" {
		return pkg.FirstToken(user.Name)
	}
	return displayNamePlaceholder
}

// archiveEntryCreated 把 entry-created 事件寫進 kafka topic,供下游自動化流程消費
func (uc *MoodUseCase) archiveEntryCreated(ctx context.Context, entry *domain.MoodEntry) {
	if uc.events == nil {
		return
	}

	event := struct {
		Type  string            `json:"type"`
		Entry *domain.MoodEntry `json:"entry"`
	}{
		Type:  "entry_created",
		Entry: entry,
	}

	b, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorf("archive marshal failed:", err)
		return
	}

	if err := uc.events.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.UserID),
		Value: b,
	}); err != nil {
		logger.Log.Errorf("archive write failed:", err, zap.String("entryId", entry.ID))
	}
}

// History 依時間倒序分頁查詢
func (uc *MoodUseCase) History(ctx context.Context, userID, date string, limit, offset int) (*domain.HistoryPage, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := uc.entryRepo.FindPage(ctx, userID, date, limit, offset)
	if err != nil {
		return nil, err
	}

	formatted := make([]domain.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		var note *string
		if entry.Note != "" {
			n := entry.Note
			note = &n
		}
		formatted = append(formatted, domain.HistoryEntry{
			ID:        entry.ID,
			Mood:      entry.Mood,
			Timestamp: entry.Timestamp,
			Note:      note,
			Date:      dateOf(entry.Timestamp),
		})
	}

	return &domain.HistoryPage{
		Entries: formatted,
		Total:   len(formatted),
		Offset:  offset,
		Limit:   limit,
		HasMore: len(formatted) == limit,
	}, nil
}

// Stats 統計該用戶的紀錄
// mood 一律轉小寫比對,positive = happy/calm
func (uc *MoodUseCase) Stats(ctx context.Context, userID string) (*domain.MoodStats, error) {
	entries, err := uc.entryRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	moodCounts := map[string]int{}
	uniqueDates := map[string]struct{}{}
	positiveDays := map[string]struct{}{}

	for _, entry := range entries {
		date := dateOf(entry.Timestamp)
		uniqueDates[date] = struct{}{}

		normalized := strings.ToLower(entry.Mood)
		moodCounts[normalized]++

		if pkg.Contains(domain.PositiveMoods, normalized) {
			positiveDays[date] = struct{}{}
		}
	}

	mostCommon := "None"
	best := 0
	for mood, count := range moodCounts {
		if count > best {
			mostCommon = mood
			best = count
		}
	}

	daysTracked := len(uniqueDates)
	percentage := 0
	if daysTracked > 0 {
		percentage = int(math.Round(float64(len(positiveDays)) / float64(daysTracked) * 100))
	}

	return &domain.MoodStats{
		DaysTracked:            daysTracked,
		MostCommonMood:         mostCommon,
		PositiveDaysPercentage: percentage,
	}, nil
}

// DeleteAll 刪除該用戶全部紀錄
func (uc *MoodUseCase) DeleteAll(ctx context.Context, userID string) (int64, error) {
	return uc.entryRepo.DeleteByUser(ctx, userID)
}

// dateOf 從 ISO timestamp 取日期部分
func dateOf(timestamp string) string {
	if i := strings.Index(timestamp, "T"); i > 0 {
		return timestamp[:i]
	}
	if len(timestamp) >= 10 {
		return timestamp[:10]
	}
	return timestamp
}

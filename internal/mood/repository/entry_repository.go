package repository

import (
	"context"

	"calmspace_service/internal/mood/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EntryRepository definition mood entry persistence
type EntryRepository interface {
	// Create 寫入一筆 mood entry
	Create(ctx context.Context, entry *domain.MoodEntry) error
	// FindByID point lookup by entry id
	FindByID(ctx context.Context, id string) (*domain.MoodEntry, error)
	// FindByUser 撈出該用戶全部 entries (統計用)
	FindByUser(ctx context.Context, userID string) ([]domain.MoodEntry, error)
	// FindPage 依時間倒序分頁,date 為可選的日期前綴過濾
	FindPage(ctx context.Context, userID, date string, limit, offset int) ([]domain.MoodEntry, error)
	// DeleteByUser 刪除該用戶全部 entries,回傳刪除筆數
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

type entryRepository struct {
	coll *mongo.Collection
}

// NewMongoEntryRepository create an EntryRepository
func NewMongoEntryRepository(db *mongo.Database) EntryRepository {
	return &entryRepository{
		coll: db.Collection("moodEntries"),
	}
}

func (r *entryRepository) Create(ctx context.Context, entry *domain.MoodEntry) error {
	_, err := r.coll.InsertOne(ctx, entry)
	return err
}

func (r *entryRepository) FindByID(ctx context.Context, id string) (*domain.MoodEntry, error) {
	var entry domain.MoodEntry
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) FindByUser(ctx context.Context, userID string) ([]domain.MoodEntry, error) {
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	var entries []domain.MoodEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) FindPage(ctx context.Context, userID, date string, limit, offset int) ([]domain.MoodEntry, error) {
	filter := bson.M{"userId": userID}
	if date != "" {
		// timestamp 為 ISO 字串,日期過濾用前綴比對
		filter["timestamp"] = bson.M{"$regex": primitive.Regex{Pattern: "^" + date}}
	}

	opts := options.Find().
		SetSort(bson.M{"timestamp": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var entries []domain.MoodEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

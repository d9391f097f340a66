package repository

import (
	"context"

	"calmspace_service/internal/user/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SettingsRepository definition user settings access
type SettingsRepository interface {
	// Get point lookup by user id
	Get(ctx context.Context, userID string) (*domain.Settings, error)
	// Upsert create or update the settings document
	Upsert(ctx context.Context, settings *domain.Settings) error
}

type settingsRepository struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepository create a SettingsRepository
func NewMongoSettingsRepository(db *mongo.Database) SettingsRepository {
	return &settingsRepository{
		coll: db.Collection("userSettings"),
	}
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	var settings domain.Settings
	if err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *domain.Settings) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": settings.ID}, settings, opts)
	return err
}

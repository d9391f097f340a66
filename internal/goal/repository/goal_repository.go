package repository

import (
	"context"

	"calmspace_service/internal/goal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GoalRepository definition mood goal access
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	FindByID(ctx context.Context, goalID string) (*domain.Goal, error)
	// FindByUser 依建立時間升序
	FindByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	Replace(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, goalID string) error
}

type goalRepository struct {
	coll *mongo.Collection
}

// NewMongoGoalRepository create a GoalRepository
func NewMongoGoalRepository(db *mongo.Database) GoalRepository {
	return &goalRepository{
		coll: db.Collection("moodGoals"),
	}
}

func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	_, err := r.coll.InsertOne(ctx, goal)
	return err
}

func (r *goalRepository) FindByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	var goal domain.Goal
	if err := r.coll.FindOne(ctx, bson.M{"_id": goalID}).Decode(&goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) FindByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	var goals []domain.Goal
	if err := cur.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) Replace(ctx context.Context, goal *domain.Goal) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": goal.ID}, goal)
	return err
}

func (r *goalRepository) Delete(ctx context.Context, goalID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": goalID})
	return err
}

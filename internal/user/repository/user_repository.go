package repository

import (
	"context"

	"calmspace_service/internal/user/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository definition user document access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// FindByID point lookup by primary key
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDOrUserID scan fallback matching _id OR userId
	// 兩個條件都保留,與既有資料相容
	FindByIDOrUserID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Replace(ctx context.Context, user *domain.User) error
}

type userRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository create a UserRepository
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		coll: db.Collection("users"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDOrUserID(ctx context.Context, id string) (*domain.User, error) {
	// O(matching-records) scan,只在 point lookup 失敗時使用
	filter := bson.M{"$or": bson.A{
		bson.M{"_id": id},
		bson.M{"userId": id},
	}}
	var user domain.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Replace(ctx context.Context, user *domain.User) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mcms/internal/storage"
	"mcms/internal/user/models"
	"mcms/pkg/platform/sentinel"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Phone     string             `bson:"phone,omitempty"`
	Image     string             `bson:"image,omitempty"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d userDocument) toModel() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		Phone:     d.Phone,
		Image:     d.Image,
		Role:      models.Role(d.Role),
		CreatedAt: d.CreatedAt,
	}
}

// MongoUserStore persists users in the users collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) error {
	doc := userDocument{
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Image:     user.Image,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

func (s *MongoUserStore) UpdateProfile(ctx context.Context, email string, p models.Profile) (storage.UpdateResult, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"name": p.Name, "phone": p.Phone, "image": p.Image}},
	)
	if err != nil {
		return storage.UpdateResult{}, fmt.Errorf("update profile: %w", err)
	}
	return storage.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// UpsertRole sets the role of an existing user or creates a minimal one.
func (s *MongoUserStore) UpsertRole(ctx context.Context, user *models.User) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{
			"$set":         bson.M{"role": string(user.Role)},
			"$setOnInsert": bson.M{"name": user.Name, "createdAt": user.CreatedAt},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert user role: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mcms/internal/feedback/models"
)

type feedbackDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CampID    string             `bson:"campId"`
	CampName  string             `bson:"campName,omitempty"`
	UserEmail string             `bson:"userEmail"`
	UserName  string             `bson:"userName,omitempty"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// MongoFeedbackStore persists entries in the feedback collection.
type MongoFeedbackStore struct {
	coll *mongo.Collection
}

func NewMongoFeedbackStore(coll *mongo.Collection) *MongoFeedbackStore {
	return &MongoFeedbackStore{coll: coll}
}

func (s *MongoFeedbackStore) Insert(ctx context.Context, fb *models.Feedback) error {
	res, err := s.coll.InsertOne(ctx, feedbackDocument{
		CampID:    fb.CampID,
		CampName:  fb.CampName,
		UserEmail: fb.UserEmail,
		UserName:  fb.UserName,
		Rating:    fb.Rating,
		Comment:   fb.Comment,
		CreatedAt: fb.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		fb.ID = oid.Hex()
	}
	return nil
}

func (s *MongoFeedbackStore) List(ctx context.Context, email string) ([]*models.Feedback, error) {
	filter := bson.M{}
	if email != "" {
		filter["userEmail"] = email
	}
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	var docs []feedbackDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	out := make([]*models.Feedback, 0, len(docs))
	for _, d := range docs {
		out = append(out, &models.Feedback{
			ID:        d.ID.Hex(),
			CampID:    d.CampID,
			CampName:  d.CampName,
			UserEmail: d.UserEmail,
			UserName:  d.UserName,
			Rating:    d.Rating,
			Comment:   d.Comment,
			CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}

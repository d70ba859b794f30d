package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mcms/internal/payment/models"
)

type paymentDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	CampID        string             `bson:"campId"`
	TransactionID string             `bson:"transactionId"`
	Amount        float64            `bson:"amount"`
	Email         string             `bson:"email,omitempty"`
	Date          time.Time          `bson:"date"`
}

// MongoPaymentStore appends to the payments collection.
type MongoPaymentStore struct {
	coll *mongo.Collection
}

func NewMongoPaymentStore(coll *mongo.Collection) *MongoPaymentStore {
	return &MongoPaymentStore{coll: coll}
}

func (s *MongoPaymentStore) Insert(ctx context.Context, p *models.Payment) error {
	res, err := s.coll.InsertOne(ctx, paymentDocument{
		CampID:        p.CampID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Email:         p.Email,
		Date:          p.Date,
	})
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

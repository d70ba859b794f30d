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

	"mcms/internal/camp/models"
	"mcms/internal/storage"
	"mcms/pkg/platform/sentinel"
)

type campDocument struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	Title                  string             `bson:"title"`
	Image                  string             `bson:"image,omitempty"`
	Fee                    float64            `bson:"fee"`
	DateTime               string             `bson:"dateTime,omitempty"`
	Location               string             `bson:"location,omitempty"`
	HealthcareProfessional string             `bson:"healthcareProfessional,omitempty"`
	Description            string             `bson:"description,omitempty"`
	ParticipantCount       int64              `bson:"participantCount"`
	CreatedAt              time.Time          `bson:"createdAt"`
}

func (d campDocument) toModel() *models.Camp {
	return &models.Camp{
		ID:                     d.ID.Hex(),
		Title:                  d.Title,
		Image:                  d.Image,
		Fee:                    d.Fee,
		DateTime:               d.DateTime,
		Location:               d.Location,
		HealthcareProfessional: d.HealthcareProfessional,
		Description:            d.Description,
		ParticipantCount:       d.ParticipantCount,
		CreatedAt:              d.CreatedAt,
	}
}

func updateDocument(u models.Update) bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.Fee != nil {
		set["fee"] = *u.Fee
	}
	if u.DateTime != nil {
		set["dateTime"] = *u.DateTime
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.HealthcareProfessional != nil {
		set["healthcareProfessional"] = *u.HealthcareProfessional
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	return set
}

// MongoCampStore persists camps in the camps collection. Malformed ids
// match nothing.
type MongoCampStore struct {
	coll *mongo.Collection
}

func NewMongoCampStore(coll *mongo.Collection) *MongoCampStore {
	return &MongoCampStore{coll: coll}
}

func (s *MongoCampStore) Insert(ctx context.Context, camp *models.Camp) error {
	doc := campDocument{
		Title:                  camp.Title,
		Image:                  camp.Image,
		Fee:                    camp.Fee,
		DateTime:               camp.DateTime,
		Location:               camp.Location,
		HealthcareProfessional: camp.HealthcareProfessional,
		Description:            camp.Description,
		ParticipantCount:       camp.ParticipantCount,
		CreatedAt:              camp.CreatedAt,
	}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert camp: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		camp.ID = oid.Hex()
	}
	return nil
}

func (s *MongoCampStore) List(ctx context.Context) ([]*models.Camp, error) {
	// ObjectIDs grow with insertion time, so this is creation order.
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find camps: %w", err)
	}
	var docs []campDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode camps: %w", err)
	}
	out := make([]*models.Camp, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *MongoCampStore) FindByID(ctx context.Context, id string) (*models.Camp, error) {
	oid, ok := storage.ParseID(id)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	var doc campDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find camp: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoCampStore) Update(ctx context.Context, id string, update models.Update) (storage.UpdateResult, error) {
	oid, ok := storage.ParseID(id)
	if !ok {
		return storage.UpdateResult{}, nil
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updateDocument(update)})
	if err != nil {
		return storage.UpdateResult{}, fmt.Errorf("update camp: %w", err)
	}
	return storage.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (s *MongoCampStore) Delete(ctx context.Context, id string) (storage.DeleteResult, error) {
	oid, ok := storage.ParseID(id)
	if !ok {
		return storage.DeleteResult{}, nil
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storage.DeleteResult{}, fmt.Errorf("delete camp: %w", err)
	}
	return storage.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func (s *MongoCampStore) IncrementParticipants(ctx context.Context, id string, delta int64) (storage.UpdateResult, error) {
	oid, ok := storage.ParseID(id)
	if !ok {
		return storage.UpdateResult{}, nil
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"participantCount": delta}})
	if err != nil {
		return storage.UpdateResult{}, fmt.Errorf("increment participant count: %w", err)
	}
	return storage.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

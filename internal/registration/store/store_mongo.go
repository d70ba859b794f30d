package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mcms/internal/registration/models"
	"mcms/internal/storage"
	"mcms/pkg/platform/sentinel"
)

type registrationDocument struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	CampID                 string             `bson:"campId"`
	CampName               string             `bson:"campName,omitempty"`
	Fee                    float64            `bson:"fee"`
	Location               string             `bson:"location,omitempty"`
	HealthcareProfessional string             `bson:"healthcareProfessional,omitempty"`
	ParticipantName        string             `bson:"participantName,omitempty"`
	UserEmail              string             `bson:"userEmail"`
	Age                    int                `bson:"age,omitempty"`
	Phone                  string             `bson:"phone,omitempty"`
	Gender                 string             `bson:"gender,omitempty"`
	EmergencyContact       string             `bson:"emergencyContact,omitempty"`
	ConfirmationStatus     string             `bson:"confirmationStatus"`
	PaymentStatus          string             `bson:"paymentStatus"`
	TransactionID          string             `bson:"transactionId,omitempty"`
	CreatedAt              time.Time          `bson:"createdAt"`
}

func fromModel(r *models.Registration) registrationDocument {
	return registrationDocument{
		CampID:                 r.CampID,
		CampName:               r.CampName,
		Fee:                    r.Fee,
		Location:               r.Location,
		HealthcareProfessional: r.HealthcareProfessional,
		ParticipantName:        r.ParticipantName,
		UserEmail:              r.UserEmail,
		Age:                    r.Age,
		Phone:                  r.Phone,
		Gender:                 r.Gender,
		EmergencyContact:       r.EmergencyContact,
		ConfirmationStatus:     string(r.ConfirmationStatus),
		PaymentStatus:          string(r.PaymentStatus),
		TransactionID:          r.TransactionID,
		CreatedAt:              r.CreatedAt,
	}
}

func (d registrationDocument) toModel() *models.Registration {
	return &models.Registration{
		ID:                     d.ID.Hex(),
		CampID:                 d.CampID,
		CampName:               d.CampName,
		Fee:                    d.Fee,
		Location:               d.Location,
		HealthcareProfessional: d.HealthcareProfessional,
		ParticipantName:        d.ParticipantName,
		UserEmail:              d.UserEmail,
		Age:                    d.Age,
		Phone:                  d.Phone,
		Gender:                 d.Gender,
		EmergencyContact:       d.EmergencyContact,
		ConfirmationStatus:     models.ConfirmationStatus(d.ConfirmationStatus),
		PaymentStatus:          models.PaymentStatus(d.PaymentStatus),
		TransactionID:          d.TransactionID,
		CreatedAt:              d.CreatedAt,
	}
}

// MongoRegistrationStore persists registrations in the registeredCamps
// collection. Malformed ids match nothing.
type MongoRegistrationStore struct {
	coll *mongo.Collection
}

func NewMongoRegistrationStore(coll *mongo.Collection) *MongoRegistrationStore {
	return &MongoRegistrationStore{coll: coll}
}

func (s *MongoRegistrationStore) Insert(ctx context.Context, reg *models.Registration) error {
	res, err := s.coll.InsertOne(ctx, fromModel(reg))
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		reg.ID = oid.Hex()
	}
	return nil
}

func (s *MongoRegistrationStore) findOne(ctx context.Context, filter bson.M) (*models.Registration, error) {
	var doc registrationDocument
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find registration: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoRegistrationStore) FindByCampAndEmail(ctx context.Context, campID, email string) (*models.Registration, error) {
	return s.findOne(ctx, bson.M{"campId": campID, "userEmail": email})
}

func (s *MongoRegistrationStore) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	oid, ok := storage.ParseID(id)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoRegistrationStore) find(ctx context.Context, filter bson.M) ([]*models.Registration, error) {
	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	var docs []registrationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	out := make([]*models.Registration, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *MongoRegistrationStore) ListByEmail(ctx context.Context, email string) ([]*models.Registration, error) {
	return s.find(ctx, bson.M{"userEmail": email})
}

func (s *MongoRegistrationStore) ListAll(ctx context.Context) ([]*models.Registration, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoRegistrationStore) update(ctx context.Context, id string, set bson.M) (storage.UpdateResult, error) {
	oid, ok := storage.ParseID(id)
	if !ok {
		return storage.UpdateResult{}, nil
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return storage.UpdateResult{}, fmt.Errorf("update registration: %w", err)
	}
	return storage.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

func (s *MongoRegistrationStore) SetConfirmation(ctx context.Context, id string, status models.ConfirmationStatus) (storage.UpdateResult, error) {
	return s.update(ctx, id, bson.M{"confirmationStatus": string(status)})
}

func (s *MongoRegistrationStore) MarkPaid(ctx context.Context, id, transactionID string) (storage.UpdateResult, error) {
	return s.update(ctx, id, bson.M{
		"paymentStatus": string(models.PaymentPaid),
		"transactionId": transactionID,
	})
}

func (s *MongoRegistrationStore) Delete(ctx context.Context, id string) (storage.DeleteResult, error) {
	oid, ok := storage.ParseID(id)
	if !ok {
		return storage.DeleteResult{}, nil
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storage.DeleteResult{}, fmt.Errorf("delete registration: %w", err)
	}
	return storage.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

package app

import (
	campservice "mcms/internal/camp/service"
	campstore "mcms/internal/camp/store"
	feedbackservice "mcms/internal/feedback/service"
	feedbackstore "mcms/internal/feedback/store"
	paymentstore "mcms/internal/payment/store"
	"mcms/internal/platform/mongo"
	registrationservice "mcms/internal/registration/service"
	registrationstore "mcms/internal/registration/store"
	userservice "mcms/internal/user/service"
	userstore "mcms/internal/user/store"
)

// CampStore serves both the camp catalogue and the registration workflow's
// participant counter.
type CampStore interface {
	campservice.Store
	registrationservice.CampCounter
}

// Stores is the full persistence layer for one process.
type Stores struct {
	Users         userservice.Store
	Camps         CampStore
	Registrations registrationservice.Store
	Payments      registrationservice.PaymentStore
	Feedback      feedbackservice.Store
}

// NewMemoryStores keeps every collection in process memory.
func NewMemoryStores() Stores {
	return Stores{
		Users:         userstore.NewInMemoryUserStore(),
		Camps:         campstore.NewInMemoryCampStore(),
		Registrations: registrationstore.NewInMemoryRegistrationStore(),
		Payments:      paymentstore.NewInMemoryPaymentStore(),
		Feedback:      feedbackstore.NewInMemoryFeedbackStore(),
	}
}

// NewMongoStores binds each store to its collection on client.
func NewMongoStores(client *mongo.Client) Stores {
	return Stores{
		Users:         userstore.NewMongoUserStore(client.Collection(mongo.CollectionUsers)),
		Camps:         campstore.NewMongoCampStore(client.Collection(mongo.CollectionCamps)),
		Registrations: registrationstore.NewMongoRegistrationStore(client.Collection(mongo.CollectionRegistrations)),
		Payments:      paymentstore.NewMongoPaymentStore(client.Collection(mongo.CollectionPayments)),
		Feedback:      feedbackstore.NewMongoFeedbackStore(client.Collection(mongo.CollectionFeedback)),
	}
}

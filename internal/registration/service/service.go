package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,CampCounter,PaymentStore,PaymentGateway

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	paymentModels "mcms/internal/payment/models"
	"mcms/internal/platform/metrics"
	"mcms/internal/registration/models"
	"mcms/internal/storage"
	dErrors "mcms/pkg/domain-errors"
	"mcms/pkg/platform/sentinel"
	"mcms/pkg/requestcontext"
)

const tracerName = "mcms/registration"

// Store persists registrations. It enforces no uniqueness; the duplicate
// check lives in Create.
type Store interface {
	Insert(ctx context.Context, reg *models.Registration) error
	FindByCampAndEmail(ctx context.Context, campID, email string) (*models.Registration, error)
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	ListByEmail(ctx context.Context, email string) ([]*models.Registration, error)
	ListAll(ctx context.Context) ([]*models.Registration, error)
	SetConfirmation(ctx context.Context, id string, status models.ConfirmationStatus) (storage.UpdateResult, error)
	MarkPaid(ctx context.Context, id, transactionID string) (storage.UpdateResult, error)
	Delete(ctx context.Context, id string) (storage.DeleteResult, error)
}

// CampCounter bumps the denormalized participant count on a camp.
type CampCounter interface {
	IncrementParticipants(ctx context.Context, campID string, delta int64) (storage.UpdateResult, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, p *paymentModels.Payment) error
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (paymentModels.Intent, error)
}

// Service runs the registration and payment workflow. Each step is a
// separate store write; nothing is rolled back when a later step fails.
type Service struct {
	store    Store
	camps    CampCounter
	payments PaymentStore
	gateway  PaymentGateway
	currency string
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCurrency sets the ISO currency for payment intents (default usd).
func WithCurrency(currency string) Option {
	return func(s *Service) {
		if currency != "" {
			s.currency = currency
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func New(store Store, camps CampCounter, payments PaymentStore, gateway PaymentGateway, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("registration store is required")
	}
	if camps == nil {
		return nil, errors.New("camp counter is required")
	}
	if payments == nil {
		return nil, errors.New("payment store is required")
	}
	if gateway == nil {
		return nil, errors.New("payment gateway is required")
	}
	s := &Service{
		store:    store,
		camps:    camps,
		payments: payments,
		gateway:  gateway,
		currency: "usd",
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "registration."+op, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Create registers userEmail for campID. The new record always starts
// pending and unpaid. The camp's participant count is bumped afterwards as a
// best-effort write; a failure there is logged and does not fail the call.
func (s *Service) Create(ctx context.Context, campID, userEmail string, details models.Details) (reg *models.Registration, err error) {
	ctx, span := s.start(ctx, "Create", attribute.String("camp.id", campID))
	defer func() { endSpan(span, err) }()

	requestID := requestcontext.RequestID(ctx)

	existing, err := s.store.FindByCampAndEmail(ctx, campID, userEmail)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing registration")
	}
	if existing != nil {
		s.metrics.IncrementDuplicateRegistrations()
		s.logger.InfoContext(ctx, "duplicate registration rejected",
			"camp_id", campID,
			"request_id", requestID,
		)
		return nil, dErrors.New(dErrors.CodeConflict, "You already registered for this camp.")
	}

	reg = &models.Registration{
		CampID:                 campID,
		CampName:               details.CampName,
		Fee:                    details.Fee,
		Location:               details.Location,
		HealthcareProfessional: details.HealthcareProfessional,
		ParticipantName:        details.ParticipantName,
		UserEmail:              userEmail,
		Age:                    details.Age,
		Phone:                  details.Phone,
		Gender:                 details.Gender,
		EmergencyContact:       details.EmergencyContact,
		ConfirmationStatus:     models.ConfirmationPending,
		PaymentStatus:          models.PaymentUnpaid,
		CreatedAt:              requestcontext.Now(ctx),
	}
	if err := s.store.Insert(ctx, reg); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create registration")
	}
	s.metrics.IncrementRegistrationsCreated()
	span.SetAttributes(attribute.String("registration.id", reg.ID))

	res, incErr := s.camps.IncrementParticipants(ctx, campID, 1)
	if incErr != nil || res.MatchedCount == 0 {
		s.metrics.IncrementParticipantIncrementFailures()
		s.logger.WarnContext(ctx, "participant count not incremented",
			"camp_id", campID,
			"registration_id", reg.ID,
			"request_id", requestID,
			"error", incErr,
		)
	}

	s.logger.InfoContext(ctx, "registration created",
		"camp_id", campID,
		"registration_id", reg.ID,
		"request_id", requestID,
	)
	return reg, nil
}

// ListForUser returns the registrations of one participant in store order.
func (s *Service) ListForUser(ctx context.Context, email string) (regs []*models.Registration, err error) {
	ctx, span := s.start(ctx, "ListForUser")
	defer func() { endSpan(span, err) }()

	if email == "" {
		return []*models.Registration{}, nil
	}
	regs, err = s.store.ListByEmail(ctx, email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	return regs, nil
}

// PaymentHistory lists the registrations of one participant, paid or not.
func (s *Service) PaymentHistory(ctx context.Context, email string) ([]*models.Registration, error) {
	return s.ListForUser(ctx, email)
}

// ListAll returns every registration.
func (s *Service) ListAll(ctx context.Context) (regs []*models.Registration, err error) {
	ctx, span := s.start(ctx, "ListAll")
	defer func() { endSpan(span, err) }()

	regs, err = s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	return regs, nil
}

// Confirm marks a registration confirmed whatever its payment status.
// Confirming twice is not an error.
func (s *Service) Confirm(ctx context.Context, id string) (reg *models.Registration, err error) {
	ctx, span := s.start(ctx, "Confirm", attribute.String("registration.id", id))
	defer func() { endSpan(span, err) }()

	res, err := s.store.SetConfirmation(ctx, id, models.ConfirmationConfirmed)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to confirm registration")
	}
	if res.MatchedCount == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "Registration not found")
	}
	s.metrics.IncrementRegistrationsConfirmed()

	reg, err = s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Registration not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	s.logger.InfoContext(ctx, "registration confirmed",
		"registration_id", id,
		"request_id", requestcontext.RequestID(ctx),
	)
	return reg, nil
}

// Cancel deletes a registration unless it is both paid and confirmed. The
// camp's participant count is left unchanged.
func (s *Service) Cancel(ctx context.Context, id, callerEmail string) (res storage.DeleteResult, err error) {
	ctx, span := s.start(ctx, "Cancel", attribute.String("registration.id", id))
	defer func() { endSpan(span, err) }()

	reg, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return storage.DeleteResult{}, dErrors.New(dErrors.CodeNotFound, "Not found")
		}
		return storage.DeleteResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	if reg.IsLocked() {
		s.logger.WarnContext(ctx, "cancellation of paid confirmed registration refused",
			"registration_id", id,
			"caller", callerEmail,
			"request_id", requestcontext.RequestID(ctx),
		)
		return storage.DeleteResult{}, dErrors.New(dErrors.CodeForbidden, "Cannot cancel a confirmed paid registration.")
	}

	res, err = s.store.Delete(ctx, id)
	if err != nil {
		return storage.DeleteResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to cancel registration")
	}
	s.metrics.IncrementRegistrationsCancelled()
	s.logger.InfoContext(ctx, "registration cancelled",
		"registration_id", id,
		"caller", callerEmail,
		"request_id", requestcontext.RequestID(ctx),
	)
	return res, nil
}

// CompletePayment appends the payment and then marks paid the registration
// whose id equals payment.CampID. An update that matches nothing is reported
// in the outcome, not as an error. A failed update leaves the payment in
// place.
func (s *Service) CompletePayment(ctx context.Context, payment paymentModels.Payment) (out *models.PaymentOutcome, err error) {
	ctx, span := s.start(ctx, "CompletePayment",
		attribute.String("camp.id", payment.CampID),
		attribute.String("payment.transaction_id", payment.TransactionID),
	)
	defer func() { endSpan(span, err) }()

	requestID := requestcontext.RequestID(ctx)
	payment.ID = ""
	if payment.Date.IsZero() {
		payment.Date = requestcontext.Now(ctx)
	}
	if err := s.payments.Insert(ctx, &payment); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record payment")
	}
	s.metrics.IncrementPaymentsRecorded()

	res, err := s.store.MarkPaid(ctx, payment.CampID, payment.TransactionID)
	if err != nil {
		s.logger.ErrorContext(ctx, "payment recorded but registration not updated",
			"payment_id", payment.ID,
			"camp_id", payment.CampID,
			"request_id", requestID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update registration payment status")
	}
	if res.MatchedCount == 0 {
		s.metrics.IncrementPaymentUpdatesUnmatched()
		s.logger.WarnContext(ctx, "payment matched no registration",
			"payment_id", payment.ID,
			"camp_id", payment.CampID,
			"request_id", requestID,
		)
	}

	return &models.PaymentOutcome{
		PaymentResult: storage.InsertResult{InsertedID: payment.ID},
		UpdateResult:  res,
	}, nil
}

// CreatePaymentIntent asks the gateway for a client secret covering price.
// The gateway is called once; failures are not retried.
func (s *Service) CreatePaymentIntent(ctx context.Context, rawPrice string) (secret string, err error) {
	ctx, span := s.start(ctx, "CreatePaymentIntent")
	defer func() { endSpan(span, err) }()

	price, err := ParsePrice(rawPrice)
	if err != nil {
		return "", err
	}
	amount := ToMinorUnits(price)
	span.SetAttributes(attribute.Int64("payment.amount_minor", amount))

	intent, err := s.gateway.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		s.metrics.IncrementPaymentIntents("failed")
		s.logger.ErrorContext(ctx, "payment gateway error",
			"amount", amount,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return "", dErrors.Wrap(err, dErrors.CodeGateway, "Failed to create payment intent")
	}
	s.metrics.IncrementPaymentIntents("created")
	return intent.ClientSecret, nil
}

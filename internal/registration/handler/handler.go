package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	paymentModels "mcms/internal/payment/models"
	"mcms/internal/platform/middleware"
	"mcms/internal/registration/models"
	"mcms/internal/storage"
	dErrors "mcms/pkg/domain-errors"
	emailutil "mcms/pkg/email"
	"mcms/pkg/platform/httputil"
	"mcms/pkg/requestcontext"
)

// Service is the registration workflow as seen by HTTP.
type Service interface {
	Create(ctx context.Context, campID, userEmail string, details models.Details) (*models.Registration, error)
	ListForUser(ctx context.Context, email string) ([]*models.Registration, error)
	PaymentHistory(ctx context.Context, email string) ([]*models.Registration, error)
	ListAll(ctx context.Context) ([]*models.Registration, error)
	Confirm(ctx context.Context, id string) (*models.Registration, error)
	Cancel(ctx context.Context, id, callerEmail string) (storage.DeleteResult, error)
	CompletePayment(ctx context.Context, payment paymentModels.Payment) (*models.PaymentOutcome, error)
	CreatePaymentIntent(ctx context.Context, rawPrice string) (string, error)
}

// Handler serves registration and payment endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
	guards  middleware.Guards
}

func New(service Service, logger *slog.Logger, guards middleware.Guards) *Handler {
	return &Handler{service: service, logger: logger, guards: guards}
}

// Register mounts registration and payment routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registeredCamps", h.HandleListForUser)
	r.Get("/payment-history", h.HandlePaymentHistory)

	r.Group(func(r chi.Router) {
		r.Use(h.guards.WriteLimited)
		r.Post("/registeredCamps", h.HandleCreate)
		r.Post("/create-payment-intent", h.HandleCreatePaymentIntent)
		r.Post("/payments", h.HandleCompletePayment)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.guards.Authenticated)
		r.Delete("/registeredCamps/{id}", h.HandleCancel)
		r.With(h.guards.Admin).Get("/admin/registeredCamps", h.HandleListAll)
		r.With(h.guards.Admin).Patch("/registeredCamps/confirm/{id}", h.HandleConfirm)
	})
}

func (h *Handler) writeFailure(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.ToHTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func emailQuery(r *http.Request) string {
	return emailutil.Normalize(r.URL.Query().Get("email"))
}

// HandleCreate handles POST /registeredCamps.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateRegistrationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	reg, err := h.service.Create(ctx, req.CampID, req.UserEmail, req.details())
	if err != nil {
		h.writeFailure(ctx, w, "registration failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

// HandleListForUser handles GET /registeredCamps?email=.
func (h *Handler) HandleListForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	regs, err := h.service.ListForUser(ctx, emailQuery(r))
	if err != nil {
		h.writeFailure(ctx, w, "failed to list registrations", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, regs)
}

// HandlePaymentHistory handles GET /payment-history?email=.
func (h *Handler) HandlePaymentHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	regs, err := h.service.PaymentHistory(ctx, emailQuery(r))
	if err != nil {
		h.writeFailure(ctx, w, "failed to load payment history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, regs)
}

// HandleListAll handles GET /admin/registeredCamps.
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	regs, err := h.service.ListAll(ctx)
	if err != nil {
		h.writeFailure(ctx, w, "failed to list registrations", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, regs)
}

// HandleConfirm handles PATCH /registeredCamps/confirm/{id}.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reg, err := h.service.Confirm(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeFailure(ctx, w, "failed to confirm registration", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

// HandleCancel handles DELETE /registeredCamps/{id}.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.Cancel(ctx, chi.URLParam(r, "id"), requestcontext.UserEmail(ctx))
	if err != nil {
		h.writeFailure(ctx, w, "failed to cancel registration", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleCreatePaymentIntent handles POST /create-payment-intent.
func (h *Handler) HandleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PaymentIntentRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeFailure(ctx, w, "failed to decode request", err)
		return
	}
	secret, err := h.service.CreatePaymentIntent(ctx, req.PriceText())
	if err != nil {
		h.writeFailure(ctx, w, "payment intent failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PaymentIntentResponse{ClientSecret: secret})
}

// HandleCompletePayment handles POST /payments.
func (h *Handler) HandleCompletePayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CompletePaymentRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	out, err := h.service.CompletePayment(ctx, req.payment())
	if err != nil {
		h.writeFailure(ctx, w, "payment completion failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

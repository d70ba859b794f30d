package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mcms/internal/feedback/models"
	"mcms/internal/platform/middleware"
	"mcms/internal/storage"
	emailutil "mcms/pkg/email"
	"mcms/pkg/platform/httputil"
	"mcms/pkg/platform/validation"
	"mcms/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, fb models.Feedback) (storage.InsertResult, error)
	List(ctx context.Context, email string) ([]*models.Feedback, error)
}

// CreateFeedbackRequest is the body of POST /feedback.
type CreateFeedbackRequest struct {
	CampID    string `json:"campId" validate:"required"`
	CampName  string `json:"campName"`
	UserEmail string `json:"userEmail" validate:"required,email"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating" validate:"gte=1,lte=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

func (r *CreateFeedbackRequest) Normalize() {
	r.CampID = strings.TrimSpace(r.CampID)
	r.UserEmail = emailutil.Normalize(r.UserEmail)
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *CreateFeedbackRequest) Validate() error {
	return validation.Struct(r)
}

type Handler struct {
	service Service
	logger  *slog.Logger
	guards  middleware.Guards
}

func New(service Service, logger *slog.Logger, guards middleware.Guards) *Handler {
	return &Handler{service: service, logger: logger, guards: guards}
}

func (h *Handler) Register(r chi.Router) {
	r.With(h.guards.WriteLimited).Post("/feedback", h.HandleCreate)
	r.Get("/feedback", h.HandleList)
}

// HandleCreate handles POST /feedback.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	req, ok := httputil.DecodeAndPrepare[CreateFeedbackRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.service.Create(ctx, models.Feedback{
		CampID:    req.CampID,
		CampName:  req.CampName,
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create feedback",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleList handles GET /feedback?email=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := emailutil.Normalize(r.URL.Query().Get("email"))
	entries, err := h.service.List(ctx, email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list feedback",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mcms/internal/platform/middleware"
	"mcms/internal/storage"
	"mcms/internal/user/models"
	"mcms/pkg/platform/httputil"
	"mcms/pkg/requestcontext"
)

// Service defines the user operations the handler needs.
type Service interface {
	Create(ctx context.Context, email, name, image string) (*models.CreateResult, error)
	Get(ctx context.Context, email string) (*models.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, email string, p models.Profile) (storage.UpdateResult, error)
}

// Handler serves account and profile endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
	guards  middleware.Guards
}

func New(service Service, logger *slog.Logger, guards middleware.Guards) *Handler {
	return &Handler{service: service, logger: logger, guards: guards}
}

// Register mounts user routes.
func (h *Handler) Register(r chi.Router) {
	r.With(h.guards.AuthLimited).Post("/users", h.HandleCreate)

	r.Group(func(r chi.Router) {
		r.Use(h.guards.Authenticated)
		r.Get("/participant/profile/{email}", h.HandleGetProfile)
		r.With(h.guards.Self("email")).Get("/user/admin/{email}", h.HandleIsAdmin)
		r.With(h.guards.Self("email")).Put("/user/profile/{email}", h.HandleUpdateProfile)
		r.With(h.guards.Admin).Get("/user/profile/{email}", h.HandleGetProfile)
	})
}

// HandleCreate handles POST /users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateUserRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Create(ctx, req.Email, req.Name, req.Image)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create user",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleIsAdmin handles GET /user/admin/{email}.
func (h *Handler) HandleIsAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	admin, err := h.service.IsAdmin(ctx, chi.URLParam(r, "email"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve admin flag",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"admin": admin})
}

// HandleGetProfile serves both the admin and the participant profile routes.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.service.Get(ctx, chi.URLParam(r, "email"))
	if err != nil {
		h.logger.WarnContext(ctx, "profile lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

// HandleUpdateProfile handles PUT /user/profile/{email}.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.UpdateProfile(ctx, chi.URLParam(r, "email"), models.Profile{
		Name:  req.Name,
		Phone: req.Phone,
		Image: req.Image,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to update profile",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

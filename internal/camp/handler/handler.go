package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mcms/internal/camp/models"
	"mcms/internal/platform/middleware"
	"mcms/internal/storage"
	"mcms/pkg/platform/httputil"
	"mcms/pkg/requestcontext"
)

type Service interface {
	Create(ctx context.Context, camp models.Camp) (storage.InsertResult, error)
	List(ctx context.Context) ([]*models.Camp, error)
	Get(ctx context.Context, id string) (*models.Camp, error)
	Update(ctx context.Context, id string, update models.Update) (storage.UpdateResult, error)
	Delete(ctx context.Context, id string) (storage.DeleteResult, error)
}

// Handler serves the camp catalogue.
type Handler struct {
	service Service
	logger  *slog.Logger
	guards  middleware.Guards
}

func New(service Service, logger *slog.Logger, guards middleware.Guards) *Handler {
	return &Handler{service: service, logger: logger, guards: guards}
}

// Register mounts camp routes. Reads are public, writes need an admin.
func (h *Handler) Register(r chi.Router) {
	r.Get("/camp", h.HandleList)
	r.Get("/camp/{id}", h.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(h.guards.Authenticated, h.guards.Admin)
		r.Post("/camp", h.HandleCreate)
		r.Put("/camp/{id}", h.HandleUpdate)
		r.Delete("/delete-camp/{campId}", h.HandleDelete)
	})
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

// HandleCreate handles POST /camp.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CreateCampRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	res, err := h.service.Create(ctx, req.toModel())
	if err != nil {
		h.fail(ctx, w, "failed to create camp", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleList handles GET /camp.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	camps, err := h.service.List(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list camps", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, camps)
}

// HandleGet handles GET /camp/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	camp, err := h.service.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, w, "camp lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, camp)
}

// HandleUpdate handles PUT /camp/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdateCampRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	res, err := h.service.Update(ctx, chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		h.fail(ctx, w, "failed to update camp", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleDelete handles DELETE /delete-camp/{campId}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.Delete(ctx, chi.URLParam(r, "campId"))
	if err != nil {
		h.fail(ctx, w, "failed to delete camp", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

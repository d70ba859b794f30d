// Package handler issues bearer tokens. Identity itself is established by the
// front end's sign-in provider; this endpoint only exchanges an email for a
// signed token.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mcms/internal/platform/middleware"
	emailutil "mcms/pkg/email"
	"mcms/pkg/platform/httputil"
	"mcms/pkg/platform/validation"
	"mcms/pkg/requestcontext"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateAccessToken(email string, expiresIn time.Duration) (string, error)
}

type Handler struct {
	issuer TokenIssuer
	ttl    time.Duration
	logger *slog.Logger
	guards middleware.Guards
}

func New(issuer TokenIssuer, ttl time.Duration, logger *slog.Logger, guards middleware.Guards) *Handler {
	return &Handler{issuer: issuer, ttl: ttl, logger: logger, guards: guards}
}

func (h *Handler) Register(r chi.Router) {
	r.With(h.guards.AuthLimited).Post("/jwt", h.HandleToken)
}

type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *TokenRequest) Normalize() {
	r.Email = emailutil.Normalize(r.Email)
}

func (r *TokenRequest) Validate() error {
	return validation.Struct(r)
}

type TokenResponse struct {
	Token string `json:"token"`
}

// HandleToken handles POST /jwt.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	token, err := h.issuer.GenerateAccessToken(req.Email, h.ttl)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "token issued",
		"request_id", requestID,
		"email", req.Email,
	)
	httputil.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}

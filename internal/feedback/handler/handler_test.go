package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcms/internal/feedback/models"
	"mcms/internal/feedback/service"
	"mcms/internal/feedback/store"
	"mcms/internal/platform/middleware"
	"mcms/pkg/testutil"
)

type brokenStore struct{}

func (brokenStore) Insert(context.Context, *models.Feedback) error { return errors.New("db down") }
func (brokenStore) List(context.Context, string) ([]*models.Feedback, error) {
	return nil, errors.New("db down")
}

func router(s service.Store) http.Handler {
	r := chi.NewRouter()
	New(service.New(s), slog.New(slog.DiscardHandler), middleware.Guards{
		WriteLimited: func(next http.Handler) http.Handler { return next },
	}).Register(r)
	return r
}

func TestFeedback(t *testing.T) {
	r := router(store.NewInMemoryFeedbackStore())

	post := func(body map[string]any) int {
		return testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/feedback", body)).Code
	}

	require.Equal(t, http.StatusOK, post(map[string]any{"campId": "c1", "userEmail": "P@example.com", "rating": 5, "comment": "great"}))
	require.Equal(t, http.StatusOK, post(map[string]any{"campId": "c1", "userEmail": "q@example.com", "rating": 3}))
	assert.Equal(t, http.StatusBadRequest, post(map[string]any{"campId": "c1", "userEmail": "q@example.com", "rating": 6}))
	assert.Equal(t, http.StatusBadRequest, post(map[string]any{"campId": "c1", "userEmail": "q@example.com"}))
	assert.Equal(t, http.StatusBadRequest, post(map[string]any{"userEmail": "q@example.com", "rating": 2}))

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/feedback?email=p@example.com"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	entries := *testutil.UnmarshalResponse[[]models.Feedback](t, rr)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Rating)
	assert.Equal(t, "great", entries[0].Comment)

	rr = testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/feedback"))
	assert.Len(t, *testutil.UnmarshalResponse[[]models.Feedback](t, rr), 2)
}

func TestFeedbackStoreFailure(t *testing.T) {
	r := router(brokenStore{})

	rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/feedback", map[string]any{"campId": "c1", "userEmail": "p@example.com", "rating": 4}))
	testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
	testutil.AssertJSONContains(t, rr, "message", "internal server error")

	rr = testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/feedback"))
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}

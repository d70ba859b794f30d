package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcms/internal/camp/models"
	"mcms/internal/camp/service"
	"mcms/internal/camp/store"
	jwttoken "mcms/internal/jwt_token"
	"mcms/internal/platform/middleware"
	"mcms/internal/storage"
	userService "mcms/internal/user/service"
	userStore "mcms/internal/user/store"
	"mcms/pkg/testutil"
)

func newRouter(t *testing.T) (http.Handler, *jwttoken.JWTService) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	users := userService.New(userStore.NewInMemoryUserStore())
	require.NoError(t, users.SeedAdmins(context.Background(), []string{"admin@example.com"}))

	jwt := jwttoken.NewJWTService("test-secret", "mcms")
	guards := middleware.NewGuards(jwttoken.NewJWTServiceAdapter(jwt), users, logger)

	r := chi.NewRouter()
	New(service.New(store.NewInMemoryCampStore()), logger, guards).Register(r)
	return r, jwt
}

func bearer(t *testing.T, jwt *jwttoken.JWTService, email string) string {
	t.Helper()
	tok, err := jwt.GenerateAccessToken(email, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestCampLifecycle(t *testing.T) {
	router, jwt := newRouter(t)
	admin := bearer(t, jwt, "admin@example.com")

	var campID string

	testutil.Given(t, "an admin creates a camp", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/camp", map[string]any{
			"title": "Free eye checkup", "fee": 15.5, "participantCount": 40,
		}), admin)
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		campID = testutil.UnmarshalResponse[storage.InsertResult](t, rr).InsertedID
		require.NotEmpty(t, campID)

		testutil.When(t, "anyone fetches it", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/camp/"+campID))
			testutil.Then(t, "the count starts at zero", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				camp := testutil.UnmarshalResponse[models.Camp](t, rr)
				assert.Equal(t, int64(0), camp.ParticipantCount)
				assert.Equal(t, 15.5, camp.Fee)
			})
		})

		testutil.When(t, "the admin updates the title", func(t *testing.T) {
			req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPut, "/camp/"+campID, map[string]any{"title": "Eye camp"}), admin)
			rr := testutil.DoRequest(router, req)
			testutil.Then(t, "one document matches", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				testutil.AssertJSONContains(t, rr, "matchedCount", float64(1))
			})
		})

		testutil.When(t, "the admin deletes it", func(t *testing.T) {
			req := testutil.WithBearer(testutil.NewRequest(t, http.MethodDelete, "/delete-camp/"+campID), admin)
			rr := testutil.DoRequest(router, req)
			testutil.Then(t, "it is gone", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				testutil.AssertJSONContains(t, rr, "deletedCount", float64(1))
				rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/camp/"+campID))
				testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
			})
		})
	})
}

func TestCampWritesRequireAdmin(t *testing.T) {
	router, jwt := newRouter(t)
	body := map[string]any{"title": "x"}

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/camp", body))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/camp", body), bearer(t, jwt, "p@example.com"))
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusForbidden)

	req = testutil.WithBearer(testutil.NewRequest(t, http.MethodDelete, "/delete-camp/"+storage.NewID()), bearer(t, jwt, "p@example.com"))
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusForbidden)
}

func TestCampValidationAndLookup(t *testing.T) {
	router, jwt := newRouter(t)
	admin := bearer(t, jwt, "admin@example.com")

	req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/camp", map[string]any{"fee": 10}), admin)
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/camp/not-an-id"))
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/camp"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, "[]\n", rr.Body.String())
}

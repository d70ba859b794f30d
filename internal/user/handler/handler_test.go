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

	jwttoken "mcms/internal/jwt_token"
	"mcms/internal/platform/middleware"
	"mcms/internal/user/models"
	"mcms/internal/user/service"
	"mcms/internal/user/store"
	"mcms/pkg/testutil"
)

type fixture struct {
	router http.Handler
	jwt    *jwttoken.JWTService
	svc    *service.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	svc := service.New(store.NewInMemoryUserStore())
	jwt := jwttoken.NewJWTService("test-secret", "mcms")

	r := chi.NewRouter()
	guards := middleware.NewGuards(jwttoken.NewJWTServiceAdapter(jwt), svc, logger)
	New(svc, logger, guards).Register(r)
	return &fixture{router: r, jwt: jwt, svc: svc}
}

func (f *fixture) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := f.jwt.GenerateAccessToken(email, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/users", map[string]string{
		"email": "Jane@Example.com", "name": "Jane", "role": "admin",
	}))
	testutil.AssertStatus(t, rr, http.StatusOK)
	res := testutil.UnmarshalResponse[models.CreateResult](t, rr)
	require.NotNil(t, res.InsertedID)

	admin, err := f.svc.IsAdmin(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.False(t, admin, "client supplied role must be ignored")

	rr = testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/users", map[string]string{
		"email": "jane@example.com", "name": "Jane",
	}))
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertJSONContains(t, rr, "message", "user already exists")
	testutil.AssertJSONContains(t, rr, "insertedId", nil)
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/users", map[string]string{"name": "x"}))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")

	rr = testutil.DoRequest(f.router, testutil.NewRequestWithBody(t, http.MethodPost, "/users", "{"))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func TestAdminFlagIsSelfOnly(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.SeedAdmins(context.Background(), []string{"boss@example.com"}))

	t.Run("missing token", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/user/admin/boss@example.com"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("other caller", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/user/admin/boss@example.com"), f.token(t, "p@example.com"))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("owner", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/user/admin/boss@example.com"), f.token(t, "boss@example.com"))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		testutil.AssertJSONContains(t, rr, "admin", true)
	})
}

func TestProfileRoutes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, "p@example.com", "P", "")
	require.NoError(t, err)
	require.NoError(t, f.svc.SeedAdmins(ctx, []string{"boss@example.com"}))

	t.Run("participant profile needs only a token", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/participant/profile/p@example.com"), f.token(t, "other@example.com"))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		testutil.AssertJSONContains(t, rr, "email", "p@example.com")
	})

	t.Run("admin profile rejects participants", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/user/profile/p@example.com"), f.token(t, "p@example.com"))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
	})

	t.Run("admin profile for admins", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/user/profile/p@example.com"), f.token(t, "boss@example.com"))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/user/profile/ghost@example.com"), f.token(t, "boss@example.com"))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
	})

	t.Run("owner updates profile", func(t *testing.T) {
		req := testutil.WithBearer(
			testutil.NewJSONRequest(t, http.MethodPut, "/user/profile/p@example.com", map[string]string{"name": "Pat", "phone": "555"}),
			f.token(t, "p@example.com"),
		)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		testutil.AssertJSONContains(t, rr, "matchedCount", float64(1))

		user, err := f.svc.Get(ctx, "p@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Pat", user.Name)
		assert.Equal(t, "555", user.Phone)
	})

	t.Run("someone else cannot update", func(t *testing.T) {
		req := testutil.WithBearer(
			testutil.NewJSONRequest(t, http.MethodPut, "/user/profile/p@example.com", map[string]string{"name": "Mallory"}),
			f.token(t, "boss@example.com"),
		)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})
}

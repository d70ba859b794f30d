package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	campModels "mcms/internal/camp/models"
	campStore "mcms/internal/camp/store"
	jwttoken "mcms/internal/jwt_token"
	"mcms/internal/payment/gateway/stub"
	paymentStore "mcms/internal/payment/store"
	"mcms/internal/platform/middleware"
	"mcms/internal/registration/models"
	"mcms/internal/registration/service"
	"mcms/internal/registration/store"
	userService "mcms/internal/user/service"
	userStore "mcms/internal/user/store"
	"mcms/pkg/testutil"
)

type fixture struct {
	router   http.Handler
	jwt      *jwttoken.JWTService
	camps    *campStore.InMemoryCampStore
	regs     *store.InMemoryRegistrationStore
	payments *paymentStore.InMemoryPaymentStore
	gateway  *stub.Provider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	users := userService.New(userStore.NewInMemoryUserStore())
	require.NoError(t, users.SeedAdmins(context.Background(), []string{"admin@example.com"}))

	f := &fixture{
		jwt:      jwttoken.NewJWTService("test-secret", "mcms"),
		camps:    campStore.NewInMemoryCampStore(),
		regs:     store.NewInMemoryRegistrationStore(),
		payments: paymentStore.NewInMemoryPaymentStore(),
		gateway:  stub.New(),
	}
	svc, err := service.New(f.regs, f.camps, f.payments, f.gateway)
	require.NoError(t, err)

	guards := middleware.NewGuards(jwttoken.NewJWTServiceAdapter(f.jwt), users, logger)
	r := chi.NewRouter()
	New(svc, logger, guards).Register(r)
	f.router = r
	return f
}

func (f *fixture) bearer(t *testing.T, email string) string {
	t.Helper()
	tok, err := f.jwt.GenerateAccessToken(email, time.Hour)
	require.NoError(t, err)
	return tok
}

func (f *fixture) seedCamp(t *testing.T) string {
	t.Helper()
	camp := &campModels.Camp{Title: "Eye camp", Fee: 19.99}
	require.NoError(t, f.camps.Insert(context.Background(), camp))
	return camp.ID
}

func (f *fixture) register(t *testing.T, campID, email string) *httpResult {
	t.Helper()
	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/registeredCamps", map[string]any{
		"campId":             campID,
		"userEmail":          email,
		"participantName":    "Pat",
		"age":                31,
		"confirmationStatus": "confirmed",
		"paymentStatus":      "paid",
	}))
	return &httpResult{code: rr.Code, reg: decodeIfOK(t, rr.Code, rr.Body.Bytes())}
}

type httpResult struct {
	code int
	reg  *models.Registration
}

func decodeIfOK(t *testing.T, code int, body []byte) *models.Registration {
	t.Helper()
	if code != http.StatusOK {
		return nil
	}
	var reg models.Registration
	require.NoError(t, json.Unmarshal(body, &reg))
	return &reg
}

func TestRegisterIgnoresStatusOverrides(t *testing.T) {
	f := newFixture(t)
	campID := f.seedCamp(t)

	res := f.register(t, campID, "P@Example.com")
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, models.ConfirmationPending, res.reg.ConfirmationStatus)
	assert.Equal(t, models.PaymentUnpaid, res.reg.PaymentStatus)
	assert.Equal(t, "p@example.com", res.reg.UserEmail)

	camp, err := f.camps.FindByID(context.Background(), campID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), camp.ParticipantCount)
}

func TestDuplicateRegistration(t *testing.T) {
	f := newFixture(t)
	campID := f.seedCamp(t)

	require.Equal(t, http.StatusOK, f.register(t, campID, "p@example.com").code)
	assert.Equal(t, http.StatusConflict, f.register(t, campID, "p@example.com").code)

	regs, err := f.regs.ListByEmail(context.Background(), "p@example.com")
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/registeredCamps", map[string]any{"userEmail": "p@example.com"}))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	testutil.AssertJSONContains(t, rr, "message", "campId is required")
}

func TestListAndHistory(t *testing.T) {
	f := newFixture(t)
	campID := f.seedCamp(t)
	f.register(t, campID, "p@example.com")
	f.register(t, campID, "q@example.com")

	for _, path := range []string{"/registeredCamps?email=p@example.com", "/payment-history?email=P@example.com"} {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, path))
		testutil.AssertStatus(t, rr, http.StatusOK)
		regs := testutil.UnmarshalResponse[[]models.Registration](t, rr)
		require.Len(t, *regs, 1, path)
		assert.Equal(t, "p@example.com", (*regs)[0].UserEmail)
	}

	rr := testutil.DoRequest(f.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/admin/registeredCamps"), f.bearer(t, "p@example.com")))
	testutil.AssertStatus(t, rr, http.StatusForbidden)

	rr = testutil.DoRequest(f.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/admin/registeredCamps"), f.bearer(t, "admin@example.com")))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Len(t, *testutil.UnmarshalResponse[[]models.Registration](t, rr), 2)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	campID := f.seedCamp(t)
	reg := f.register(t, campID, "p@example.com").reg

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodDelete, "/registeredCamps/"+reg.ID))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	rr = testutil.DoRequest(f.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodDelete, "/registeredCamps/"+reg.ID), f.bearer(t, "p@example.com")))
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertJSONContains(t, rr, "deletedCount", float64(1))

	rr = testutil.DoRequest(f.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodDelete, "/registeredCamps/"+reg.ID), f.bearer(t, "p@example.com")))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")

	camp, err := f.camps.FindByID(context.Background(), campID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), camp.ParticipantCount, "cancel leaves the participant count alone")
}

func TestPaymentIntent(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		body   string
		status int
		secret string
	}{
		{`{"price":19.99}`, http.StatusOK, "pi_stub_1_secret_1999"},
		{`{"price":"25"}`, http.StatusOK, "pi_stub_2_secret_2500"},
		{`{"price":0}`, http.StatusBadRequest, ""},
		{`{"price":null}`, http.StatusBadRequest, ""},
		{`{"price":"abc"}`, http.StatusBadRequest, ""},
		{`{}`, http.StatusBadRequest, ""},
		{`{"price":true}`, http.StatusBadRequest, ""},
		{`{"price":1e20}`, http.StatusBadRequest, ""},
		{`{"price":0.001}`, http.StatusBadRequest, ""},
		{`{"price":"0x1p4"}`, http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		rr := testutil.DoRequest(f.router, testutil.NewRequestWithBody(t, http.MethodPost, "/create-payment-intent", tc.body))
		testutil.AssertStatus(t, rr, tc.status)
		if tc.status == http.StatusOK {
			testutil.AssertJSONContains(t, rr, "clientSecret", tc.secret)
		} else {
			testutil.AssertErrorCode(t, rr, "invalid_input")
		}
	}

	f.gateway.Err = errors.New("stripe unavailable")
	rr := testutil.DoRequest(f.router, testutil.NewRequestWithBody(t, http.MethodPost, "/create-payment-intent", `{"price":5}`))
	testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "gateway_error")
}

func TestCompletePayment(t *testing.T) {
	f := newFixture(t)
	campID := f.seedCamp(t)
	reg := f.register(t, campID, "p@example.com").reg

	t.Run("matches the registration by its own id", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/payments", map[string]any{
			"campId": reg.ID, "transactionId": "txn_1", "price": 19.99, "email": "p@example.com",
		}))
		testutil.AssertStatus(t, rr, http.StatusOK)
		out := testutil.UnmarshalResponse[models.PaymentOutcome](t, rr)
		assert.NotEmpty(t, out.PaymentResult.InsertedID)
		assert.Equal(t, int64(1), out.UpdateResult.MatchedCount)

		got, err := f.regs.FindByID(context.Background(), reg.ID)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPaid, got.PaymentStatus)
		assert.Equal(t, "txn_1", got.TransactionID)
	})

	t.Run("a camp id matches nothing but the payment is kept", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/payments", map[string]any{
			"campId": campID, "transactionId": "txn_2", "amount": 19.99,
		}))
		testutil.AssertStatus(t, rr, http.StatusOK)
		out := testutil.UnmarshalResponse[models.PaymentOutcome](t, rr)
		assert.Equal(t, int64(0), out.UpdateResult.MatchedCount)
		assert.Len(t, f.payments.All(), 2)
	})

	t.Run("transaction id is required", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/payments", map[string]any{"campId": reg.ID}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})
}

func TestConfirmIsAdminOnlyAndIdempotent(t *testing.T) {
	f := newFixture(t)
	campID := f.seedCamp(t)
	reg := f.register(t, campID, "p@example.com").reg
	path := "/registeredCamps/confirm/" + reg.ID

	rr := testutil.DoRequest(f.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodPatch, path), f.bearer(t, "p@example.com")))
	testutil.AssertStatus(t, rr, http.StatusForbidden)

	for range 2 {
		rr = testutil.DoRequest(f.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodPatch, path), f.bearer(t, "admin@example.com")))
		testutil.AssertStatus(t, rr, http.StatusOK)
		testutil.AssertJSONContains(t, rr, "confirmationStatus", "confirmed")
	}
}

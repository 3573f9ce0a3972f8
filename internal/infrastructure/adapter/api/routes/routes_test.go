package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/handler"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/validation"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/auth"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/logger"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/metrics"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/ratelimit"
	timeprovider "github.com/auctionhub/currency-service/internal/infrastructure/adapter/time"
	usecasemocks "github.com/auctionhub/currency-service/mocks/port/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type fixture struct {
	router   *gin.Engine
	jwt      *auth.JWTManager
	currency *usecasemocks.MockCurrencyUseCase
	account  *usecasemocks.MockAccountUseCase
}

func newFixture(t *testing.T, chargeQuota int) *fixture {
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterValidators())

	log := logger.NewNoopLogger()
	jwtManager, err := auth.NewJWTManager(auth.Config{JWTSecret: "routes-secret"}, timeprovider.NewRealTimeProvider())
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	prom := metrics.NewPrometheusMetrics(registry)

	f := &fixture{
		router:   gin.New(),
		jwt:      jwtManager,
		currency: usecasemocks.NewMockCurrencyUseCase(t),
		account:  usecasemocks.NewMockAccountUseCase(t),
	}

	SetupMiddlewares(f.router, log, prom, nil)
	SetupRoutes(f.router, Handlers{
		Currency: handler.NewCurrencyHandler(f.currency, log),
		Account:  handler.NewAccountHandler(f.account, log),
		Admin:    handler.NewAdminHandler(f.currency, f.account, log),
		Health:   handler.NewHealthHandler(okPinger{}, log),
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, Security{
		Verifier:    jwtManager,
		Limiter:     ratelimit.NewMemoryLimiter(ratelimit.Config{Enabled: true, Requests: chargeQuota, Window: time.Minute}),
		RateLimited: prom,
	}, log)

	return f
}

func (f *fixture) request(t *testing.T, method, path, body string, user *entity.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		token, err := f.jwt.Issue(user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func ledgerFor(userID uint64) *entity.Currency {
	return &entity.Currency{ID: userID, UserID: userID, Balance: decimal.Zero, LockedBalance: decimal.Zero, TotalEarned: decimal.Zero, TotalSpent: decimal.Zero}
}

func TestRoutes_Authentication(t *testing.T) {
	f := newFixture(t, 10)
	alice := &entity.User{ID: 7, Username: "alice"}
	admin := &entity.User{ID: 1, Username: "root", IsStaff: true}

	f.currency.On("GetCurrency", mock.Anything, uint64(7)).Return(ledgerFor(7), false, nil).Once()
	f.currency.On("AdminGetTransaction", mock.Anything, uint64(3)).Return(&entity.CurrencyTransaction{
		ID: 3, UserID: 7, Type: entity.TypeCharge, Amount: decimal.NewFromInt(5),
	}, nil).Once()

	assert.Equal(t, http.StatusUnauthorized, f.request(t, http.MethodGet, "/api/currency", "", nil).Code)
	assert.Equal(t, http.StatusOK, f.request(t, http.MethodGet, "/api/currency", "", alice).Code)
	assert.Equal(t, http.StatusForbidden, f.request(t, http.MethodGet, "/api/admin/transactions/3", "", alice).Code)
	assert.Equal(t, http.StatusOK, f.request(t, http.MethodGet, "/api/admin/transactions/3", "", admin).Code)
}

func TestRoutes_NoTransactionWriteRoutes(t *testing.T) {
	f := newFixture(t, 10)
	admin := &entity.User{ID: 1, Username: "root", IsStaff: true}

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		w := f.request(t, method, "/api/admin/transactions/3", "", admin)
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
}

func TestRoutes_ChargeIsRateLimited(t *testing.T) {
	f := newFixture(t, 1)
	alice := &entity.User{ID: 7, Username: "alice"}
	f.currency.On("Charge", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	first := f.request(t, http.MethodPost, "/api/currency/charge", `{"amount": "10"}`, alice)
	assert.Equal(t, http.StatusInternalServerError, first.Code)

	second := f.request(t, http.MethodPost, "/api/currency/charge", `{"amount": "10"}`, alice)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRoutes_OpsEndpoints(t *testing.T) {
	f := newFixture(t, 10)
	alice := &entity.User{ID: 7, Username: "alice"}
	f.currency.On("GetCurrency", mock.Anything, uint64(7)).Return(ledgerFor(7), true, nil).Once()

	assert.Equal(t, http.StatusCreated, f.request(t, http.MethodGet, "/api/currency", "", alice).Code)

	health := f.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.NotEmpty(t, health.Header().Get("X-Request-ID"))

	exposition := f.request(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, exposition.Code)
	assert.Contains(t, exposition.Body.String(), `route="/api/currency"`)

	missing := f.request(t, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, `{"code":4044,"message":"Resource not found"}`, missing.Body.String())
}

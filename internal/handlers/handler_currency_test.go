package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/famvault/famvault-backend/internal/adapters/rates"
	"github.com/famvault/famvault-backend/internal/apperrors"
	"github.com/famvault/famvault-backend/internal/core/domain"
	portsprov "github.com/famvault/famvault-backend/internal/core/ports/providers"
	portsrepo "github.com/famvault/famvault-backend/internal/core/ports/repositories"
	"github.com/famvault/famvault-backend/internal/core/services"
	"github.com/famvault/famvault-backend/internal/dto"
	"github.com/famvault/famvault-backend/internal/handlers"
	"github.com/famvault/famvault-backend/internal/platform/config"
	"github.com/famvault/famvault-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- In-memory repositories ---
// The handlers are exercised against real services; only the storage edge is
// swapped for in-memory stand-ins.

type memRateCacheRepo struct {
	snapshot *domain.RateSnapshot
}

func (r *memRateCacheRepo) LoadSnapshot(_ context.Context) (*domain.RateSnapshot, error) {
	if r.snapshot == nil {
		return nil, apperrors.ErrNotFound
	}
	return r.snapshot, nil
}

func (r *memRateCacheRepo) SaveSnapshot(_ context.Context, snapshot domain.RateSnapshot) error {
	r.snapshot = &snapshot
	return nil
}

type memSettingsRepo struct {
	records map[string]domain.UserCurrencySettings
}

func (r *memSettingsRepo) FindSettingsByUserID(_ context.Context, userID string) (*domain.UserCurrencySettings, error) {
	record, ok := r.records[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &record, nil
}

func (r *memSettingsRepo) SaveSettings(_ context.Context, settings domain.UserCurrencySettings) error {
	r.records[settings.UserID] = settings
	return nil
}

type memUserRepo struct {
	users map[string]domain.User
}

func (r *memUserRepo) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *memUserRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepo) SaveUser(_ context.Context, user domain.User) error {
	r.users[user.UserID] = user
	return nil
}

// --- Test Suite ---
type CurrencyAPITestSuite struct {
	suite.Suite
	router       *gin.Engine
	settingsRepo *memSettingsRepo
	jwtSecret    string
	userID       string
}

func (suite *CurrencyAPITestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "famvault-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CurrencyAPITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(utils.RegisterCustomValidators())

	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()
	suite.settingsRepo = &memSettingsRepo{records: map[string]domain.UserCurrencySettings{}}

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		BaseCurrency: "GHS",
		RatesTTL:     time.Hour,
	}

	repos := portsrepo.RepositoryProvider{
		RateCacheRepo: &memRateCacheRepo{},
		SettingsRepo:  suite.settingsRepo,
		UserRepo:      &memUserRepo{users: map[string]domain.User{}},
	}
	container := services.NewServiceContainer(cfg, repos, []portsprov.RateProvider{rates.NewStaticProvider()})

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *CurrencyAPITestSuite) doRequest(method, url string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *CurrencyAPITestSuite) TestListCurrencies_RequiresAuth() {
	w := suite.doRequest(http.MethodGet, "/api/v1/currencies", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *CurrencyAPITestSuite) TestListCurrencies_DefaultFirst() {
	token := suite.generateTestToken(suite.userID)
	w := suite.doRequest(http.MethodGet, "/api/v1/currencies", nil, token)

	suite.Require().Equal(http.StatusOK, w.Code)
	var body []dto.CurrencyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().NotEmpty(body)
	suite.Equal("GHS", body[0].CurrencyCode)
	suite.True(body[0].IsDefault)
}

func (suite *CurrencyAPITestSuite) TestGetCurrency_UnknownCodeFallsBack() {
	token := suite.generateTestToken(suite.userID)
	w := suite.doRequest(http.MethodGet, "/api/v1/currencies/ZZZ", nil, token)

	suite.Require().Equal(http.StatusOK, w.Code)
	var body dto.CurrencyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("GHS", body.CurrencyCode)
	suite.True(body.IsDefault)
}

func (suite *CurrencyAPITestSuite) TestGetRates() {
	token := suite.generateTestToken(suite.userID)
	w := suite.doRequest(http.MethodGet, "/api/v1/rates", nil, token)

	suite.Require().Equal(http.StatusOK, w.Code)
	var body dto.RatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("GHS", body.BaseCurrency)
	suite.False(body.Stale)
	suite.True(decimal.NewFromInt(1).Equal(body.Rates["GHS"]))
}

func (suite *CurrencyAPITestSuite) TestGetPairRate() {
	token := suite.generateTestToken(suite.userID)
	w := suite.doRequest(http.MethodGet, "/api/v1/rates/GHS/USD", nil, token)

	suite.Require().Equal(http.StatusOK, w.Code)
	var body dto.PairRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(decimal.RequireFromString("0.085").Equal(body.Rate))
}

func (suite *CurrencyAPITestSuite) TestGetPairRate_UnpriceablePair() {
	token := suite.generateTestToken(suite.userID)
	w := suite.doRequest(http.MethodGet, "/api/v1/rates/GHS/ZZZ", nil, token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CurrencyAPITestSuite) TestConvert() {
	token := suite.generateTestToken(suite.userID)
	req := dto.ConvertRequest{
		Amount:       decimal.RequireFromString("1180"),
		FromCurrency: "GHS",
		ToCurrency:   "USD",
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/convert", req, token)

	suite.Require().Equal(http.StatusOK, w.Code)
	var body dto.ConversionInfoResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(decimal.RequireFromString("100.30").Equal(body.ConvertedAmount))
	suite.Equal("$100.30", body.Formatted)
}

func (suite *CurrencyAPITestSuite) TestConvert_RejectsBadCurrencyCode() {
	token := suite.generateTestToken(suite.userID)
	w := suite.doRequest(http.MethodPost, "/api/v1/convert", map[string]any{
		"amount":       "100",
		"fromCurrency": "ghs",
		"toCurrency":   "USD",
	}, token)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *CurrencyAPITestSuite) TestGetSettings_NeverSavedReturnsDefaults() {
	token := suite.generateTestToken(suite.userID)
	w := suite.doRequest(http.MethodGet, "/api/v1/users/"+suite.userID+"/settings", nil, token)

	suite.Require().Equal(http.StatusOK, w.Code)
	var body dto.SettingsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(suite.userID, body.UserID)
	suite.Equal("GHS", body.DisplayCurrency)
	suite.True(body.AutoConvert)
}

func (suite *CurrencyAPITestSuite) TestGetSettings_OtherUserForbidden() {
	token := suite.generateTestToken(suite.userID)
	w := suite.doRequest(http.MethodGet, "/api/v1/users/"+uuid.NewString()+"/settings", nil, token)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *CurrencyAPITestSuite) TestUpdateSettings_RoundTrips() {
	token := suite.generateTestToken(suite.userID)
	autoConvert := false
	req := dto.UpdateSettingsRequest{
		DefaultCurrency:   "USD",
		DisplayCurrency:   "EUR",
		AutoConvert:       &autoConvert,
		AccountCurrencies: map[string]string{"acct-1": "GBP"},
	}
	w := suite.doRequest(http.MethodPut, "/api/v1/users/"+suite.userID+"/settings", req, token)

	suite.Require().Equal(http.StatusOK, w.Code)
	var body dto.SettingsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("EUR", body.DisplayCurrency)
	suite.False(body.AutoConvert)
	suite.Equal("GBP", body.AccountCurrencies["acct-1"])

	// The next read sees the stored record, not the defaults.
	w = suite.doRequest(http.MethodGet, "/api/v1/users/"+suite.userID+"/settings", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("EUR", body.DisplayCurrency)
}

func (suite *CurrencyAPITestSuite) TestNetWorth() {
	token := suite.generateTestToken(suite.userID)
	req := dto.NetWorthRequest{
		Accounts: []dto.AccountRecord{
			{AccountID: "acct-1", Name: "Savings", Balance: decimal.RequireFromString("1000"), Currency: "GHS"},
		},
		Loans: []dto.LoanRecord{
			{LoanID: "loan-1", Amount: decimal.RequireFromString("500"), AmountPaid: decimal.RequireFromString("100"), Currency: "GHS", Status: "active", IsLender: false},
		},
		DisplayCurrency: "GHS",
	}
	w := suite.doRequest(http.MethodPost, "/api/v1/reports/networth", req, token)

	suite.Require().Equal(http.StatusOK, w.Code)
	var body dto.NetWorthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(decimal.RequireFromString("600").Equal(body.Total))
	suite.Equal("₵600.00", body.Formatted)
	suite.Equal("GHS", body.DisplayCurrency)
}

func (suite *CurrencyAPITestSuite) TestHealth() {
	w := suite.doRequest(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}

func TestCurrencyAPITestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyAPITestSuite))
}

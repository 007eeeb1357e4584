package create

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/card"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/payment"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Tokenize(ctx context.Context, data models.TokenizeData, params payment.TokenizeParams) (*models.Tokens, error) {
	args := m.Called(ctx, data, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tokens), args.Error(1)
}

type MockWalletTokens struct {
	mock.Mock
}

func (m *MockWalletTokens) WalletToken(userKey string) (string, bool, error) {
	args := m.Called(userKey)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockWalletTokens) HasReusableWalletToken(userKey string) (bool, error) {
	args := m.Called(userKey)
	return args.Bool(0), args.Error(1)
}

type MockConfigService struct {
	mock.Mock
}

func (m *MockConfigService) SavePaymentMethodPolicy(ctx context.Context) models.SavePaymentMethod {
	args := m.Called(ctx)
	return args.Get(0).(models.SavePaymentMethod)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

type handlerMocks struct {
	payments  *MockPaymentService
	wallet    *MockWalletTokens
	config    *MockConfigService
	publisher *MockPublisher
}

func newHandler(t *testing.T) (*Handler, handlerMocks) {
	t.Helper()
	m := handlerMocks{
		payments:  new(MockPaymentService),
		wallet:    new(MockWalletTokens),
		config:    new(MockConfigService),
		publisher: new(MockPublisher),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(log, m.payments, m.wallet, m.config, m.publisher, card.New(), "checkout://return")
	return h, m
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokenize", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middlewarectx.ShopID, "123456")
	return req.WithContext(ctx)
}

const bankCardBody = `{
	"payment_option": {"payment_method_type": "bank_card", "save_payment_method": "allowed"},
	"amount": {"value": "100.00", "currency": "RUB"},
	"save_payment_method": true,
	"card": {"number": "4111111111111111", "expiry_month": 12, "expiry_year": 2030, "csc": "123"}
}`

func TestServeHTTP_BankCard(t *testing.T) {
	h, m := newHandler(t)
	m.config.On("SavePaymentMethodPolicy", mock.Anything).Return(models.SaveUserSelects)
	m.payments.On("Tokenize", mock.Anything, mock.MatchedBy(func(data models.TokenizeData) bool {
		d, ok := data.(models.TokenizeBankCard)
		return ok && d.BankCard.Number == "4111111111111111" && d.SavePaymentMethod
	}), payment.TokenizeParams{Amount: &models.MonetaryAmount{Value: "100.00", Currency: "RUB"}}).
		Return(&models.Tokens{PaymentToken: "pt-1"}, nil)
	m.publisher.On("Publish", "succeeded", mock.Anything).Return(nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(bankCardBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"payment_token":"pt-1"`)
	assert.Contains(t, rr.Body.String(), `"tokenization_scheme":"bank-card"`)
	m.payments.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func TestServeHTTP_BankCard_NoCardData(t *testing.T) {
	h, m := newHandler(t)
	m.config.On("SavePaymentMethodPolicy", mock.Anything).Return(models.SaveUserSelects)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(`{"payment_option": {"payment_method_type": "bank_card", "save_payment_method": "allowed"}}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "card data is required")
}

func TestServeHTTP_BankCard_InvalidCard(t *testing.T) {
	h, m := newHandler(t)
	m.config.On("SavePaymentMethodPolicy", mock.Anything).Return(models.SaveUserSelects)

	body := `{
		"payment_option": {"payment_method_type": "bank_card", "save_payment_method": "allowed"},
		"card": {"number": "4111111111111112", "expiry_month": 12, "expiry_year": 2030, "csc": "123"}
	}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(body))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid card data")
	m.payments.AssertNotCalled(t, "Tokenize", mock.Anything, mock.Anything, mock.Anything)
}

func TestServeHTTP_Wallet_LoginRequired(t *testing.T) {
	h, m := newHandler(t)
	m.config.On("SavePaymentMethodPolicy", mock.Anything).Return(models.SaveUserSelects)
	m.wallet.On("HasReusableWalletToken", "123456").Return(false, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(`{"payment_option": {"payment_method_type": "yoo_money", "save_payment_method": "allowed"}}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"action":"wallet_login_required"`)
	m.payments.AssertNotCalled(t, "Tokenize", mock.Anything, mock.Anything, mock.Anything)
}

func TestServeHTTP_Wallet_ReusableToken(t *testing.T) {
	h, m := newHandler(t)
	m.config.On("SavePaymentMethodPolicy", mock.Anything).Return(models.SaveUserSelects)
	m.wallet.On("HasReusableWalletToken", "123456").Return(true, nil)
	m.wallet.On("WalletToken", "123456").Return("wallet-token", true, nil)
	m.payments.On("Tokenize", mock.Anything, mock.Anything, mock.MatchedBy(func(params payment.TokenizeParams) bool {
		return params.WalletAuthorization == "wallet-token"
	})).Return(&models.Tokens{PaymentToken: "pt-2"}, nil)
	m.publisher.On("Publish", "succeeded", mock.Anything).Return(nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(`{"payment_option": {"payment_method_type": "yoo_money", "save_payment_method": "allowed"}}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"tokenization_scheme":"wallet"`)
	m.payments.AssertExpectations(t)
}

func TestServeHTTP_Wallet_TokenLost(t *testing.T) {
	h, m := newHandler(t)
	m.config.On("SavePaymentMethodPolicy", mock.Anything).Return(models.SaveUserSelects)
	m.wallet.On("HasReusableWalletToken", "123456").Return(true, nil)
	m.wallet.On("WalletToken", "123456").Return("", false, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(`{"payment_option": {"payment_method_type": "yoo_money", "save_payment_method": "allowed"}}`))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "wallet authorization required")
}

func TestServeHTTP_GatewayUnreachable(t *testing.T) {
	h, m := newHandler(t)
	m.config.On("SavePaymentMethodPolicy", mock.Anything).Return(models.SaveUserSelects)
	m.payments.On("Tokenize", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, payment.ErrInternetConnection)
	m.publisher.On("Publish", "failed", mock.Anything).Return(nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(bankCardBody))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	m.publisher.AssertExpectations(t)
}

func TestServeHTTP_UnknownMethod(t *testing.T) {
	h, m := newHandler(t)
	m.config.On("SavePaymentMethodPolicy", mock.Anything).Return(models.SaveUserSelects)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(`{"payment_option": {"payment_method_type": "cash"}}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "payment option does not match payment method")
}

func TestServeHTTP_NoSession(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tokenize", strings.NewReader(bankCardBody))
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestServeHTTP_MissingMethodType(t *testing.T) {
	h, _ := newHandler(t)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, newRequest(`{"payment_option": {}}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "payment_method_type is required")
}

package login

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
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/walletlogin"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) LoginInWallet(ctx context.Context, userKey, userAuthorization string, amount *models.MonetaryAmount, reusable bool) (*models.WalletLoginResponse, error) {
	args := m.Called(ctx, userKey, userAuthorization, amount, reusable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WalletLoginResponse), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/login", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middlewarectx.ShopID, "123456")
	return req.WithContext(ctx)
}

func TestServeHTTP_Authorized(t *testing.T) {
	mockService := new(MockService)
	mockService.On("LoginInWallet", mock.Anything, "123456", "user-oauth", (*models.MonetaryAmount)(nil), true).
		Return(models.NewAuthorizedLogin("wallet-token"), nil)

	handler := New(discardLogger(), mockService)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(`{"wallet_user_token": "user-oauth", "reusable": true}`))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"authorized":true`)
	// Токен кошелька остаётся на сервере и клиенту не возвращается.
	assert.NotContains(t, rr.Body.String(), "wallet-token")
	mockService.AssertExpectations(t)
}

func TestServeHTTP_SecondFactorRequired(t *testing.T) {
	state := models.AuthTypeState{
		Type:          models.AuthTypeSms,
		Enabled:       true,
		CanBeIssued:   true,
		ActiveSession: &models.ActiveSession{AttemptsLeft: 3, TimeLeft: 60, CodeLength: 4},
	}
	mockService := new(MockService)
	mockService.On("LoginInWallet", mock.Anything, "123456", "user-oauth", (*models.MonetaryAmount)(nil), false).
		Return(models.NewNotAuthorizedLogin(state, "proc-1", "ctx-1"), nil)

	handler := New(discardLogger(), mockService)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(`{"wallet_user_token": "user-oauth"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"authorized":false`)
	assert.Contains(t, body, `"process_id":"proc-1"`)
	assert.Contains(t, body, `"auth_context_id":"ctx-1"`)
	assert.Contains(t, body, `"type":"Sms"`)
}

func TestServeHTTP_NoSupportedAuthType(t *testing.T) {
	mockService := new(MockService)
	mockService.On("LoginInWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, walletlogin.ErrUnsupportedAuthType)

	handler := New(discardLogger(), mockService)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(`{"wallet_user_token": "user-oauth"}`))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), `"retry":"abort"`)
}

func TestServeHTTP_MissingUserToken(t *testing.T) {
	handler := New(discardLogger(), new(MockService))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(`{}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "WalletUserToken is a required field")
}

package check

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
	"github.com/magabrotheeeer/checkout-tokenizer/internal/walletapi"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CheckUserAnswer(ctx context.Context, userKey, userAuthorization, processID, authContextID string, authType models.AuthType, answer string, reusable bool) (*models.WalletLoginResponse, error) {
	args := m.Called(ctx, userKey, userAuthorization, processID, authContextID, authType, answer, reusable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WalletLoginResponse), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validBody = `{
	"wallet_user_token": "user-oauth",
	"process_id": "proc-1",
	"auth_context_id": "ctx-1",
	"auth_type": "Sms",
	"answer": "1234"
}`

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/check", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middlewarectx.ShopID, "123456")
	return req.WithContext(ctx)
}

func TestServeHTTP_Success(t *testing.T) {
	mockService := new(MockService)
	mockService.On("CheckUserAnswer", mock.Anything, "123456", "user-oauth", "proc-1", "ctx-1",
		models.AuthTypeSms, "1234", false).
		Return(models.NewAuthorizedLogin("wallet-token"), nil)

	handler := New(discardLogger(), mockService)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(validBody))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"authorized":true`)
	// Токен кошелька остаётся на сервере и клиенту не возвращается.
	assert.NotContains(t, rr.Body.String(), "wallet-token")
	mockService.AssertExpectations(t)
}

func TestServeHTTP_NoSession(t *testing.T) {
	handler := New(discardLogger(), new(MockService))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/check", strings.NewReader(validBody))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestServeHTTP_ErrorMapping(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedCode  int
		expectedRetry string
	}{
		{
			name:         "invalid answer keeps session",
			err:          walletapi.ErrInvalidAnswer,
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:          "session expired",
			err:           walletapi.ErrSessionDoesNotExist,
			expectedCode:  http.StatusGone,
			expectedRetry: `"retry":"resend"`,
		},
		{
			name:          "attempts exceeded",
			err:           walletapi.ErrVerifyAttemptsExceeded,
			expectedCode:  http.StatusForbidden,
			expectedRetry: `"retry":"resend"`,
		},
		{
			name:          "stale context",
			err:           walletapi.ErrCheckInvalidContext,
			expectedCode:  http.StatusConflict,
			expectedRetry: `"retry":"restart"`,
		},
		{
			name:          "execute failed",
			err:           walletapi.ErrExecute,
			expectedCode:  http.StatusConflict,
			expectedRetry: `"retry":"restart"`,
		},
		{
			name:         "unknown error",
			err:          assert.AnError,
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockService.On("CheckUserAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
				mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.err)

			handler := New(discardLogger(), mockService)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, newRequest(validBody))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedRetry != "" {
				assert.Contains(t, rr.Body.String(), tt.expectedRetry)
			} else {
				assert.NotContains(t, rr.Body.String(), `"retry"`)
			}
		})
	}
}

func TestServeHTTP_Validation(t *testing.T) {
	handler := New(discardLogger(), new(MockService))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequest(`{"wallet_user_token": "user-oauth"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "required field")
}

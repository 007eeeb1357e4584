package create

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/session"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Open(shopID, secretKey string) (string, error) {
	args := m.Called(shopID, secretKey)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServeHTTP(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(m *MockService)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			body: `{"shop_id": "123456", "secret_key": "sk_test"}`,
			setupMock: func(m *MockService) {
				m.On("Open", "123456", "sk_test").Return("jwt-token", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `"session_token":"jwt-token"`,
		},
		{
			name: "invalid credentials",
			body: `{"shop_id": "123456", "secret_key": "wrong"}`,
			setupMock: func(m *MockService) {
				m.On("Open", "123456", "wrong").Return("", session.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedBody: `"error":"invalid shop credentials"`,
		},
		{
			name:         "missing secret key",
			body:         `{"shop_id": "123456"}`,
			setupMock:    func(_ *MockService) {},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: "SecretKey is a required field",
		},
		{
			name:         "invalid json",
			body:         `{"shop_id":`,
			setupMock:    func(_ *MockService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `"error":"invalid request body"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(discardLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.expectedCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/kassaapi"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
)

type MockGatewayClient struct {
	mock.Mock
}

func (m *MockGatewayClient) PaymentOptions(ctx context.Context, req kassaapi.PaymentOptionsRequest) (*kassaapi.PaymentOptionsResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*kassaapi.PaymentOptionsResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGatewayClient) Tokens(ctx context.Context, req kassaapi.TokensRequest) (*kassaapi.TokensResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*kassaapi.TokensResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchPaymentOptions_EmptyListError(t *testing.T) {
	client := new(MockGatewayClient)
	client.On("PaymentOptions", mock.Anything, mock.Anything).
		Return(&kassaapi.PaymentOptionsResponse{}, nil)

	svc := New(client, discardLogger(), "gw-1", nil)
	_, err := svc.FetchPaymentOptions(context.Background(), nil, "", nil)

	assert.ErrorIs(t, err, ErrEmptyList)
	client.AssertExpectations(t)
}

func TestFetchPaymentOptions_FilteredToEmptyIsError(t *testing.T) {
	client := new(MockGatewayClient)
	client.On("PaymentOptions", mock.Anything, mock.Anything).
		Return(&kassaapi.PaymentOptionsResponse{
			Items: []models.PaymentOption{
				{PaymentMethodType: models.PaymentMethodSberbank},
			},
		}, nil)

	svc := New(client, discardLogger(), "gw-1", []models.PaymentMethodType{models.PaymentMethodBankCard})
	_, err := svc.FetchPaymentOptions(context.Background(), nil, "", nil)

	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestFetchPaymentOptions_FiltersUnsupported(t *testing.T) {
	client := new(MockGatewayClient)
	client.On("PaymentOptions", mock.Anything, mock.Anything).
		Return(&kassaapi.PaymentOptionsResponse{
			Items: []models.PaymentOption{
				{PaymentMethodType: models.PaymentMethodBankCard},
				{PaymentMethodType: models.PaymentMethodSberbank},
				{PaymentMethodType: models.PaymentMethodWallet},
			},
		}, nil)

	svc := New(client, discardLogger(), "gw-1", []models.PaymentMethodType{
		models.PaymentMethodBankCard,
		models.PaymentMethodWallet,
	})
	items, err := svc.FetchPaymentOptions(context.Background(), nil, "", nil)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.PaymentMethodBankCard, items[0].PaymentMethodType)
	assert.Equal(t, models.PaymentMethodWallet, items[1].PaymentMethodType)
}

func TestFetchPaymentOptions_TransportErrorMapped(t *testing.T) {
	transportErr := &url.Error{Op: "Post", URL: "https://gateway", Err: errors.New("connection refused")}

	client := new(MockGatewayClient)
	client.On("PaymentOptions", mock.Anything, mock.Anything).
		Return(nil, transportErr)

	svc := New(client, discardLogger(), "gw-1", nil)
	_, err := svc.FetchPaymentOptions(context.Background(), nil, "", nil)

	assert.ErrorIs(t, err, ErrInternetConnection)
}

func TestFetchPaymentOptions_APIErrorPassesThrough(t *testing.T) {
	apiErr := &kassaapi.Error{Code: "invalid_request"}

	client := new(MockGatewayClient)
	client.On("PaymentOptions", mock.Anything, mock.Anything).
		Return(nil, apiErr)

	svc := New(client, discardLogger(), "gw-1", nil)
	_, err := svc.FetchPaymentOptions(context.Background(), nil, "", nil)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInternetConnection)
	var gotErr *kassaapi.Error
	assert.ErrorAs(t, err, &gotErr)
}

func TestTokenize_Dispatch(t *testing.T) {
	amount := &models.MonetaryAmount{Value: "100.00", Currency: "RUB"}
	redirect := models.NewRedirectConfirmation("https://merchant/return")

	tests := []struct {
		name     string
		data     models.TokenizeData
		params   TokenizeParams
		wantBody func(t *testing.T, req kassaapi.TokensRequest)
	}{
		{
			name: "bank card",
			data: models.TokenizeBankCard{
				BankCard:          models.BankCard{Number: "4111111111111111", ExpiryMonth: "03", ExpiryYear: "2030", CSC: "123"},
				Confirmation:      redirect,
				SavePaymentMethod: true,
			},
			params: TokenizeParams{Amount: amount, TmxSessionID: "tmx-1"},
			wantBody: func(t *testing.T, req kassaapi.TokensRequest) {
				assert.Equal(t, models.PaymentMethodBankCard, req.Body.PaymentMethodData.Type)
				require.NotNil(t, req.Body.PaymentMethodData.Card)
				assert.Equal(t, "4111111111111111", req.Body.PaymentMethodData.Card.Number)
				assert.True(t, req.Body.SavePaymentMethod)
				assert.Equal(t, "tmx-1", req.Body.TmxSessionID)
				assert.Empty(t, req.WalletAuthorization)
			},
		},
		{
			name: "wallet carries authorization header",
			data: models.TokenizeWallet{Confirmation: redirect},
			params: TokenizeParams{
				Amount:              amount,
				WalletAuthorization: "wallet-token",
			},
			wantBody: func(t *testing.T, req kassaapi.TokensRequest) {
				assert.Equal(t, models.PaymentMethodWallet, req.Body.PaymentMethodData.Type)
				assert.Equal(t, "wallet-token", req.WalletAuthorization)
			},
		},
		{
			name: "linked card",
			data: models.TokenizeLinkedCard{CardID: "card-7", CSC: "321", Confirmation: redirect},
			params: TokenizeParams{
				Amount:              amount,
				WalletAuthorization: "wallet-token",
			},
			wantBody: func(t *testing.T, req kassaapi.TokensRequest) {
				assert.Equal(t, models.PaymentMethodLinkedCard, req.Body.PaymentMethodData.Type)
				assert.Equal(t, "card-7", req.Body.PaymentMethodData.CardID)
				assert.Equal(t, "321", req.Body.PaymentMethodData.CSC)
				assert.Equal(t, "wallet-token", req.WalletAuthorization)
			},
		},
		{
			name:   "sberbank uses external confirmation and phone",
			data:   models.TokenizeSberbank{PhoneNumber: "79001002030", Confirmation: models.NewExternalConfirmation()},
			params: TokenizeParams{Amount: amount},
			wantBody: func(t *testing.T, req kassaapi.TokensRequest) {
				assert.Equal(t, models.PaymentMethodSberbank, req.Body.PaymentMethodData.Type)
				assert.Equal(t, "79001002030", req.Body.PaymentMethodData.Phone)
				require.NotNil(t, req.Body.Confirmation)
				assert.Equal(t, models.ConfirmationExternal, req.Body.Confirmation.Type)
			},
		},
		{
			name:   "apple pay has no confirmation",
			data:   models.TokenizeApplePay{PaymentData: "YmFzZTY0", SavePaymentMethod: false},
			params: TokenizeParams{Amount: amount},
			wantBody: func(t *testing.T, req kassaapi.TokensRequest) {
				assert.Equal(t, models.PaymentMethodApplePay, req.Body.PaymentMethodData.Type)
				assert.Equal(t, "YmFzZTY0", req.Body.PaymentMethodData.PaymentData)
				assert.Nil(t, req.Body.Confirmation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockGatewayClient)
			var captured kassaapi.TokensRequest
			client.On("Tokens", mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					captured = args.Get(1).(kassaapi.TokensRequest)
				}).
				Return(&kassaapi.TokensResponse{PaymentToken: "tok-1"}, nil)

			svc := New(client, discardLogger(), "gw-1", nil)
			tokens, err := svc.Tokenize(context.Background(), tt.data, tt.params)

			require.NoError(t, err)
			assert.Equal(t, "tok-1", tokens.PaymentToken)
			tt.wantBody(t, captured)
		})
	}
}

func TestTokenize_TransportErrorMapped(t *testing.T) {
	client := new(MockGatewayClient)
	client.On("Tokens", mock.Anything, mock.Anything).
		Return(nil, &url.Error{Op: "Post", URL: "https://gateway", Err: errors.New("timeout")})

	svc := New(client, discardLogger(), "gw-1", nil)
	_, err := svc.Tokenize(context.Background(), models.TokenizeWallet{}, TokenizeParams{})

	assert.ErrorIs(t, err, ErrInternetConnection)
}

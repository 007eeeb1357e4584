// Package payment содержит сервис платёжных операций: получение списка
// способов оплаты и токенизацию. Каждая операция — ровно один вызов
// шлюза с единым шагом перевода транспортных ошибок в доменные.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/kassaapi"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
)

// GatewayClient описывает контракт клиента платёжного шлюза.
type GatewayClient interface {
	PaymentOptions(ctx context.Context, req kassaapi.PaymentOptionsRequest) (*kassaapi.PaymentOptionsResponse, error)
	Tokens(ctx context.Context, req kassaapi.TokensRequest) (*kassaapi.TokensResponse, error)
}

// TokenizeParams общие параметры запроса токенизации.
type TokenizeParams struct {
	Amount              *models.MonetaryAmount
	TmxSessionID        string
	WalletAuthorization string
}

// Service сервис платёжных операций.
type Service struct {
	client    GatewayClient
	log       *slog.Logger
	gatewayID string
	supported map[models.PaymentMethodType]bool
}

// New создает новый Service. supportedMethods ограничивает список
// способов оплаты, которые сервис отдаёт наружу; nil означает
// "поддерживаются все".
func New(client GatewayClient, log *slog.Logger, gatewayID string, supportedMethods []models.PaymentMethodType) *Service {
	var supported map[models.PaymentMethodType]bool
	if supportedMethods != nil {
		supported = make(map[models.PaymentMethodType]bool, len(supportedMethods))
		for _, m := range supportedMethods {
			supported[m] = true
		}
	}
	return &Service{
		client:    client,
		log:       log,
		gatewayID: gatewayID,
		supported: supported,
	}
}

// FetchPaymentOptions возвращает список способов оплаты. Пустой список
// всегда превращается в ErrEmptyList, сетевые сбои в ErrInternetConnection.
func (s *Service) FetchPaymentOptions(ctx context.Context, amount *models.MonetaryAmount, walletAuthorization string, savePaymentMethod *bool) ([]models.PaymentOption, error) {
	const op = "payment.FetchPaymentOptions"

	resp, err := s.client.PaymentOptions(ctx, kassaapi.PaymentOptionsRequest{
		Amount:              amount,
		GatewayID:           s.gatewayID,
		SavePaymentMethod:   savePaymentMethod,
		WalletAuthorization: walletAuthorization,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	items := s.filterOptions(resp.Items)
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyList)
	}
	return items, nil
}

// Tokenize диспетчеризует данные токенизации в метод соответствующего
// способа оплаты.
func (s *Service) Tokenize(ctx context.Context, data models.TokenizeData, params TokenizeParams) (*models.Tokens, error) {
	switch d := data.(type) {
	case models.TokenizeBankCard:
		return s.TokenizeBankCard(ctx, d, params)
	case models.TokenizeWallet:
		return s.TokenizeWallet(ctx, d, params)
	case models.TokenizeLinkedCard:
		return s.TokenizeLinkedCard(ctx, d, params)
	case models.TokenizeSberbank:
		return s.TokenizeSberbank(ctx, d, params)
	case models.TokenizeApplePay:
		return s.TokenizeApplePay(ctx, d, params)
	default:
		return nil, fmt.Errorf("payment.Tokenize: %w", ErrUnsupportedTokenizeData)
	}
}

// TokenizeBankCard токенизирует новую банковскую карту.
func (s *Service) TokenizeBankCard(ctx context.Context, data models.TokenizeBankCard, params TokenizeParams) (*models.Tokens, error) {
	const op = "payment.TokenizeBankCard"
	return s.tokens(ctx, op, kassaapi.TokensRequest{
		Body: kassaapi.TokensRequestBody{
			Amount:            params.Amount,
			Confirmation:      &data.Confirmation,
			SavePaymentMethod: data.SavePaymentMethod,
			TmxSessionID:      params.TmxSessionID,
			PaymentMethodData: kassaapi.PaymentMethodData{
				Type: models.PaymentMethodBankCard,
				Card: &data.BankCard,
			},
		},
	})
}

// TokenizeWallet токенизирует оплату из кошелька. Требует авторизацию
// кошелька в params.
func (s *Service) TokenizeWallet(ctx context.Context, data models.TokenizeWallet, params TokenizeParams) (*models.Tokens, error) {
	const op = "payment.TokenizeWallet"
	return s.tokens(ctx, op, kassaapi.TokensRequest{
		WalletAuthorization: params.WalletAuthorization,
		Body: kassaapi.TokensRequestBody{
			Amount:            params.Amount,
			Confirmation:      &data.Confirmation,
			SavePaymentMethod: data.SavePaymentMethod,
			TmxSessionID:      params.TmxSessionID,
			PaymentMethodData: kassaapi.PaymentMethodData{
				Type: models.PaymentMethodWallet,
			},
		},
	})
}

// TokenizeLinkedCard токенизирует привязанную к кошельку карту.
func (s *Service) TokenizeLinkedCard(ctx context.Context, data models.TokenizeLinkedCard, params TokenizeParams) (*models.Tokens, error) {
	const op = "payment.TokenizeLinkedCard"
	return s.tokens(ctx, op, kassaapi.TokensRequest{
		WalletAuthorization: params.WalletAuthorization,
		Body: kassaapi.TokensRequestBody{
			Amount:            params.Amount,
			Confirmation:      &data.Confirmation,
			SavePaymentMethod: data.SavePaymentMethod,
			TmxSessionID:      params.TmxSessionID,
			PaymentMethodData: kassaapi.PaymentMethodData{
				Type:   models.PaymentMethodLinkedCard,
				CardID: data.CardID,
				CSC:    data.CSC,
			},
		},
	})
}

// TokenizeSberbank токенизирует оплату через Сбербанк по номеру телефона.
func (s *Service) TokenizeSberbank(ctx context.Context, data models.TokenizeSberbank, params TokenizeParams) (*models.Tokens, error) {
	const op = "payment.TokenizeSberbank"
	return s.tokens(ctx, op, kassaapi.TokensRequest{
		Body: kassaapi.TokensRequestBody{
			Amount:            params.Amount,
			Confirmation:      &data.Confirmation,
			SavePaymentMethod: data.SavePaymentMethod,
			TmxSessionID:      params.TmxSessionID,
			PaymentMethodData: kassaapi.PaymentMethodData{
				Type:  models.PaymentMethodSberbank,
				Phone: data.PhoneNumber,
			},
		},
	})
}

// TokenizeApplePay токенизирует платёжный токен Apple Pay.
func (s *Service) TokenizeApplePay(ctx context.Context, data models.TokenizeApplePay, params TokenizeParams) (*models.Tokens, error) {
	const op = "payment.TokenizeApplePay"
	return s.tokens(ctx, op, kassaapi.TokensRequest{
		Body: kassaapi.TokensRequestBody{
			Amount:            params.Amount,
			SavePaymentMethod: data.SavePaymentMethod,
			TmxSessionID:      params.TmxSessionID,
			PaymentMethodData: kassaapi.PaymentMethodData{
				Type:        models.PaymentMethodApplePay,
				PaymentData: data.PaymentData,
			},
		},
	})
}

func (s *Service) tokens(ctx context.Context, op string, req kassaapi.TokensRequest) (*models.Tokens, error) {
	resp, err := s.client.Tokens(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &models.Tokens{PaymentToken: resp.PaymentToken}, nil
}

func (s *Service) filterOptions(items []models.PaymentOption) []models.PaymentOption {
	if s.supported == nil {
		return items
	}
	filtered := make([]models.PaymentOption, 0, len(items))
	for _, item := range items {
		if s.supported[item.PaymentMethodType] {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

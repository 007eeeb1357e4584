// Package session выпускает JWT сессии оформления по ключу мерчанта.
package session

import (
	"crypto/subtle"
	"errors"
	"fmt"

	libjwt "github.com/magabrotheeeer/checkout-tokenizer/internal/lib/jwt"
)

// ErrInvalidCredentials ключ мерчанта не принят.
var ErrInvalidCredentials = errors.New("invalid shop credentials")

// Service сервис открытия сессий оформления.
type Service struct {
	maker     libjwt.Maker
	shopID    string
	secretKey string
	gatewayID string
}

// New создает новый Service.
func New(maker libjwt.Maker, shopID, secretKey, gatewayID string) *Service {
	return &Service{
		maker:     maker,
		shopID:    shopID,
		secretKey: secretKey,
		gatewayID: gatewayID,
	}
}

// Open проверяет ключ мерчанта и выпускает токен сессии оформления.
func (s *Service) Open(shopID, secretKey string) (string, error) {
	const op = "session.Open"

	if shopID != s.shopID ||
		subtle.ConstantTimeCompare([]byte(secretKey), []byte(s.secretKey)) != 1 {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.maker.GenerateToken(shopID, s.gatewayID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

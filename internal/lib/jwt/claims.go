// Package jwt реализует выпуск и разбор JWT сессий оформления заказа.
//
// Сессия привязана к магазину и шлюзу мерчанта; токен авторизует
// вызовы платёжного API в рамках одного оформления.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims данные сессии оформления, хранящиеся в JWT.
type SessionClaims struct {
	ShopID               string `json:"shop_id"`              // Идентификатор магазина
	GatewayID            string `json:"gateway_id,omitempty"` // Идентификатор шлюза мерчанта
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для выпуска и разбора сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен сессии для магазина и шлюза.
	GenerateToken(shopID, gatewayID string) (string, error)
	// ParseToken возвращает *SessionClaims, если токен корректен.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

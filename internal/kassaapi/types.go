package kassaapi

import (
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
)

// Error ошибка уровня API шлюза.
type Error struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

func (e *Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return e.Code + ": " + e.Description
}

// PaymentOptionsRequest параметры запроса списка способов оплаты.
type PaymentOptionsRequest struct {
	Amount              *models.MonetaryAmount `json:"amount,omitempty"`
	GatewayID           string                 `json:"gateway_id,omitempty"`
	SavePaymentMethod   *bool                  `json:"save_payment_method,omitempty"`
	WalletAuthorization string                 `json:"-"`
}

// PaymentOptionsResponse ответ со списком способов оплаты.
type PaymentOptionsResponse struct {
	Items []models.PaymentOption `json:"items"`
}

// TokensRequest запрос токенизации: тело плюс заголовок авторизации
// кошелька для кошельковых способов оплаты.
type TokensRequest struct {
	Body                TokensRequestBody
	WalletAuthorization string
}

// TokensRequestBody тело запроса токенизации.
type TokensRequestBody struct {
	Amount            *models.MonetaryAmount `json:"amount,omitempty"`
	Confirmation      *models.Confirmation   `json:"confirmation,omitempty"`
	SavePaymentMethod bool                   `json:"save_payment_method"`
	PaymentMethodData PaymentMethodData      `json:"payment_method_data"`
	TmxSessionID      string                 `json:"tmx_session_id,omitempty"`
}

// PaymentMethodData данные способа оплаты в запросе токенизации.
// Заполняются только поля соответствующего типа.
type PaymentMethodData struct {
	Type models.PaymentMethodType `json:"type"`

	// bank_card
	Card *models.BankCard `json:"card,omitempty"`

	// linked_card
	CardID string `json:"card_id,omitempty"`
	CSC    string `json:"csc,omitempty"`

	// sberbank
	Phone string `json:"phone,omitempty"`

	// apple_pay
	PaymentData string `json:"payment_data,omitempty"`
}

// TokensResponse ответ токенизации.
type TokensResponse struct {
	PaymentToken string `json:"payment_token"`
}

// CheckoutConfig удалённая конфигурация оформления мерчанта.
type CheckoutConfig struct {
	PaymentMethods    []models.PaymentMethodType `json:"payment_methods"`
	SavePaymentMethod models.SavePaymentMethod   `json:"save_payment_method"`
	UserAgreementURL  string                     `json:"user_agreement_url,omitempty"`
}

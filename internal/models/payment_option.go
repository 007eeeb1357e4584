// Package models содержит доменные структуры платёжного ядра:
// способы оплаты, данные карты, данные токенизации и состояние
// кошелькового логина.
package models

// PaymentMethodType тип способа оплаты, как его отдаёт шлюз.
type PaymentMethodType string

const (
	// PaymentMethodBankCard оплата новой банковской картой.
	PaymentMethodBankCard PaymentMethodType = "bank_card"
	// PaymentMethodWallet оплата из кошелька.
	PaymentMethodWallet PaymentMethodType = "yoo_money"
	// PaymentMethodLinkedCard оплата привязанной к кошельку картой.
	PaymentMethodLinkedCard PaymentMethodType = "linked_card"
	// PaymentMethodSberbank оплата через СМС-подтверждение Сбербанка.
	PaymentMethodSberbank PaymentMethodType = "sberbank"
	// PaymentMethodApplePay оплата через Apple Pay.
	PaymentMethodApplePay PaymentMethodType = "apple_pay"
)

// ConfirmationType способ завершения внешнего подтверждения платежа.
type ConfirmationType string

const (
	// ConfirmationRedirect подтверждение через редирект (3-D Secure).
	ConfirmationRedirect ConfirmationType = "redirect"
	// ConfirmationExternal подтверждение во внешнем приложении.
	ConfirmationExternal ConfirmationType = "external"
)

// APISavePaymentMethod политика сохранения способа оплаты на стороне шлюза.
type APISavePaymentMethod string

const (
	// APISaveAllowed шлюз разрешает сохранить способ оплаты.
	APISaveAllowed APISavePaymentMethod = "allowed"
	// APISaveForbidden шлюз запрещает сохранение.
	APISaveForbidden APISavePaymentMethod = "forbidden"
	// APISaveUnknown шлюз не сообщил политику.
	APISaveUnknown APISavePaymentMethod = "unknown"
)

// SavePaymentMethod политика мерчанта по сохранению способа оплаты.
type SavePaymentMethod string

const (
	// SaveOn сохранение обязательно.
	SaveOn SavePaymentMethod = "on"
	// SaveOff сохранение выключено.
	SaveOff SavePaymentMethod = "off"
	// SaveUserSelects решает пользователь.
	SaveUserSelects SavePaymentMethod = "user_selects"
)

// MonetaryAmount денежная сумма в формате шлюза: десятичная строка и валюта.
type MonetaryAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// PaymentOption способ оплаты из ответа списка способов оплаты.
// Неизменяем после получения; живёт до конца сессии оформления.
type PaymentOption struct {
	PaymentMethodType         PaymentMethodType    `json:"payment_method_type"`
	ConfirmationTypes         []ConfirmationType   `json:"confirmation_types,omitempty"`
	Charge                    MonetaryAmount       `json:"charge"`
	Fee                       *MonetaryAmount      `json:"fee,omitempty"`
	SavePaymentMethod         APISavePaymentMethod `json:"save_payment_method"`
	SavePaymentInstrument     bool                 `json:"save_payment_instrument"`
	IdentificationRequirement string               `json:"identification_requirement,omitempty"`

	// Заполняется только для paymentMethodType == yoo_money.
	Wallet *WalletInstrument `json:"wallet,omitempty"`
	// Заполняется только для paymentMethodType == linked_card.
	LinkedCard *LinkedCardInstrument `json:"linked_card,omitempty"`
}

// WalletInstrument данные кошелька пользователя.
type WalletInstrument struct {
	AccountID string          `json:"account_id"`
	Balance   *MonetaryAmount `json:"balance,omitempty"`
}

// LinkedCardInstrument данные привязанной к кошельку карты.
type LinkedCardInstrument struct {
	CardID   string `json:"card_id"`
	CardMask string `json:"card_mask"`
	CardType string `json:"card_type"`
	CardName string `json:"card_name,omitempty"`
}

// HasFee сообщает, берёт ли шлюз комиссию за этот способ оплаты.
func (p PaymentOption) HasFee() bool {
	return p.Fee != nil && p.Fee.Value != "" && p.Fee.Value != "0.00"
}

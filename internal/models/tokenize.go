package models

// Confirmation описывает, как плательщик завершает внешнее подтверждение
// после токенизации. Для redirect обязателен ReturnURL.
type Confirmation struct {
	Type      ConfirmationType `json:"type"`
	ReturnURL string           `json:"return_url,omitempty"`
}

// NewRedirectConfirmation собирает подтверждение через редирект.
func NewRedirectConfirmation(returnURL string) Confirmation {
	return Confirmation{Type: ConfirmationRedirect, ReturnURL: returnURL}
}

// NewExternalConfirmation собирает подтверждение во внешнем приложении.
func NewExternalConfirmation() Confirmation {
	return Confirmation{Type: ConfirmationExternal}
}

// TokenizeData размеченное объединение данных токенизации: по одному
// варианту на способ оплаты. Собирается один раз на сабмит и передаётся
// в платёжный сервис.
type TokenizeData interface {
	// Scheme возвращает тег схемы токенизации данного варианта.
	Scheme() TokenizeScheme
	// SaveFlag возвращает итоговый флаг сохранения способа оплаты.
	SaveFlag() bool
}

// TokenizeScheme тег схемы токенизации, стабильно соответствует
// способу оплаты один к одному.
type TokenizeScheme string

const (
	// SchemeBankCard схема токенизации новой карты.
	SchemeBankCard TokenizeScheme = "bank-card"
	// SchemeWallet схема токенизации кошелька.
	SchemeWallet TokenizeScheme = "wallet"
	// SchemeLinkedCard схема токенизации привязанной карты.
	SchemeLinkedCard TokenizeScheme = "linked-card"
	// SchemeSmsSbol схема токенизации Сбербанка.
	SchemeSmsSbol TokenizeScheme = "sms-sbol"
	// SchemeApplePay схема токенизации Apple Pay.
	SchemeApplePay TokenizeScheme = "apple-pay"
)

// TokenizeBankCard данные токенизации новой банковской карты.
type TokenizeBankCard struct {
	BankCard          BankCard
	Confirmation      Confirmation
	SavePaymentMethod bool
}

// TokenizeWallet данные токенизации кошелька. Авторизация кошелька
// передаётся платёжным сервисом из медиатора, не стратегией.
type TokenizeWallet struct {
	Confirmation      Confirmation
	SavePaymentMethod bool
}

// TokenizeLinkedCard данные токенизации привязанной карты.
type TokenizeLinkedCard struct {
	CardID            string
	CSC               string
	Confirmation      Confirmation
	SavePaymentMethod bool
}

// TokenizeSberbank данные токенизации через Сбербанк: телефон и
// внешнее подтверждение без return URL.
type TokenizeSberbank struct {
	PhoneNumber       string
	Confirmation      Confirmation
	SavePaymentMethod bool
}

// TokenizeApplePay данные токенизации Apple Pay: платёжный токен
// в base64.
type TokenizeApplePay struct {
	PaymentData       string
	SavePaymentMethod bool
}

// Scheme реализует TokenizeData.
func (TokenizeBankCard) Scheme() TokenizeScheme { return SchemeBankCard }

// Scheme реализует TokenizeData.
func (TokenizeWallet) Scheme() TokenizeScheme { return SchemeWallet }

// Scheme реализует TokenizeData.
func (TokenizeLinkedCard) Scheme() TokenizeScheme { return SchemeLinkedCard }

// Scheme реализует TokenizeData.
func (TokenizeSberbank) Scheme() TokenizeScheme { return SchemeSmsSbol }

// Scheme реализует TokenizeData.
func (TokenizeApplePay) Scheme() TokenizeScheme { return SchemeApplePay }

// SaveFlag реализует TokenizeData.
func (d TokenizeBankCard) SaveFlag() bool { return d.SavePaymentMethod }

// SaveFlag реализует TokenizeData.
func (d TokenizeWallet) SaveFlag() bool { return d.SavePaymentMethod }

// SaveFlag реализует TokenizeData.
func (d TokenizeLinkedCard) SaveFlag() bool { return d.SavePaymentMethod }

// SaveFlag реализует TokenizeData.
func (d TokenizeSberbank) SaveFlag() bool { return d.SavePaymentMethod }

// SaveFlag реализует TokenizeData.
func (d TokenizeApplePay) SaveFlag() bool { return d.SavePaymentMethod }

// Tokens результат успешной токенизации: одноразовый платёжный токен.
type Tokens struct {
	PaymentToken string `json:"payment_token"`
}

// Package strategy реализует стратегии токенизации по способам оплаты.
// Стратегия получает события оформления и возвращает эффекты: что
// сделать дальше. События, не относящиеся к способу оплаты стратегии,
// не дают эффектов.
package strategy

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/recurrence"
)

// ErrIncorrectPaymentOption способ оплаты не соответствует данным
// опции. Ошибка конструирования, а не пользовательского ввода.
var ErrIncorrectPaymentOption = errors.New("payment option does not match payment method")

// Event событие оформления, подаваемое в стратегию.
type Event interface{ isEvent() }

// SubmitPressed пользователь подтвердил оплату выбранным способом.
type SubmitPressed struct {
	SaveToggle bool
}

// CardDataConfirmed введены данные новой карты.
type CardDataConfirmed struct {
	Card       models.CardData
	SaveToggle bool
}

// CSCConfirmed введён код проверки привязанной карты.
type CSCConfirmed struct {
	CSC        string
	SaveToggle bool
}

// PhoneConfirmed введён номер телефона для подтверждения по СМС.
type PhoneConfirmed struct {
	Phone      string
	SaveToggle bool
}

// WalletLoginFinished завершилась попытка кошелькового логина.
type WalletLoginFinished struct {
	Response   *models.WalletLoginResponse
	SaveToggle bool
}

// ApplePayAuthorized система выдала платёжный токен Apple Pay.
type ApplePayAuthorized struct {
	PaymentData string
	SaveToggle  bool
}

// ApplePayDismissed пользователь закрыл платёжный лист, не оплатив.
type ApplePayDismissed struct{}

func (SubmitPressed) isEvent()       {}
func (CardDataConfirmed) isEvent()   {}
func (CSCConfirmed) isEvent()        {}
func (PhoneConfirmed) isEvent()      {}
func (WalletLoginFinished) isEvent() {}
func (ApplePayAuthorized) isEvent()  {}
func (ApplePayDismissed) isEvent()   {}

// Effect действие, которое должна выполнить вызывающая сторона.
type Effect interface{ isEffect() }

// RequestCardData нужно получить от пользователя данные новой карты.
type RequestCardData struct{}

// RequestCSC нужно получить код проверки привязанной карты.
type RequestCSC struct {
	CardMask string
}

// RequestPhone нужно получить номер телефона плательщика.
type RequestPhone struct{}

// LoginWallet нужно пройти кошельковый логин.
type LoginWallet struct {
	Reusable bool
}

// Present2FA нужно показать пользователю ввод второго фактора.
type Present2FA struct {
	State         models.AuthTypeState
	ProcessID     string
	AuthContextID string
}

// Tokenize нужно выполнить токенизацию с собранными данными.
type Tokenize struct {
	Data models.TokenizeData
}

// PresentContract нужно показать контракт перед оплатой.
type PresentContract struct{}

// PresentApplePaySheet нужно показать платёжный лист Apple Pay.
type PresentApplePaySheet struct{}

// Finish оформление завершено без токенизации.
type Finish struct{}

func (RequestCardData) isEffect()      {}
func (RequestCSC) isEffect()           {}
func (RequestPhone) isEffect()         {}
func (LoginWallet) isEffect()          {}
func (Present2FA) isEffect()           {}
func (Tokenize) isEffect()             {}
func (PresentContract) isEffect()      {}
func (PresentApplePaySheet) isEffect() {}
func (Finish) isEffect()               {}

// CardValidator контракт валидатора данных карты.
type CardValidator interface {
	Validate(data models.CardData) []error
}

// WalletState контракт медиатора авторизации: стратегии кошелька
// достаточно знать, есть ли многоразовый токен.
type WalletState interface {
	HasReusableWalletToken(userKey string) (bool, error)
}

// Deps зависимости стратегий.
type Deps struct {
	Log       *slog.Logger
	Card      CardValidator
	Wallet    WalletState
	ReturnURL string
	// UserKey ключ пользователя в хранилище авторизации.
	UserKey string
}

// Strategy стратегия токенизации одного способа оплаты.
type Strategy interface {
	// Handle обрабатывает событие и возвращает эффекты.
	Handle(ctx context.Context, event Event) ([]Effect, error)
	// Scheme возвращает тег схемы токенизации стратегии.
	Scheme() models.TokenizeScheme
}

// New создает стратегию для способа оплаты опции. Политика сохранения
// вычисляется здесь один раз и дальше только читается.
func New(option models.PaymentOption, clientPolicy models.SavePaymentMethod, deps Deps) (Strategy, error) {
	mode := recurrence.Resolve(clientPolicy, option.SavePaymentMethod, option.SavePaymentInstrument)

	switch option.PaymentMethodType {
	case models.PaymentMethodBankCard:
		return &BankCardStrategy{option: option, mode: mode, deps: deps}, nil
	case models.PaymentMethodWallet:
		return &WalletStrategy{option: option, mode: mode, deps: deps}, nil
	case models.PaymentMethodLinkedCard:
		if option.LinkedCard == nil {
			return nil, ErrIncorrectPaymentOption
		}
		return &LinkedCardStrategy{option: option, mode: mode, deps: deps}, nil
	case models.PaymentMethodSberbank:
		return &SberbankStrategy{option: option, mode: mode, deps: deps}, nil
	case models.PaymentMethodApplePay:
		return &ApplePayStrategy{option: option, mode: mode, deps: deps}, nil
	default:
		return nil, ErrIncorrectPaymentOption
	}
}

// saveFlag вычисляет итоговый флаг сохранения для события с текущим
// положением переключателя.
func saveFlag(mode recurrence.Mode, toggle bool) bool {
	return recurrence.Derive(mode, toggle)
}

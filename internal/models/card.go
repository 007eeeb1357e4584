package models

import "fmt"

// CardType платёжная система карты, определяется по BIN.
type CardType string

const (
	// CardTypeVisa карты Visa и Visa Electron.
	CardTypeVisa CardType = "visa"
	// CardTypeMasterCard карты MasterCard и Maestro.
	CardTypeMasterCard CardType = "mastercard"
	// CardTypeMir карты Мир.
	CardTypeMir CardType = "mir"
	// CardTypeUnknown платёжная система не распознана.
	CardTypeUnknown CardType = "unknown"
)

// CardData накопитель данных карты, заполняется по мере ввода.
// Все поля опциональны до момента подтверждения формы.
type CardData struct {
	PAN         string
	ExpiryMonth int
	ExpiryYear  int
	CSC         string
}

// BankCard полностью заполненные данные карты для запроса токенизации.
// Месяц всегда дополнен нулём до двух цифр.
type BankCard struct {
	Number      string `json:"number"`
	ExpiryYear  string `json:"expiry_year"`
	ExpiryMonth string `json:"expiry_month"`
	CSC         string `json:"csc"`
}

// NewBankCard собирает BankCard из накопленных данных.
// Возвращает nil, если какое-то из обязательных полей не заполнено.
func NewBankCard(data CardData) *BankCard {
	if data.PAN == "" || data.ExpiryMonth == 0 || data.ExpiryYear == 0 || data.CSC == "" {
		return nil
	}
	return &BankCard{
		Number:      data.PAN,
		ExpiryYear:  fmt.Sprintf("%d", data.ExpiryYear),
		ExpiryMonth: fmt.Sprintf("%02d", data.ExpiryMonth),
		CSC:         data.CSC,
	}
}

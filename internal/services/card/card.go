// Package card содержит валидацию данных банковской карты и
// определение платёжной системы по BIN.
package card

import (
	"errors"
	"strconv"
	"time"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/luhn"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
)

// Ошибки валидации полей карты. Это значения для подсветки полей
// формы, они не прерывают работу сервиса.
var (
	// ErrPANEmpty номер карты не заполнен.
	ErrPANEmpty = errors.New("pan is empty")
	// ErrPANInvalidLength длина номера карты вне допустимого диапазона.
	ErrPANInvalidLength = errors.New("pan has invalid length")
	// ErrLuhnFailed номер карты не прошёл проверку Луна.
	ErrLuhnFailed = errors.New("pan failed luhn check")
	// ErrExpiryEmpty срок действия не заполнен.
	ErrExpiryEmpty = errors.New("expiry date is empty")
	// ErrInvalidMonth месяц вне диапазона 1..12.
	ErrInvalidMonth = errors.New("invalid expiry month")
	// ErrExpired срок действия карты истёк.
	ErrExpired = errors.New("card is expired")
	// ErrCSCInvalidLength код проверки не из 3-4 цифр.
	ErrCSCInvalidLength = errors.New("csc has invalid length")
)

// binRange диапазон BIN и параметры длины номера для платёжной системы.
type binRange struct {
	cardType  models.CardType
	low, high int
	lengths   []int
}

var binRanges = []binRange{
	{cardType: models.CardTypeMir, low: 2200, high: 2204, lengths: []int{16, 17, 18, 19}},
	{cardType: models.CardTypeMasterCard, low: 2221, high: 2720, lengths: []int{16}},
	{cardType: models.CardTypeVisa, low: 4000, high: 4999, lengths: []int{13, 16, 19}},
	{cardType: models.CardTypeMasterCard, low: 5000, high: 5899, lengths: []int{16}},
	{cardType: models.CardTypeMasterCard, low: 6000, high: 6999, lengths: []int{16, 19}},
}

// Service валидирует данные карты и определяет её тип.
type Service struct {
	now func() time.Time
}

// New создает новый Service.
func New() *Service {
	return &Service{now: time.Now}
}

// NewWithClock создает Service с заданными часами. Используется в тестах.
func NewWithClock(now func() time.Time) *Service {
	return &Service{now: now}
}

// CardType возвращает платёжную систему по номеру карты.
func (s *Service) CardType(pan string) models.CardType {
	if r := findRange(pan); r != nil {
		return r.cardType
	}
	return models.CardTypeUnknown
}

// Validate проверяет накопленные данные карты. Возвращает список
// ошибок валидации или nil, если данные корректны.
func (s *Service) Validate(data models.CardData) []error {
	var errs []error
	if err := s.validatePAN(data.PAN); err != nil {
		errs = append(errs, err)
	}
	if err := s.validateExpiry(data.ExpiryMonth, data.ExpiryYear); err != nil {
		errs = append(errs, err)
	}
	if err := s.validateCSC(data.CSC); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (s *Service) validatePAN(pan string) error {
	if pan == "" {
		return ErrPANEmpty
	}
	if r := findRange(pan); r != nil {
		ok := false
		for _, l := range r.lengths {
			if len(pan) == l {
				ok = true
				break
			}
		}
		if !ok {
			return ErrPANInvalidLength
		}
	} else if len(pan) < 12 || len(pan) > 19 {
		return ErrPANInvalidLength
	}
	if !luhn.Valid(pan) {
		return ErrLuhnFailed
	}
	return nil
}

func (s *Service) validateExpiry(month, year int) error {
	if month == 0 && year == 0 {
		return ErrExpiryEmpty
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	// Двузначный год приводится к четырёхзначному.
	if year < 100 {
		year += 2000
	}
	now := s.now()
	if year < now.Year() || (year == now.Year() && time.Month(month) < now.Month()) {
		return ErrExpired
	}
	return nil
}

func (s *Service) validateCSC(csc string) error {
	if len(csc) < 3 || len(csc) > 4 {
		return ErrCSCInvalidLength
	}
	if _, err := strconv.Atoi(csc); err != nil {
		return ErrCSCInvalidLength
	}
	return nil
}

func findRange(pan string) *binRange {
	if len(pan) < 4 {
		return nil
	}
	bin, err := strconv.Atoi(pan[:4])
	if err != nil {
		return nil
	}
	for i := range binRanges {
		if bin >= binRanges[i].low && bin <= binRanges[i].high {
			return &binRanges[i]
		}
	}
	return nil
}

package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/recurrence"
)

// ErrInvalidPhone номер телефона не принят.
var ErrInvalidPhone = errors.New("invalid phone number")

// SberbankStrategy стратегия оплаты через Сбербанк: номер телефона,
// подтверждение по СМС во внешнем приложении.
type SberbankStrategy struct {
	option models.PaymentOption
	mode   recurrence.Mode
	deps   Deps
}

// Scheme реализует Strategy.
func (s *SberbankStrategy) Scheme() models.TokenizeScheme { return models.SchemeSmsSbol }

// Handle реализует Strategy.
func (s *SberbankStrategy) Handle(_ context.Context, event Event) ([]Effect, error) {
	const op = "strategy.SberbankStrategy.Handle"

	switch e := event.(type) {
	case SubmitPressed:
		return []Effect{RequestPhone{}}, nil

	case PhoneConfirmed:
		phone := normalizePhone(e.Phone)
		if phone == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidPhone)
		}
		return []Effect{Tokenize{Data: models.TokenizeSberbank{
			PhoneNumber:       phone,
			Confirmation:      models.NewExternalConfirmation(),
			SavePaymentMethod: saveFlag(s.mode, e.SaveToggle),
		}}}, nil

	default:
		return nil, nil
	}
}

// normalizePhone оставляет только цифры номера. Пустой результат
// означает непригодный номер.
func normalizePhone(raw string) string {
	digits := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 10 || len(digits) > 15 {
		return ""
	}
	return string(digits)
}

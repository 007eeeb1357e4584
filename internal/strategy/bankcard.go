package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/recurrence"
)

// ErrInvalidCardData данные карты не прошли валидацию. Конкретные
// ошибки полей присоединены через errors.Join.
var ErrInvalidCardData = errors.New("invalid card data")

// BankCardStrategy стратегия оплаты новой банковской картой:
// запрашивает данные карты, валидирует их и токенизирует
// с подтверждением через редирект.
type BankCardStrategy struct {
	option models.PaymentOption
	mode   recurrence.Mode
	deps   Deps
}

// Scheme реализует Strategy.
func (s *BankCardStrategy) Scheme() models.TokenizeScheme { return models.SchemeBankCard }

// Handle реализует Strategy.
func (s *BankCardStrategy) Handle(_ context.Context, event Event) ([]Effect, error) {
	const op = "strategy.BankCardStrategy.Handle"

	switch e := event.(type) {
	case SubmitPressed:
		return []Effect{RequestCardData{}}, nil

	case CardDataConfirmed:
		if errs := s.deps.Card.Validate(e.Card); len(errs) > 0 {
			err := fmt.Errorf("%s: %w", op, errors.Join(append([]error{ErrInvalidCardData}, errs...)...))
			s.deps.Log.Warn("card data rejected", sl.Err(err))
			return nil, err
		}
		bankCard := models.NewBankCard(e.Card)
		if bankCard == nil {
			err := fmt.Errorf("%s: %w", op, ErrInvalidCardData)
			s.deps.Log.Warn("card data incomplete", sl.Err(err))
			return nil, err
		}
		return []Effect{Tokenize{Data: models.TokenizeBankCard{
			BankCard:          *bankCard,
			Confirmation:      models.NewRedirectConfirmation(s.deps.ReturnURL),
			SavePaymentMethod: saveFlag(s.mode, e.SaveToggle),
		}}}, nil

	default:
		return nil, nil
	}
}

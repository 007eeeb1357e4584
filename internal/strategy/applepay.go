package strategy

import (
	"context"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/recurrence"
)

// ApplePayStrategy стратегия Apple Pay. Контракт показывается только
// когда есть что показать: комиссию или переключатель сохранения,
// иначе сразу открывается платёжный лист.
type ApplePayStrategy struct {
	option models.PaymentOption
	mode   recurrence.Mode
	deps   Deps
}

// Scheme реализует Strategy.
func (s *ApplePayStrategy) Scheme() models.TokenizeScheme { return models.SchemeApplePay }

// Handle реализует Strategy.
func (s *ApplePayStrategy) Handle(_ context.Context, event Event) ([]Effect, error) {
	switch e := event.(type) {
	case SubmitPressed:
		if s.option.HasFee() || s.mode != recurrence.ModeHidden {
			return []Effect{PresentContract{}}, nil
		}
		return []Effect{PresentApplePaySheet{}}, nil

	case ApplePayAuthorized:
		return []Effect{Tokenize{Data: models.TokenizeApplePay{
			PaymentData:       e.PaymentData,
			SavePaymentMethod: saveFlag(s.mode, e.SaveToggle),
		}}}, nil

	case ApplePayDismissed:
		return []Effect{Finish{}}, nil

	default:
		return nil, nil
	}
}

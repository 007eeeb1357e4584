package strategy

import (
	"context"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/recurrence"
)

// LinkedCardStrategy стратегия оплаты привязанной к кошельку картой:
// кошельковый логин, затем код проверки карты, затем токенизация.
type LinkedCardStrategy struct {
	option models.PaymentOption
	mode   recurrence.Mode
	deps   Deps
}

// Scheme реализует Strategy.
func (s *LinkedCardStrategy) Scheme() models.TokenizeScheme { return models.SchemeLinkedCard }

// Handle реализует Strategy.
func (s *LinkedCardStrategy) Handle(_ context.Context, event Event) ([]Effect, error) {
	switch e := event.(type) {
	case SubmitPressed:
		has, err := s.deps.Wallet.HasReusableWalletToken(s.deps.UserKey)
		if err != nil {
			s.deps.Log.Warn("failed to check reusable wallet token", sl.Err(err))
			has = false
		}
		if has {
			return []Effect{RequestCSC{CardMask: s.option.LinkedCard.CardMask}}, nil
		}
		return []Effect{LoginWallet{Reusable: saveFlag(s.mode, e.SaveToggle)}}, nil

	case WalletLoginFinished:
		if e.Response == nil {
			return nil, nil
		}
		if e.Response.Authorized {
			return []Effect{RequestCSC{CardMask: s.option.LinkedCard.CardMask}}, nil
		}
		if e.Response.AuthTypeState == nil {
			return nil, nil
		}
		return []Effect{Present2FA{
			State:         *e.Response.AuthTypeState,
			ProcessID:     e.Response.ProcessID,
			AuthContextID: e.Response.AuthContextID,
		}}, nil

	case CSCConfirmed:
		return []Effect{Tokenize{Data: models.TokenizeLinkedCard{
			CardID:            s.option.LinkedCard.CardID,
			CSC:               e.CSC,
			Confirmation:      models.NewRedirectConfirmation(s.deps.ReturnURL),
			SavePaymentMethod: saveFlag(s.mode, e.SaveToggle),
		}}}, nil

	default:
		return nil, nil
	}
}

package strategy

import (
	"context"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/recurrence"
)

// WalletStrategy стратегия оплаты из кошелька. С многоразовым токеном
// токенизация идёт сразу, иначе сначала кошельковый логин и при
// необходимости второй фактор.
type WalletStrategy struct {
	option models.PaymentOption
	mode   recurrence.Mode
	deps   Deps
}

// Scheme реализует Strategy.
func (s *WalletStrategy) Scheme() models.TokenizeScheme { return models.SchemeWallet }

// Handle реализует Strategy.
func (s *WalletStrategy) Handle(_ context.Context, event Event) ([]Effect, error) {
	switch e := event.(type) {
	case SubmitPressed:
		has, err := s.deps.Wallet.HasReusableWalletToken(s.deps.UserKey)
		if err != nil {
			// Недоступное хранилище не блокирует оплату, просто
			// придётся логиниться заново.
			s.deps.Log.Warn("failed to check reusable wallet token", sl.Err(err))
			has = false
		}
		if has {
			return []Effect{Tokenize{Data: s.tokenizeData(e.SaveToggle)}}, nil
		}
		return []Effect{LoginWallet{Reusable: saveFlag(s.mode, e.SaveToggle)}}, nil

	case WalletLoginFinished:
		if e.Response == nil {
			return nil, nil
		}
		if e.Response.Authorized {
			return []Effect{Tokenize{Data: s.tokenizeData(e.SaveToggle)}}, nil
		}
		if e.Response.AuthTypeState == nil {
			return nil, nil
		}
		return []Effect{Present2FA{
			State:         *e.Response.AuthTypeState,
			ProcessID:     e.Response.ProcessID,
			AuthContextID: e.Response.AuthContextID,
		}}, nil

	default:
		return nil, nil
	}
}

func (s *WalletStrategy) tokenizeData(toggle bool) models.TokenizeData {
	return models.TokenizeWallet{
		Confirmation:      models.NewRedirectConfirmation(s.deps.ReturnURL),
		SavePaymentMethod: saveFlag(s.mode, toggle),
	}
}

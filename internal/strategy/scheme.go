package strategy

import (
	"fmt"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
)

// schemeByMethod соответствие способа оплаты и схемы токенизации,
// один к одному.
var schemeByMethod = map[models.PaymentMethodType]models.TokenizeScheme{
	models.PaymentMethodBankCard:   models.SchemeBankCard,
	models.PaymentMethodWallet:     models.SchemeWallet,
	models.PaymentMethodLinkedCard: models.SchemeLinkedCard,
	models.PaymentMethodSberbank:   models.SchemeSmsSbol,
	models.PaymentMethodApplePay:   models.SchemeApplePay,
}

// SchemeForMethod возвращает тег схемы токенизации способа оплаты.
func SchemeForMethod(method models.PaymentMethodType) (models.TokenizeScheme, error) {
	scheme, ok := schemeByMethod[method]
	if !ok {
		return "", fmt.Errorf("strategy.SchemeForMethod: %w: %s", ErrIncorrectPaymentOption, method)
	}
	return scheme, nil
}

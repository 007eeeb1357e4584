package walletlogin

import (
	"errors"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
)

// ErrUnsupportedAuthType в контексте нет ни одного пригодного типа
// авторизации.
var ErrUnsupportedAuthType = errors.New("no supported auth type available")

// authTypePriority порядок предпочтения типов второго фактора.
var authTypePriority = []models.AuthType{
	models.AuthTypeSms,
	models.AuthTypeTotp,
	models.AuthTypePush,
	models.AuthTypeSecurePassword,
	models.AuthTypeEmergency,
}

// selectAuthType выбирает тип авторизации из контекста: тип по
// умолчанию, если он пригоден, иначе первый пригодный по приоритету.
// Пригодным считается включённый тип, для которого можно выпустить
// сессию.
func selectAuthType(states []models.AuthTypeState, defaultType models.AuthType) (models.AuthTypeState, error) {
	eligible := make(map[models.AuthType]models.AuthTypeState, len(states))
	for _, state := range states {
		if state.Enabled && state.CanBeIssued {
			eligible[state.Type] = state
		}
	}

	if state, ok := eligible[defaultType]; ok {
		return state, nil
	}
	for _, t := range authTypePriority {
		if state, ok := eligible[t]; ok {
			return state, nil
		}
	}
	return models.AuthTypeState{}, ErrUnsupportedAuthType
}

package models

// AuthType тип второго фактора кошелькового логина.
type AuthType string

const (
	// AuthTypeSms код из СМС.
	AuthTypeSms AuthType = "Sms"
	// AuthTypeTotp одноразовый пароль по времени.
	AuthTypeTotp AuthType = "Totp"
	// AuthTypeSecurePassword постоянный платёжный пароль.
	AuthTypeSecurePassword AuthType = "SecurePassword"
	// AuthTypeEmergency аварийный код.
	AuthTypeEmergency AuthType = "Emergency"
	// AuthTypePush подтверждение через push-уведомление.
	AuthTypePush AuthType = "Push"
	// AuthTypeOauthToken авторизация OAuth-токеном.
	AuthTypeOauthToken AuthType = "OauthToken"
)

// ActiveSession описание активной 2FA-сессии: сколько осталось попыток
// ввода и через сколько секунд можно перегенерировать код.
type ActiveSession struct {
	AttemptsLeft int `json:"attempts_left"`
	TimeLeft     int `json:"time_left"`
	CodeLength   int `json:"code_length,omitempty"`
}

// AuthTypeState состояние одного типа авторизации в контексте 2FA.
type AuthTypeState struct {
	Type              AuthType       `json:"type"`
	ActiveSession     *ActiveSession `json:"active_session,omitempty"`
	CanBeIssued       bool           `json:"can_be_issued"`
	Enabled           bool           `json:"enabled"`
	IsSessionRequired bool           `json:"is_session_required"`
}

// WalletLoginResponse результат попытки кошелькового логина.
// Либо токен получен сразу, либо требуется второй фактор: тогда
// ProcessID и AuthContextID должны без изменений пройти через
// последующие вызовы check/resend до завершения сессии.
type WalletLoginResponse struct {
	Authorized bool `json:"authorized"`

	// Заполнено при Authorized == true.
	AccessToken string `json:"access_token,omitempty"`

	// Заполнены при Authorized == false.
	AuthTypeState *AuthTypeState `json:"auth_type_state,omitempty"`
	ProcessID     string         `json:"process_id,omitempty"`
	AuthContextID string         `json:"auth_context_id,omitempty"`
}

// NewAuthorizedLogin собирает ответ с готовым токеном кошелька.
func NewAuthorizedLogin(token string) *WalletLoginResponse {
	return &WalletLoginResponse{Authorized: true, AccessToken: token}
}

// NewNotAuthorizedLogin собирает ответ, требующий второй фактор.
func NewNotAuthorizedLogin(state AuthTypeState, processID, authContextID string) *WalletLoginResponse {
	return &WalletLoginResponse{
		Authorized:    false,
		AuthTypeState: &state,
		ProcessID:     processID,
		AuthContextID: authContextID,
	}
}

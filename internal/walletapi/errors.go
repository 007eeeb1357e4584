package walletapi

import "errors"

// Типизированные отказы бэкенда кошелькового логина. Ошибка
// invalid_context от auth-check отличается от той же ошибки
// context-get/session-generate: для них предусмотрены разные
// действия на стороне клиента.
var (
	// ErrInvalidAnswer неверный код подтверждения.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrInvalidContext контекст авторизации не существует или устарел.
	ErrInvalidContext = errors.New("invalid auth context")
	// ErrCheckInvalidContext контекст не принят на шаге проверки ответа.
	ErrCheckInvalidContext = errors.New("auth check: invalid auth context")
	// ErrSessionsExceeded исчерпан лимит генераций сессий.
	ErrSessionsExceeded = errors.New("sessions exceeded")
	// ErrSessionDoesNotExist сессия не существует или истекла.
	ErrSessionDoesNotExist = errors.New("session does not exist")
	// ErrVerifyAttemptsExceeded исчерпаны попытки ввода кода.
	ErrVerifyAttemptsExceeded = errors.New("verify attempts exceeded")
	// ErrExecute выпуск токена отклонён: авторизация требуется или истекла.
	ErrExecute = errors.New("token issue execute rejected")
)

// backendError тело ошибки в ответе API кошелька.
type backendError struct {
	Err struct {
		Type string `json:"type"`
	} `json:"error"`
}

const (
	codeInvalidAnswer          = "InvalidAnswer"
	codeInvalidContext         = "InvalidContext"
	codeSessionsExceeded       = "SessionsExceeded"
	codeSessionDoesNotExist    = "SessionDoesNotExist"
	codeSessionExpired         = "SessionExpired"
	codeVerifyAttemptsExceeded = "VerifyAttemptsExceeded"
	codeAuthRequired           = "AuthRequired"
	codeAuthExpired            = "AuthExpired"
)

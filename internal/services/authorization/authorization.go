// Package authorization содержит медиатор авторизации кошелька:
// получение платёжного токена через машину логина и его кеширование
// в key-value хранилище. Многоразовый токен переживает сессию
// оформления и позволяет пропустить второй фактор.
package authorization

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/walletlogin"
)

// KeyValue контракт хранилища состояния авторизации. Реализуется
// redis-кешем и встроенным хранилищем.
type KeyValue interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// LoginService контракт машины состояний кошелькового логина.
type LoginService interface {
	RequestAuthorization(ctx context.Context, userAuthorization string, params walletlogin.LoginParams) (*models.WalletLoginResponse, error)
	CheckUserAnswer(ctx context.Context, userAuthorization, processID, authContextID string, authType models.AuthType, answer string) (*models.WalletLoginResponse, error)
	StartNewSession(ctx context.Context, userAuthorization, authContextID string, authType models.AuthType) (*models.AuthTypeState, error)
}

// storedToken запись о токене кошелька в хранилище.
type storedToken struct {
	Token    string `json:"token"`
	Reusable bool   `json:"reusable"`
}

// Service медиатор авторизации кошелька. Мьютекс закрывает гонку
// двойного сабмита: одновременные логины одного пользователя
// выполняются по одному.
type Service struct {
	mu       sync.Mutex
	kv       KeyValue
	login    LoginService
	tokenTTL time.Duration
}

// New создает новый Service. tokenTTL ограничивает срок жизни
// сохранённого многоразового токена, ноль означает хранение без
// ограничения.
func New(kv KeyValue, login LoginService, tokenTTL time.Duration) *Service {
	return &Service{
		kv:       kv,
		login:    login,
		tokenTTL: tokenTTL,
	}
}

func tokenKey(userKey string) string       { return fmt.Sprintf("wallet:%s:token", userKey) }
func displayNameKey(userKey string) string { return fmt.Sprintf("wallet:%s:display_name", userKey) }

// HasReusableWalletToken сообщает, сохранён ли для пользователя
// многоразовый токен кошелька.
func (s *Service) HasReusableWalletToken(userKey string) (bool, error) {
	const op = "authorization.HasReusableWalletToken"

	var stored storedToken
	found, err := s.kv.Get(tokenKey(userKey), &stored)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return found && stored.Reusable && stored.Token != "", nil
}

// WalletToken возвращает сохранённый токен кошелька.
func (s *Service) WalletToken(userKey string) (string, bool, error) {
	const op = "authorization.WalletToken"

	var stored storedToken
	found, err := s.kv.Get(tokenKey(userKey), &stored)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	if !found || stored.Token == "" {
		return "", false, nil
	}
	return stored.Token, true, nil
}

// LoginInWallet получает платёжный токен кошелька. Сохранённый
// многоразовый токен возвращается сразу, минуя машину логина.
// Полученный при логине токен сохраняется с запрошенной
// многоразовостью.
func (s *Service) LoginInWallet(ctx context.Context, userKey, userAuthorization string, amount *models.MonetaryAmount, reusable bool) (*models.WalletLoginResponse, error) {
	const op = "authorization.LoginInWallet"

	s.mu.Lock()
	defer s.mu.Unlock()

	if reusable {
		var stored storedToken
		found, err := s.kv.Get(tokenKey(userKey), &stored)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if found && stored.Reusable && stored.Token != "" {
			return models.NewAuthorizedLogin(stored.Token), nil
		}
	}

	resp, err := s.login.RequestAuthorization(ctx, userAuthorization, walletlogin.LoginParams{
		Amount:       amount,
		Reusable:     reusable,
		TmxSessionID: uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.Authorized {
		if err := s.saveToken(userKey, resp.AccessToken, reusable); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return resp, nil
}

// CheckUserAnswer проверяет ответ пользователя на второй фактор и
// сохраняет выпущенный токен.
func (s *Service) CheckUserAnswer(ctx context.Context, userKey, userAuthorization, processID, authContextID string, authType models.AuthType, answer string, reusable bool) (*models.WalletLoginResponse, error) {
	const op = "authorization.CheckUserAnswer"

	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.login.CheckUserAnswer(ctx, userAuthorization, processID, authContextID, authType, answer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.Authorized {
		if err := s.saveToken(userKey, resp.AccessToken, reusable); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return resp, nil
}

// ResendCode перегенерирует 2FA-сессию.
func (s *Service) ResendCode(ctx context.Context, userAuthorization, authContextID string, authType models.AuthType) (*models.AuthTypeState, error) {
	const op = "authorization.ResendCode"

	state, err := s.login.StartNewSession(ctx, userAuthorization, authContextID, authType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return state, nil
}

// WalletDisplayName возвращает сохранённое имя кошелька.
func (s *Service) WalletDisplayName(userKey string) (string, error) {
	const op = "authorization.WalletDisplayName"

	var name string
	if _, err := s.kv.Get(displayNameKey(userKey), &name); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return name, nil
}

// SetWalletDisplayName сохраняет имя кошелька для отображения.
func (s *Service) SetWalletDisplayName(userKey, name string) error {
	const op = "authorization.SetWalletDisplayName"

	if err := s.kv.Set(displayNameKey(userKey), name, s.tokenTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Logout удаляет сохранённый токен и имя кошелька.
func (s *Service) Logout(userKey string) error {
	const op = "authorization.Logout"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Invalidate(tokenKey(userKey)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Invalidate(displayNameKey(userKey)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) saveToken(userKey, token string, reusable bool) error {
	return s.kv.Set(tokenKey(userKey), storedToken{Token: token, Reusable: reusable}, s.tokenTTL)
}

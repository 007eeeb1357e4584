// Package walletlogin реализует машину состояний кошелькового логина:
// выпуск токена без второго фактора, запуск 2FA-сессии, проверку ответа
// пользователя и перегенерацию кода.
package walletlogin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/walletapi"
)

// maxAuthRetryAttempts сколько раз логин перезапускается с нового
// token-issue-init после устаревшего контекста или исчерпанного лимита
// сессий, прежде чем ошибка уходит наружу.
const maxAuthRetryAttempts = 1

// WalletAPI описывает контракт клиента API кошелькового логина.
type WalletAPI interface {
	TokenIssueInit(ctx context.Context, userAuthorization string, req walletapi.TokenIssueInitRequest) (*walletapi.TokenIssueInit, error)
	TokenIssueExecute(ctx context.Context, userAuthorization, processID string) (string, error)
	AuthContextGet(ctx context.Context, userAuthorization, authContextID string) (*walletapi.AuthContext, error)
	AuthSessionGenerate(ctx context.Context, userAuthorization, authContextID string, authType models.AuthType) (*models.AuthTypeState, error)
	AuthCheck(ctx context.Context, userAuthorization, authContextID string, authType models.AuthType, answer string) error
}

// LoginParams параметры попытки логина.
type LoginParams struct {
	// Amount лимит разового списания выпускаемого токена.
	Amount *models.MonetaryAmount
	// Reusable выпускать многоразовый токен.
	Reusable bool
	// TmxSessionID идентификатор сессии профилирования.
	TmxSessionID string
}

// Service машина состояний кошелькового логина.
type Service struct {
	api          WalletAPI
	log          *slog.Logger
	instanceName string
}

// New создает новый Service.
func New(api WalletAPI, log *slog.Logger, instanceName string) *Service {
	return &Service{
		api:          api,
		log:          log,
		instanceName: instanceName,
	}
}

// RequestAuthorization начинает выпуск платёжного токена кошелька.
// Если второй фактор не нужен, токен выпускается сразу. Иначе
// выбирается тип авторизации и при необходимости создаётся 2FA-сессия.
// Устаревший контекст и исчерпанный лимит сессий перезапускают логин
// с начала, не более maxAuthRetryAttempts раз.
func (s *Service) RequestAuthorization(ctx context.Context, userAuthorization string, params LoginParams) (*models.WalletLoginResponse, error) {
	const op = "walletlogin.RequestAuthorization"

	var lastErr error
	for attempt := 0; attempt <= maxAuthRetryAttempts; attempt++ {
		resp, err := s.login(ctx, userAuthorization, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !errors.Is(err, walletapi.ErrInvalidContext) && !errors.Is(err, walletapi.ErrSessionsExceeded) {
			break
		}
		s.log.Info("retrying wallet login from scratch", sl.Err(err))
	}
	return nil, fmt.Errorf("%s: %w", op, lastErr)
}

func (s *Service) login(ctx context.Context, userAuthorization string, params LoginParams) (*models.WalletLoginResponse, error) {
	init, err := s.api.TokenIssueInit(ctx, userAuthorization, walletapi.TokenIssueInitRequest{
		InstanceName:    s.instanceName,
		SingleAmountMax: params.Amount,
		Multiple:        params.Reusable,
		TmxSessionID:    params.TmxSessionID,
	})
	if err != nil {
		return nil, err
	}

	if !init.AuthRequired {
		token, err := s.api.TokenIssueExecute(ctx, userAuthorization, init.ProcessID)
		if err != nil {
			return nil, err
		}
		return models.NewAuthorizedLogin(token), nil
	}

	return s.startAuthSession(ctx, userAuthorization, init.ProcessID, init.AuthContextID)
}

func (s *Service) startAuthSession(ctx context.Context, userAuthorization, processID, authContextID string) (*models.WalletLoginResponse, error) {
	authCtx, err := s.api.AuthContextGet(ctx, userAuthorization, authContextID)
	if err != nil {
		return nil, err
	}

	state, err := selectAuthType(authCtx.AuthTypes, authCtx.DefaultAuthType)
	if err != nil {
		return nil, err
	}

	if state.IsSessionRequired {
		generated, err := s.api.AuthSessionGenerate(ctx, userAuthorization, authContextID, state.Type)
		if err != nil {
			return nil, err
		}
		state = *generated
	}

	return models.NewNotAuthorizedLogin(state, processID, authContextID), nil
}

// CheckUserAnswer проверяет ответ пользователя на второй фактор и при
// успехе завершает выпуск токена. Ошибки проверки уходят наружу без
// перезапуска: решение о новой сессии принимает вызывающая сторона.
func (s *Service) CheckUserAnswer(ctx context.Context, userAuthorization, processID, authContextID string, authType models.AuthType, answer string) (*models.WalletLoginResponse, error) {
	const op = "walletlogin.CheckUserAnswer"

	if err := s.api.AuthCheck(ctx, userAuthorization, authContextID, authType, answer); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.api.TokenIssueExecute(ctx, userAuthorization, processID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return models.NewAuthorizedLogin(token), nil
}

// StartNewSession перегенерирует 2FA-сессию того же типа авторизации.
func (s *Service) StartNewSession(ctx context.Context, userAuthorization, authContextID string, authType models.AuthType) (*models.AuthTypeState, error) {
	const op = "walletlogin.StartNewSession"

	state, err := s.api.AuthSessionGenerate(ctx, userAuthorization, authContextID, authType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return state, nil
}

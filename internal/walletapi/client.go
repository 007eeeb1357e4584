// Package walletapi реализует клиент API кошелькового логина:
// выпуск платёжного токена кошелька и прохождение второго фактора.
package walletapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
)

// Client клиент API кошелькового логина.
type Client struct {
	merchantKey string
	apiURL      string
	httpClient  *http.Client
}

// NewClient создаёт новый клиент API кошелька.
func NewClient(merchantKey, apiURL string, timeout time.Duration) *Client {
	return &Client{
		merchantKey: merchantKey,
		apiURL:      apiURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// TokenIssueInitRequest параметры инициализации выпуска токена.
type TokenIssueInitRequest struct {
	InstanceName    string                 `json:"instance_name"`
	SingleAmountMax *models.MonetaryAmount `json:"single_amount_max,omitempty"`
	Multiple        bool                   `json:"multiple"`
	TmxSessionID    string                 `json:"tmx_session_id,omitempty"`
}

// TokenIssueInit результат инициализации выпуска токена.
type TokenIssueInit struct {
	AuthRequired  bool   `json:"auth_required"`
	ProcessID     string `json:"process_id"`
	AuthContextID string `json:"auth_context_id,omitempty"`
}

// AuthContext доступные типы авторизации контекста 2FA.
type AuthContext struct {
	AuthTypes       []models.AuthTypeState `json:"auth_types"`
	DefaultAuthType models.AuthType        `json:"default_auth_type,omitempty"`
}

func (c *Client) post(ctx context.Context, path, userAuthorization string, body, out any, codes map[string]error) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+userAuthorization)
	req.Header.Set("Merchant-Client-Authorization", c.merchantKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var backendErr backendError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&backendErr); decodeErr == nil {
			if mapped, ok := codes[backendErr.Err.Type]; ok {
				return mapped
			}
			if backendErr.Err.Type != "" {
				return fmt.Errorf("wallet api: %s", backendErr.Err.Type)
			}
		}
		return fmt.Errorf("wallet api: unexpected status %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// TokenIssueInit начинает выпуск платёжного токена кошелька.
func (c *Client) TokenIssueInit(ctx context.Context, userAuthorization string, reqParams TokenIssueInitRequest) (*TokenIssueInit, error) {
	const op = "walletapi.TokenIssueInit"
	var result TokenIssueInit
	if err := c.post(ctx, "/token-issue-init", userAuthorization, reqParams, &result, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// TokenIssueExecute завершает выпуск токена по идентификатору процесса.
func (c *Client) TokenIssueExecute(ctx context.Context, userAuthorization, processID string) (string, error) {
	const op = "walletapi.TokenIssueExecute"
	body := map[string]string{"process_id": processID}
	codes := map[string]error{
		codeAuthRequired: ErrExecute,
		codeAuthExpired:  ErrExecute,
	}
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.post(ctx, "/token-issue-execute", userAuthorization, body, &result, codes); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return result.AccessToken, nil
}

// AuthContextGet возвращает доступные типы авторизации контекста.
func (c *Client) AuthContextGet(ctx context.Context, userAuthorization, authContextID string) (*AuthContext, error) {
	const op = "walletapi.AuthContextGet"
	body := map[string]string{"auth_context_id": authContextID}
	codes := map[string]error{
		codeInvalidContext: ErrInvalidContext,
	}
	var result AuthContext
	if err := c.post(ctx, "/auth-context-get", userAuthorization, body, &result, codes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// AuthSessionGenerate создаёт 2FA-сессию выбранного типа авторизации.
func (c *Client) AuthSessionGenerate(ctx context.Context, userAuthorization, authContextID string, authType models.AuthType) (*models.AuthTypeState, error) {
	const op = "walletapi.AuthSessionGenerate"
	body := map[string]string{
		"auth_context_id": authContextID,
		"auth_type":       string(authType),
	}
	codes := map[string]error{
		codeInvalidContext:   ErrInvalidContext,
		codeSessionsExceeded: ErrSessionsExceeded,
	}
	var result struct {
		Result models.AuthTypeState `json:"result"`
	}
	if err := c.post(ctx, "/auth-session-generate", userAuthorization, body, &result, codes); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result.Result, nil
}

// AuthCheck проверяет ответ пользователя на второй фактор.
func (c *Client) AuthCheck(ctx context.Context, userAuthorization, authContextID string, authType models.AuthType, answer string) error {
	const op = "walletapi.AuthCheck"
	body := map[string]string{
		"auth_context_id": authContextID,
		"auth_type":       string(authType),
		"answer":          answer,
	}
	codes := map[string]error{
		codeInvalidAnswer:          ErrInvalidAnswer,
		codeInvalidContext:         ErrCheckInvalidContext,
		codeSessionDoesNotExist:    ErrSessionDoesNotExist,
		codeSessionExpired:         ErrSessionDoesNotExist,
		codeVerifyAttemptsExceeded: ErrVerifyAttemptsExceeded,
	}
	if err := c.post(ctx, "/auth-check", userAuthorization, body, nil, codes); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

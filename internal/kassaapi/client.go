// Package kassaapi реализует клиент фронтового API платёжного шлюза:
// список способов оплаты, токенизация и конфигурация оформления.
package kassaapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client клиент платёжного шлюза.
type Client struct {
	shopID     string
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент шлюза
func NewClient(shopID, secretKey, apiURL string) *Client {
	return &Client{
		shopID:     shopID,
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.shopID + ":" + c.secretKey))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr Error
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil || apiErr.Code == "" {
			return fmt.Errorf("unexpected status: %s", resp.Status)
		}
		return &apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// PaymentOptions запрашивает список способов оплаты для суммы заказа.
func (c *Client) PaymentOptions(ctx context.Context, reqParams PaymentOptionsRequest) (*PaymentOptionsResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/payment_options", reqParams)
	if err != nil {
		return nil, err
	}
	if reqParams.WalletAuthorization != "" {
		req.Header.Set("Wallet-Authorization", "Bearer "+reqParams.WalletAuthorization)
	}

	var optionsResp PaymentOptionsResponse
	if err := c.do(req, &optionsResp); err != nil {
		return nil, err
	}
	return &optionsResp, nil
}

// Tokens отправляет запрос токенизации и возвращает платёжный токен.
func (c *Client) Tokens(ctx context.Context, reqParams TokensRequest) (*TokensResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/tokens", reqParams.Body)
	if err != nil {
		return nil, err
	}
	if reqParams.WalletAuthorization != "" {
		req.Header.Set("Wallet-Authorization", "Bearer "+reqParams.WalletAuthorization)
	}

	var tokensResp TokensResponse
	if err := c.do(req, &tokensResp); err != nil {
		return nil, err
	}
	return &tokensResp, nil
}

// CheckoutConfig запрашивает удалённую конфигурацию оформления мерчанта.
func (c *Client) CheckoutConfig(ctx context.Context) (*CheckoutConfig, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/checkout_config", nil)
	if err != nil {
		return nil, err
	}

	var cfg CheckoutConfig
	if err := c.do(req, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

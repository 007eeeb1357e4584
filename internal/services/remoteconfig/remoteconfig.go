// Package remoteconfig отдаёт удалённую конфигурацию оформления
// мерчанта с кешированием. При недоступном шлюзе используется
// последняя успешно полученная конфигурация.
package remoteconfig

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/kassaapi"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
)

const configKey = "remoteconfig:checkout"

// ConfigClient контракт клиента шлюза для получения конфигурации.
type ConfigClient interface {
	CheckoutConfig(ctx context.Context) (*kassaapi.CheckoutConfig, error)
}

// KeyValue контракт кеша конфигурации.
type KeyValue interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// cachedConfig конфигурация вместе с моментом получения.
type cachedConfig struct {
	Config    kassaapi.CheckoutConfig `json:"config"`
	FetchedAt time.Time               `json:"fetched_at"`
}

// Service сервис удалённой конфигурации.
type Service struct {
	client ConfigClient
	kv     KeyValue
	log    *slog.Logger
	ttl    time.Duration
	now    func() time.Time
}

// New создает новый Service. ttl определяет, как долго конфигурация
// считается свежей.
func New(client ConfigClient, kv KeyValue, log *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		client: client,
		kv:     kv,
		log:    log,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Fetch возвращает конфигурацию оформления. Свежая копия берётся из
// кеша, иначе запрашивается у шлюза. Если шлюз недоступен, а в кеше
// есть устаревшая копия, возвращается она.
func (s *Service) Fetch(ctx context.Context) (*kassaapi.CheckoutConfig, error) {
	const op = "remoteconfig.Fetch"

	var cached cachedConfig
	found, err := s.kv.Get(configKey, &cached)
	if err != nil {
		s.log.Warn("failed to read config cache", sl.Err(err))
		found = false
	}
	if found && s.now().Sub(cached.FetchedAt) < s.ttl {
		return &cached.Config, nil
	}

	cfg, err := s.client.CheckoutConfig(ctx)
	if err != nil {
		if found {
			s.log.Warn("serving stale checkout config", sl.Err(err))
			return &cached.Config, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.kv.Set(configKey, cachedConfig{Config: *cfg, FetchedAt: s.now()}, 0); err != nil {
		s.log.Warn("failed to cache checkout config", sl.Err(err))
	}
	return cfg, nil
}

// SavePaymentMethodPolicy возвращает политику мерчанта по сохранению
// способа оплаты. Без конфигурации решение остаётся за пользователем.
func (s *Service) SavePaymentMethodPolicy(ctx context.Context) models.SavePaymentMethod {
	cfg, err := s.Fetch(ctx)
	if err != nil || cfg.SavePaymentMethod == "" {
		return models.SaveUserSelects
	}
	return cfg.SavePaymentMethod
}

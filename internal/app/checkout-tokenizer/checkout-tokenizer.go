package checkouttokenizer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/cache"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/config"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/kassaapi"
	libjwt "github.com/magabrotheeeer/checkout-tokenizer/internal/lib/jwt"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/authorization"
	cardservice "github.com/magabrotheeeer/checkout-tokenizer/internal/services/card"
	paymentservice "github.com/magabrotheeeer/checkout-tokenizer/internal/services/payment"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/remoteconfig"
	sessionservice "github.com/magabrotheeeer/checkout-tokenizer/internal/services/session"
	walletloginservice "github.com/magabrotheeeer/checkout-tokenizer/internal/services/walletlogin"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/storage"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/walletapi"
)

// Срок жизни кеша удалённой конфигурации и сохранённого токена кошелька.
const (
	checkoutConfigTTL = 10 * time.Minute
	walletTokenTTL    = 30 * 24 * time.Hour
)

// App сервис токенизации: HTTP-сервер и внешние соединения.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	rabbitConn *amqp.Connection
}

// New собирает приложение: хранилище состояния, клиентов шлюза и
// кошелька, сервисы и маршруты. В окружении local состояние живёт
// в памяти процесса, иначе в redis.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var kv authorization.KeyValue
	if cfg.Env == "local" {
		kv = storage.NewMemory()
	} else {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		kv = cacheRedis
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitMQAddress, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitConn.Channel()
	if err != nil {
		return nil, err
	}
	if err := rabbitmq.SetupQueues(rabbitCh); err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh, rabbitmq.TokenizeExchange)

	kassaClient := kassaapi.NewClient(cfg.ShopID, cfg.Gateway.SecretKey, cfg.APIURL)
	walletClient := walletapi.NewClient(cfg.Gateway.SecretKey, cfg.WalletAPIURL, cfg.WalletAPI.TimeoutHTTP)

	maker := libjwt.NewMaker(cfg.SessionToken.SecretKey, cfg.SessionToken.TokenTTL)

	sessionService := sessionservice.New(maker, cfg.ShopID, cfg.Gateway.SecretKey, cfg.GatewayID)
	paymentService := paymentservice.New(kassaClient, logger, cfg.GatewayID, nil)
	walletLoginService := walletloginservice.New(walletClient, logger, cfg.InstanceName)
	authService := authorization.New(kv, walletLoginService, walletTokenTTL)
	configService := remoteconfig.New(kassaClient, kv, logger, checkoutConfigTTL)
	cardService := cardservice.New()

	router := chi.NewRouter()
	RegisterRoutes(router, logger, maker, sessionService, paymentService, authService, configService, cardService, publisher, cfg.ReturnURL)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		rabbitConn: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.rabbitConn.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", closeErr))
		}
		return err
	}
}

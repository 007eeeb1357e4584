// Package checkouttokenizer предоставляет маршруты и жизненный цикл
// сервиса токенизации.
package checkouttokenizer

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	configget "github.com/magabrotheeeer/checkout-tokenizer/internal/http/handlers/config/get"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/handlers/health"
	optionslist "github.com/magabrotheeeer/checkout-tokenizer/internal/http/handlers/options/list"
	sessionscreate "github.com/magabrotheeeer/checkout-tokenizer/internal/http/handlers/sessions/create"
	tokenizecreate "github.com/magabrotheeeer/checkout-tokenizer/internal/http/handlers/tokenize/create"
	walletcheck "github.com/magabrotheeeer/checkout-tokenizer/internal/http/handlers/walletauth/check"
	walletlogin "github.com/magabrotheeeer/checkout-tokenizer/internal/http/handlers/walletauth/login"
	walletlogout "github.com/magabrotheeeer/checkout-tokenizer/internal/http/handlers/walletauth/logout"
	walletresend "github.com/magabrotheeeer/checkout-tokenizer/internal/http/handlers/walletauth/resend"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/middlewarectx"
	libjwt "github.com/magabrotheeeer/checkout-tokenizer/internal/lib/jwt"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/authorization"
	cardservice "github.com/magabrotheeeer/checkout-tokenizer/internal/services/card"
	paymentservice "github.com/magabrotheeeer/checkout-tokenizer/internal/services/payment"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/remoteconfig"
	sessionservice "github.com/magabrotheeeer/checkout-tokenizer/internal/services/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	maker libjwt.Maker,
	sessionService *sessionservice.Service,
	paymentService *paymentservice.Service,
	authService *authorization.Service,
	configService *remoteconfig.Service,
	cardService *cardservice.Service,
	publisher tokenizecreate.Publisher,
	returnURL string,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Post("/sessions", sessionscreate.New(logger, sessionService).ServeHTTP)

		// Группа с JWT аутентификацией сессии оформления
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/payment-options", optionslist.New(logger, paymentService, authService).ServeHTTP)
			r.Post("/tokenize", tokenizecreate.New(logger, paymentService, authService, configService, publisher, cardService, returnURL).ServeHTTP)
			r.Post("/wallet/login", walletlogin.New(logger, authService).ServeHTTP)
			r.Post("/wallet/check", walletcheck.New(logger, authService).ServeHTTP)
			r.Post("/wallet/resend", walletresend.New(logger, authService).ServeHTTP)
			r.Post("/wallet/logout", walletlogout.New(logger, authService).ServeHTTP)
			r.Get("/config", configget.New(logger, configService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

// Package middlewarectx содержит HTTP middleware сервиса токенизации.
//
// SessionMiddleware проверяет JWT сессии оформления в заголовке
// Authorization и кладёт в контекст идентификаторы магазина и шлюза.
// При невалидном токене возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/response"
	libjwt "github.com/magabrotheeeer/checkout-tokenizer/internal/lib/jwt"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// ShopID ключ идентификатора магазина в контексте.
	ShopID Key = "shop_id"
	// GatewayID ключ идентификатора шлюза в контексте.
	GatewayID Key = "gateway_id"
)

// TokenParser описывает интерфейс разбора токена сессии.
type TokenParser interface {
	ParseToken(tokenStr string) (*libjwt.SessionClaims, error)
}

// SessionMiddleware возвращает middleware, проверяющий JWT сессии
// оформления в заголовке Authorization.
func SessionMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired session token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired session token"))
				return
			}
			ctx := context.WithValue(r.Context(), ShopID, claims.ShopID)
			ctx = context.WithValue(ctx, GatewayID, claims.GatewayID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Package logout реализует HTTP-обработчик выхода из кошелька:
// удаление сохранённого токена и имени кошелька.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/response"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
)

// Service описывает интерфейс выхода из кошелька.
type Service interface {
	Logout(userKey string) error
}

// Handler управляет HTTP-запросами выхода из кошелька.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выйти из кошелька
// @Description Удаляет сохранённый токен кошелька и имя кошелька.
// @Tags WalletAuth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Выход выполнен"
// @Failure 401 {object} response.ErrorResponse "Сессия не авторизована"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /wallet/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.walletauth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	shopID, ok := r.Context().Value(middlewarectx.ShopID).(string)
	if !ok || shopID == "" {
		log.Error("shop id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Logout(shopID); err != nil {
		log.Error("failed to logout", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not logout"))
		return
	}

	log.Info("wallet logout done")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"logged_out": true,
	}))
}

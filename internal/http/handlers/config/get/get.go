// Package get реализует HTTP-обработчик получения конфигурации
// оформления мерчанта.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/response"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/kassaapi"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
)

// Service описывает интерфейс получения конфигурации оформления.
type Service interface {
	Fetch(ctx context.Context) (*kassaapi.CheckoutConfig, error)
}

// Handler управляет HTTP-запросами конфигурации оформления.
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
// @Summary Конфигурация оформления
// @Description Возвращает конфигурацию оформления мерчанта: доступные способы оплаты и политику сохранения.
// @Tags Config
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Конфигурация оформления"
// @Failure 502 {object} response.ErrorResponse "Шлюз недоступен"
// @Router /config [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.config.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cfg, err := h.service.Fetch(r.Context())
	if err != nil {
		log.Error("failed to fetch checkout config", sl.Err(err))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, response.Error("could not fetch checkout config"))
		return
	}

	log.Info("checkout config fetched")
	render.JSON(w, r, response.StatusOKWithData(cfg))
}

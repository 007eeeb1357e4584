// Package list реализует HTTP-обработчик получения списка способов
// оплаты для текущего оформления.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/response"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/payment"
)

// Service описывает интерфейс получения списка способов оплаты.
type Service interface {
	FetchPaymentOptions(ctx context.Context, amount *models.MonetaryAmount, walletAuthorization string, savePaymentMethod *bool) ([]models.PaymentOption, error)
}

// WalletTokens описывает доступ к сохранённому токену кошелька:
// с ним шлюз возвращает и кошельковые способы оплаты.
type WalletTokens interface {
	WalletToken(userKey string) (string, bool, error)
}

// Handler управляет HTTP-запросами списка способов оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
	wallet  WalletTokens
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, wallet WalletTokens) *Handler {
	return &Handler{
		log:     log,
		service: service,
		wallet:  wallet,
	}
}

// ServeHTTP godoc
// @Summary Список способов оплаты
// @Description Возвращает способы оплаты, доступные для суммы заказа.
// @Tags PaymentOptions
// @Produce  json
// @Param amount query string false "Сумма заказа"
// @Param currency query string false "Валюта заказа"
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список способов оплаты"
// @Failure 401 {object} response.ErrorResponse "Сессия не авторизована"
// @Failure 404 {object} response.ErrorResponse "Нет доступных способов оплаты"
// @Failure 502 {object} response.ErrorResponse "Шлюз недоступен"
// @Router /payment-options [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.options.list"
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

	var amount *models.MonetaryAmount
	if v := r.URL.Query().Get("amount"); v != "" {
		amount = &models.MonetaryAmount{
			Value:    v,
			Currency: r.URL.Query().Get("currency"),
		}
	}

	walletToken, _, err := h.wallet.WalletToken(shopID)
	if err != nil {
		log.Warn("failed to read wallet token", sl.Err(err))
	}

	items, err := h.service.FetchPaymentOptions(r.Context(), amount, walletToken, nil)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrEmptyList):
			log.Warn("no payment options available")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no payment options available"))
		case errors.Is(err, payment.ErrInternetConnection):
			log.Error("gateway unreachable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment gateway unreachable"))
		default:
			log.Error("failed to fetch payment options", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not fetch payment options"))
		}
		return
	}

	log.Info("payment options fetched", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"items": items,
	}))
}

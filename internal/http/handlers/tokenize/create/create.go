// Package create реализует HTTP-обработчик токенизации. Обработчик
// строит стратегию выбранного способа оплаты, подаёт в неё событие
// оформления и исполняет эффекты: токенизацию, требование кошелькового
// логина или второго фактора.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/response"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/payment"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/strategy"
)

// PaymentService описывает интерфейс токенизации.
type PaymentService interface {
	Tokenize(ctx context.Context, data models.TokenizeData, params payment.TokenizeParams) (*models.Tokens, error)
}

// WalletTokens описывает доступ к состоянию авторизации кошелька.
type WalletTokens interface {
	WalletToken(userKey string) (string, bool, error)
	HasReusableWalletToken(userKey string) (bool, error)
}

// ConfigService описывает интерфейс получения политики мерчанта.
type ConfigService interface {
	SavePaymentMethodPolicy(ctx context.Context) models.SavePaymentMethod
}

// Publisher описывает интерфейс публикации событий токенизации.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Handler управляет HTTP-запросами токенизации.
type Handler struct {
	log       *slog.Logger
	payments  PaymentService
	wallet    WalletTokens
	config    ConfigService
	publisher Publisher
	card      strategy.CardValidator
	returnURL string
	validate  *validator.Validate
}

// CardInput данные новой карты в запросе.
type CardInput struct {
	Number      string `json:"number" validate:"required,numeric"`
	ExpiryMonth int    `json:"expiry_month" validate:"required"`
	ExpiryYear  int    `json:"expiry_year" validate:"required"`
	CSC         string `json:"csc" validate:"required,numeric"`
}

// Request запрос токенизации: снимок выбранной опции плюс данные
// конкретного способа оплаты.
type Request struct {
	Option     models.PaymentOption    `json:"payment_option"`
	Amount     *models.MonetaryAmount  `json:"amount,omitempty"`
	SaveToggle bool                    `json:"save_payment_method"`

	Card        *CardInput `json:"card,omitempty" validate:"omitempty"`
	CSC         string     `json:"csc,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	PaymentData string     `json:"payment_data,omitempty"`
}

// tokenizeEvent сообщение жизненного цикла токенизации для RabbitMQ.
type tokenizeEvent struct {
	ShopID            string                `json:"shop_id"`
	Scheme            models.TokenizeScheme `json:"scheme"`
	SavePaymentMethod bool                  `json:"save_payment_method"`
	Error             string                `json:"error,omitempty"`
}

// New создает новый Handler.
func New(log *slog.Logger, payments PaymentService, wallet WalletTokens, config ConfigService, publisher Publisher, card strategy.CardValidator, returnURL string) *Handler {
	return &Handler{
		log:       log,
		payments:  payments,
		wallet:    wallet,
		config:    config,
		publisher: publisher,
		card:      card,
		returnURL: returnURL,
		validate:  validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Токенизировать оплату
// @Description Строит стратегию способа оплаты, обрабатывает событие оформления и возвращает платёжный токен либо следующий шаг.
// @Tags Tokenize
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные токенизации"
// @Security BearerAuth
// @Success 200 {object} map[string]any "Платёжный токен или следующий шаг"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Сессия не авторизована"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Шлюз недоступен"
// @Router /tokenize [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tokenize.create"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if req.Option.PaymentMethodType == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("payment_option.payment_method_type is required"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	clientPolicy := h.config.SavePaymentMethodPolicy(r.Context())

	strat, err := strategy.New(req.Option, clientPolicy, strategy.Deps{
		Log:       h.log,
		Card:      h.card,
		Wallet:    h.wallet,
		ReturnURL: h.returnURL,
		UserKey:   shopID,
	})
	if err != nil {
		log.Error("failed to build strategy", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("payment option does not match payment method"))
		return
	}

	effects, err := strat.Handle(r.Context(), h.event(req))
	if err != nil {
		h.renderStrategyError(w, r, log, err)
		return
	}

	h.applyEffects(w, r, log, shopID, strat, req, effects)
}

// event выбирает событие оформления по заполненным полям запроса.
func (h *Handler) event(req Request) strategy.Event {
	switch req.Option.PaymentMethodType {
	case models.PaymentMethodBankCard:
		if req.Card != nil {
			return strategy.CardDataConfirmed{
				Card: models.CardData{
					PAN:         req.Card.Number,
					ExpiryMonth: req.Card.ExpiryMonth,
					ExpiryYear:  req.Card.ExpiryYear,
					CSC:         req.Card.CSC,
				},
				SaveToggle: req.SaveToggle,
			}
		}
	case models.PaymentMethodLinkedCard:
		if req.CSC != "" {
			return strategy.CSCConfirmed{CSC: req.CSC, SaveToggle: req.SaveToggle}
		}
	case models.PaymentMethodSberbank:
		if req.Phone != "" {
			return strategy.PhoneConfirmed{Phone: req.Phone, SaveToggle: req.SaveToggle}
		}
	case models.PaymentMethodApplePay:
		if req.PaymentData != "" {
			return strategy.ApplePayAuthorized{PaymentData: req.PaymentData, SaveToggle: req.SaveToggle}
		}
	}
	return strategy.SubmitPressed{SaveToggle: req.SaveToggle}
}

func (h *Handler) applyEffects(w http.ResponseWriter, r *http.Request, log *slog.Logger, shopID string, strat strategy.Strategy, req Request, effects []strategy.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case strategy.Tokenize:
			h.tokenize(w, r, log, shopID, strat, req, e.Data)
			return

		case strategy.LoginWallet:
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"action":   "wallet_login_required",
				"reusable": e.Reusable,
			}))
			return

		case strategy.Present2FA:
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"action":          "confirm_2fa",
				"auth_type_state": e.State,
				"process_id":      e.ProcessID,
				"auth_context_id": e.AuthContextID,
			}))
			return

		case strategy.RequestCardData:
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("card data is required"))
			return

		case strategy.RequestCSC:
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"action":    "csc_required",
				"card_mask": e.CardMask,
			}))
			return

		case strategy.RequestPhone:
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("phone number is required"))
			return

		case strategy.PresentContract:
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"action": "present_contract",
			}))
			return

		case strategy.PresentApplePaySheet:
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"action": "present_apple_pay_sheet",
			}))
			return

		case strategy.Finish:
			render.JSON(w, r, response.StatusOKWithData(map[string]any{
				"action": "finished",
			}))
			return
		}
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"action": "none",
	}))
}

func (h *Handler) tokenize(w http.ResponseWriter, r *http.Request, log *slog.Logger, shopID string, strat strategy.Strategy, req Request, data models.TokenizeData) {
	params := payment.TokenizeParams{Amount: req.Amount}

	if data.Scheme() == models.SchemeWallet || data.Scheme() == models.SchemeLinkedCard {
		token, found, err := h.wallet.WalletToken(shopID)
		if err != nil || !found {
			log.Error("wallet token is not available", sl.Err(err))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("wallet authorization required"))
			return
		}
		params.WalletAuthorization = token
	}

	tokens, err := h.payments.Tokenize(r.Context(), data, params)
	if err != nil {
		h.publish("failed", tokenizeEvent{
			ShopID:            shopID,
			Scheme:            strat.Scheme(),
			SavePaymentMethod: data.SaveFlag(),
			Error:             err.Error(),
		})
		if errors.Is(err, payment.ErrInternetConnection) {
			log.Error("gateway unreachable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment gateway unreachable"))
			return
		}
		log.Error("failed to tokenize", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not tokenize payment data"))
		return
	}

	h.publish("succeeded", tokenizeEvent{
		ShopID:            shopID,
		Scheme:            strat.Scheme(),
		SavePaymentMethod: data.SaveFlag(),
	})

	log.Info("payment data tokenized", slog.String("scheme", string(strat.Scheme())))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"payment_token":       tokens.PaymentToken,
		"tokenization_scheme": strat.Scheme(),
	}))
}

func (h *Handler) renderStrategyError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, strategy.ErrInvalidCardData):
		log.Warn("card data rejected", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid card data"))
	case errors.Is(err, strategy.ErrInvalidPhone):
		log.Warn("phone rejected", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid phone number"))
	default:
		log.Error("strategy failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process payment"))
	}
}

func (h *Handler) publish(routingKey string, event tokenizeEvent) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(routingKey, event); err != nil {
		h.log.Warn("failed to publish tokenize event", sl.Err(err))
	}
}

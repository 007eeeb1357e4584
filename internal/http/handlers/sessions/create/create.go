// Package create реализует HTTP-обработчик открытия сессии оформления.
//
// Handler принимает ключ мерчанта, проверяет его и возвращает JWT,
// авторизующий дальнейшие вызовы платёжного API в рамках оформления.
package create

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/response"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/session"
)

// Service описывает интерфейс открытия сессии оформления.
type Service interface {
	Open(shopID, secretKey string) (string, error)
}

// Handler управляет HTTP-запросами на открытие сессии оформления.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Request ключ мерчанта.
type Request struct {
	ShopID    string `json:"shop_id" validate:"required"`
	SecretKey string `json:"secret_key" validate:"required"`
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Открыть сессию оформления
// @Description Проверяет ключ мерчанта и возвращает JWT сессии оформления.
// @Tags Sessions
// @Accept  json
// @Produce  json
// @Param request body Request true "Ключ мерчанта"
// @Success 200 {object} map[string]any "Токен сессии"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Ключ мерчанта не принят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /sessions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sessions.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Open(req.ShopID, req.SecretKey)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			log.Warn("shop credentials rejected", slog.String("shop_id", req.ShopID))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid shop credentials"))
			return
		}
		log.Error("failed to open session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not open session"))
		return
	}

	log.Info("session opened", slog.String("shop_id", req.ShopID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"session_token": token,
	}))
}

// Package login реализует HTTP-обработчик кошелькового логина:
// попытку выпуска платёжного токена кошелька.
package login

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
	"github.com/magabrotheeeer/checkout-tokenizer/internal/services/walletlogin"
)

// Service описывает интерфейс медиатора авторизации кошелька.
type Service interface {
	LoginInWallet(ctx context.Context, userKey, userAuthorization string, amount *models.MonetaryAmount, reusable bool) (*models.WalletLoginResponse, error)
}

// Handler управляет HTTP-запросами кошелькового логина.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Request параметры логина.
type Request struct {
	WalletUserToken string                 `json:"wallet_user_token" validate:"required"`
	Amount          *models.MonetaryAmount `json:"amount,omitempty"`
	Reusable        bool                   `json:"reusable"`
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
// @Summary Кошельковый логин
// @Description Пытается выпустить платёжный токен кошелька. Возвращает либо признак авторизации, либо параметры второго фактора.
// @Tags WalletAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Параметры логина"
// @Security BearerAuth
// @Success 200 {object} map[string]any "Результат логина"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Сессия не авторизована"
// @Failure 409 {object} response.ErrorResponse "Нет пригодного типа авторизации"
// @Failure 429 {object} response.ErrorResponse "Исчерпан лимит сессий"
// @Router /wallet/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.walletauth.login"
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
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	resp, err := h.service.LoginInWallet(r.Context(), shopID, req.WalletUserToken, req.Amount, req.Reusable)
	if err != nil {
		switch {
		case errors.Is(err, walletlogin.ErrUnsupportedAuthType):
			log.Warn("no supported auth type", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.ErrorWithRetry("no supported auth type available", response.RetryAbort))
		default:
			log.Error("wallet login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not login in wallet"))
		}
		return
	}

	if resp.Authorized {
		log.Info("wallet login authorized")
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"authorized": true,
		}))
		return
	}

	log.Info("wallet login requires second factor")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"authorized":      false,
		"auth_type_state": resp.AuthTypeState,
		"process_id":      resp.ProcessID,
		"auth_context_id": resp.AuthContextID,
	}))
}

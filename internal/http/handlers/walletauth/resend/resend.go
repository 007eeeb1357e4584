// Package resend реализует HTTP-обработчик перегенерации 2FA-сессии.
package resend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/checkout-tokenizer/internal/http/response"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/lib/sl"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/models"
	"github.com/magabrotheeeer/checkout-tokenizer/internal/walletapi"
)

// Service описывает интерфейс перегенерации 2FA-сессии.
type Service interface {
	ResendCode(ctx context.Context, userAuthorization, authContextID string, authType models.AuthType) (*models.AuthTypeState, error)
}

// Handler управляет HTTP-запросами перегенерации кода.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Request параметры перегенерации.
type Request struct {
	WalletUserToken string          `json:"wallet_user_token" validate:"required"`
	AuthContextID   string          `json:"auth_context_id" validate:"required"`
	AuthType        models.AuthType `json:"auth_type" validate:"required"`
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
// @Summary Перегенерировать код подтверждения
// @Description Создает новую 2FA-сессию того же типа авторизации.
// @Tags WalletAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Параметры перегенерации"
// @Security BearerAuth
// @Success 200 {object} map[string]any "Состояние новой сессии"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Контекст авторизации устарел"
// @Failure 429 {object} response.ErrorResponse "Исчерпан лимит сессий"
// @Router /wallet/resend [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.walletauth.resend"
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

	state, err := h.service.ResendCode(r.Context(), req.WalletUserToken, req.AuthContextID, req.AuthType)
	if err != nil {
		switch {
		case errors.Is(err, walletapi.ErrInvalidContext):
			log.Warn("auth context is stale", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.ErrorWithRetry("auth context is stale", response.RetryRestart))
		case errors.Is(err, walletapi.ErrSessionsExceeded):
			log.Warn("sessions exceeded", sl.Err(err))
			w.WriteHeader(http.StatusTooManyRequests)
			render.JSON(w, r, response.ErrorWithRetry("sessions exceeded", response.RetryAbort))
		default:
			log.Error("failed to resend code", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not resend code"))
		}
		return
	}

	log.Info("new auth session generated")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"auth_type_state": state,
	}))
}

// Package check реализует HTTP-обработчик проверки ответа пользователя
// на второй фактор кошелькового логина.
package check

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
	"github.com/magabrotheeeer/checkout-tokenizer/internal/walletapi"
)

// Service описывает интерфейс проверки ответа на второй фактор.
type Service interface {
	CheckUserAnswer(ctx context.Context, userKey, userAuthorization, processID, authContextID string, authType models.AuthType, answer string, reusable bool) (*models.WalletLoginResponse, error)
}

// Handler управляет HTTP-запросами проверки второго фактора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Request ответ пользователя на второй фактор.
type Request struct {
	WalletUserToken string          `json:"wallet_user_token" validate:"required"`
	ProcessID       string          `json:"process_id" validate:"required"`
	AuthContextID   string          `json:"auth_context_id" validate:"required"`
	AuthType        models.AuthType `json:"auth_type" validate:"required"`
	Answer          string          `json:"answer" validate:"required"`
	Reusable        bool            `json:"reusable"`
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
// @Summary Проверить ответ второго фактора
// @Description Проверяет код подтверждения и завершает выпуск токена кошелька. В ошибке возвращается подсказка retry: resend, restart или abort.
// @Tags WalletAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Ответ пользователя"
// @Security BearerAuth
// @Success 200 {object} map[string]any "Токен выпущен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Сессия не авторизована"
// @Failure 403 {object} response.ErrorResponse "Исчерпаны попытки ввода"
// @Failure 409 {object} response.ErrorResponse "Контекст авторизации устарел"
// @Failure 410 {object} response.ErrorResponse "Сессия не существует или истекла"
// @Failure 422 {object} response.ErrorResponse "Неверный код"
// @Router /wallet/check [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.walletauth.check"
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

	resp, err := h.service.CheckUserAnswer(r.Context(), shopID, req.WalletUserToken, req.ProcessID, req.AuthContextID, req.AuthType, req.Answer, req.Reusable)
	if err != nil {
		h.renderCheckError(w, r, log, err)
		return
	}

	log.Info("second factor confirmed")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"authorized": resp.Authorized,
	}))
}

// renderCheckError переводит ошибку проверки в HTTP-ответ с подсказкой,
// как клиенту продолжить.
func (h *Handler) renderCheckError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, walletapi.ErrInvalidAnswer):
		log.Warn("invalid answer", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid answer"))

	case errors.Is(err, walletapi.ErrSessionDoesNotExist):
		log.Warn("session does not exist", sl.Err(err))
		w.WriteHeader(http.StatusGone)
		render.JSON(w, r, response.ErrorWithRetry("session does not exist or expired", response.RetryResend))

	case errors.Is(err, walletapi.ErrVerifyAttemptsExceeded):
		log.Warn("verify attempts exceeded", sl.Err(err))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.ErrorWithRetry("verify attempts exceeded", response.RetryResend))

	case errors.Is(err, walletapi.ErrCheckInvalidContext), errors.Is(err, walletapi.ErrExecute):
		log.Warn("auth context is stale", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.ErrorWithRetry("auth context is stale", response.RetryRestart))

	default:
		log.Error("failed to check user answer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check user answer"))
	}
}

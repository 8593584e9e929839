// Package message реализует HTTP-обработчик отправки сообщения назначенному
// тренеру. Переписка доступна только пока окно доступа к тренеру действует,
// льготный период переписку не возвращает.
package message

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает запросы на отправку сообщений тренеру.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики отправки сообщения тренеру.
type Service interface {
	SendMessage(ctx context.Context, userUID, body string, now time.Time) (*models.Verdict, int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправить сообщение тренеру
// @Description Отправляет сообщение назначенному тренеру, если окно доступа действует. Возвращает вердикт проверки.
// @Tags Trainers
// @Accept  json
// @Produce  json
// @Param request body models.DummyMessage true "Текст сообщения"
// @Success 200 {object} map[string]any "Сообщение отправлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} map[string]any "Переписка недоступна, в данных вердикт с причиной"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при отправке"
// @Router /trainers/message [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trainer.message"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
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
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	verdict, id, err := h.service.SendMessage(r.Context(), userUID, req.Body, time.Now().UTC())
	if err != nil {
		log.Error("failed to send message", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not send message"))
		return
	}
	if !verdict.IsEligible {
		log.Info("messaging refused", slog.String("reason", verdict.Reason))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Response{
			Status: response.StatusError,
			Error:  verdict.Reason,
			Data:   map[string]any{"verdict": verdict},
		})
		return
	}

	log.Info("message sent", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message_id": id,
		"verdict":    verdict,
	}))
}

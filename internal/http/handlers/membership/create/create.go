// Package create реализует HTTP-обработчик покупки абонемента.
//
// Handler принимает JSON-запрос с данными тарифа, валидирует их, извлекает
// пользователя из контекста и создаёт абонемент в статусе pending. Окна
// действия выставляются позже, при подтверждении администратором.
package create

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

// Handler управляет HTTP-запросами на покупку абонементов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики абонементов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики покупки абонемента.
type Service interface {
	Purchase(ctx context.Context, userUID, username string, req models.DummyMembership, now time.Time) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Купить абонемент
// @Description Создает абонемент для текущего пользователя в статусе pending. Возвращает ID созданной записи.
// @Tags Memberships
// @Accept  json
// @Produce  json
// @Param request body models.DummyMembership true "Данные нового абонемента"
// @Success 200 {object} map[string]any "Успешная покупка абонемента"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при покупке абонемента"
// @Router /memberships [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMembership
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	username, okName := r.Context().Value(middlewarectx.User).(string)
	if !ok || !okName || userUID == "" {
		log.Error("user identification missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Purchase(r.Context(), userUID, username, req, time.Now().UTC())
	if err != nil {
		log.Error("failed to create membership", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create membership"))
		return
	}

	log.Info("membership created", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"last_added_id": id,
	}))
}

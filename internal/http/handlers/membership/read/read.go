// Package read реализует HTTP-обработчик для получения абонемента по ID.
//
// Handler извлекает ID из URL-параметров, вызывает бизнес-логику чтения
// абонемента и возвращает его данные в JSON-формате.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает запросы на получение абонемента по идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики абонементов
}

// Service описывает интерфейс бизнес-логики чтения абонемента.
type Service interface {
	Read(ctx context.Context, id int) (*models.Membership, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить абонемент
// @Description Возвращает абонемент по его ID.
// @Tags Memberships
// @Produce  json
// @Param id path int true "ID абонемента"
// @Success 200 {object} map[string]any "Данные абонемента"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при чтении абонемента"
// @Router /memberships/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read membership", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read membership"))
		return
	}

	log.Info("membership read", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"membership": res,
	}))
}

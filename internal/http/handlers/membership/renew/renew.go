// Package renew реализует HTTP-обработчик продления абонемента.
//
// Продление возможно только в льготном периоде. Ответ всегда содержит вердикт
// проверки прав, и при отказе причина возвращается клиенту вместе с ним.
package renew

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает запросы на продление абонемента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики продления абонемента.
type Service interface {
	Renew(ctx context.Context, id int, now time.Time) (*models.Verdict, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Продлить абонемент
// @Description Продлевает абонемент, находящийся в льготном периоде. Возвращает вердикт проверки прав.
// @Tags Memberships
// @Produce  json
// @Param id path int true "ID абонемента"
// @Success 200 {object} map[string]any "Абонемент продлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 409 {object} map[string]any "Продление недоступно, в данных вердикт с причиной"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при продлении"
// @Router /memberships/{id}/renew [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.renew"

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

	verdict, err := h.service.Renew(r.Context(), id, time.Now().UTC())
	if err != nil {
		log.Error("failed to renew membership", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not renew membership"))
		return
	}
	if !verdict.IsEligible {
		log.Info("membership renewal refused", slog.Int("id", id), slog.String("reason", verdict.Reason))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Response{
			Status: response.StatusError,
			Error:  verdict.Reason,
			Data:   map[string]any{"verdict": verdict},
		})
		return
	}

	log.Info("membership renewed", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"renewed": true,
		"verdict": verdict,
	}))
}

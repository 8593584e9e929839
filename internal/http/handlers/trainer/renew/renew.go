// Package renew реализует HTTP-обработчик продления тренерского доступа.
//
// Продление доступно только при активном абонементе с достаточным остатком
// действия и истекшем окне доступа. Ответ всегда содержит вердикт проверки.
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

// Handler обрабатывает запросы на продление тренерского доступа.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики продления тренерского доступа.
type Service interface {
	Renew(ctx context.Context, membershipID int, now time.Time) (*models.Verdict, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Продлить доступ к тренеру
// @Description Продлевает истекшее окно доступа к тренеру по абонементу. Возвращает вердикт проверки прав.
// @Tags Trainers
// @Produce  json
// @Param id path int true "ID абонемента"
// @Success 200 {object} map[string]any "Доступ продлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 409 {object} map[string]any "Продление недоступно, в данных вердикт с причиной"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при продлении"
// @Router /trainers/{id}/renew [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trainer.renew"

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
		log.Error("failed to renew trainer access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not renew trainer access"))
		return
	}
	if !verdict.IsEligible {
		log.Info("trainer renewal refused", slog.Int("membership_id", id), slog.String("reason", verdict.Reason))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Response{
			Status: response.StatusError,
			Error:  verdict.Reason,
			Data:   map[string]any{"verdict": verdict},
		})
		return
	}

	log.Info("trainer access renewed", slog.Int("membership_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"renewed": true,
		"verdict": verdict,
	}))
}

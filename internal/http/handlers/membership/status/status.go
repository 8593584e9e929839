// Package status реализует HTTP-обработчик сводного отчёта по текущему
// абонементу пользователя: вердикты продления абонемента и тренерского
// доступа, вердикт переписки и бейдж продления.
package status

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает запросы на сводный отчёт по абонементу.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводного отчёта.
type Service interface {
	Status(ctx context.Context, userUID string, now time.Time) (*models.StatusReport, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статус абонемента
// @Description Возвращает текущий абонемент пользователя, вердикты продления, вердикт переписки с тренером и бейдж.
// @Tags Memberships
// @Produce  json
// @Success 200 {object} map[string]any "Сводный отчёт"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /memberships/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	report, err := h.service.Status(r.Context(), userUID, time.Now().UTC())
	if err != nil {
		log.Error("failed to build status report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build status report"))
		return
	}

	log.Info("status report built", slog.String("badge", string(report.Badge)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"report": report,
	}))
}

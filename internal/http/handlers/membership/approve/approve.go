// Package approve реализует HTTP-обработчик подтверждения или отклонения
// купленного абонемента администратором. При подтверждении выставляются окна
// действия и льготного периода.
package approve

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
)

// Request — структура входных данных для решения по абонементу.
type Request struct {
	Approve bool `json:"approve"`
}

// Handler обрабатывает запросы администратора на решение по абонементу.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подтверждения абонемента.
type Service interface {
	Approve(ctx context.Context, id int, approve bool, now time.Time) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подтвердить или отклонить абонемент
// @Description Подтверждает ожидающий абонемент с выставлением окон действия либо отклоняет его. Доступно только роли admin.
// @Tags Memberships
// @Accept  json
// @Produce  json
// @Param id path int true "ID абонемента"
// @Param request body Request true "Решение администратора"
// @Success 200 {object} response.Response "Решение применено"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/memberships/{id}/approve [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.approve"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.Approve(r.Context(), id, req.Approve, time.Now().UTC()); err != nil {
		log.Error("failed to apply decision", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not apply decision"))
		return
	}

	log.Info("decision applied", slog.Int("id", id), slog.Bool("approve", req.Approve))
	render.JSON(w, r, response.OK())
}

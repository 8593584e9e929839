// Package assign реализует HTTP-обработчик назначения тренера на абонемент.
//
// Окно доступа рассчитывается по тарифу абонемента: включённая часть и часть,
// купленная как дополнение.
package assign

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gym-manager/internal/http/response"
	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
	"github.com/magabrotheeeer/gym-manager/internal/models"
)

// Handler обрабатывает запросы на назначение тренера.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики назначения тренера.
type Service interface {
	Assign(ctx context.Context, membershipID int, trainerUID string, now time.Time) (*models.TrainerAccess, error)
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
// @Summary Назначить тренера
// @Description Назначает тренера на активный абонемент и рассчитывает окно доступа по тарифу.
// @Tags Trainers
// @Accept  json
// @Produce  json
// @Param request body models.DummyTrainerAssign true "Абонемент и тренер"
// @Success 200 {object} map[string]any "Тренер назначен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при назначении тренера"
// @Router /trainers/assign [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trainer.assign"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyTrainerAssign
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
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

	access, err := h.service.Assign(r.Context(), req.MembershipID, req.TrainerUID, time.Now().UTC())
	if err != nil {
		log.Error("failed to assign trainer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not assign trainer"))
		return
	}

	log.Info("trainer assigned", slog.Int("membership_id", req.MembershipID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"trainer_access": access,
	}))
}

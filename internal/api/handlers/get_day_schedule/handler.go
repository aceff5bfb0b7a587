package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nithin050/qline-service/internal/api/handlers"
	"github.com/Nithin050/qline-service/internal/domain"
	getDaySchedule "github.com/Nithin050/qline-service/internal/usecase/get_day_schedule"
)

const (
	msgInvalidOrgID = "некорректный ID организации"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate  = "отсутствует параметр date"
	msgOrgNotFound  = "организация не найдена"
	msgInvalidInput = "некорректные данные запроса"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/organizations/{orgId}/day-schedule?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orgID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/day-schedule - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /organizations/{id}/day-schedule - Missing date: org_id=%d", orgID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/day-schedule - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{
		OrgID: orgID,
		Date:  date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrOrganizationNotFound):
			h.logger.Warn("GET /organizations/{id}/day-schedule - Organization not found: org_id=%d", orgID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /organizations/{id}/day-schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /organizations/{id}/day-schedule - Failed: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id}/day-schedule - Schedule retrieved: org_id=%d, date=%s",
		orgID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

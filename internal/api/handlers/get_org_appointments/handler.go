package get_org_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nithin050/qline-service/internal/api/handlers"
	"github.com/Nithin050/qline-service/internal/api/middleware"
	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/internal/service/appointments"
	"github.com/Nithin050/qline-service/internal/service/appointments/models"
)

const (
	msgInvalidOrgID  = "некорректный ID организации"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidScope  = "допустимые значения scope: today, upcoming, history"
	msgOrgNotFound   = "организация не найдена"
	msgForbidden     = "доступ запрещен"
)

// AppointmentsResponse список записей организации
type AppointmentsResponse struct {
	Appointments []*models.AppointmentView `json:"appointments"`
}

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/organizations/{orgId}/appointments?scope=&date=&search=
// Без scope возвращается вся активная очередь; scope=history переключает
// на финальные записи.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orgID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/appointments - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /organizations/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	scope := query.Get("scope")
	search := query.Get("search")

	var appts []*domain.Appointment

	switch scope {
	case "history":
		appts, err = h.service.GetOrgHistory(r.Context(), &models.OrgHistoryRequest{
			OrgID:       orgID,
			StaffUserID: staffID,
			SearchName:  search,
		})

	case "", string(domain.QueueScopeToday), string(domain.QueueScopeUpcoming):
		var date *time.Time
		if dateStr := query.Get("date"); dateStr != "" {
			parsed, parseErr := time.Parse(domain.DateFormat, dateStr)
			if parseErr != nil {
				h.logger.Warn("GET /organizations/{id}/appointments - Invalid date %q: %v", dateStr, parseErr)
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			date = &parsed
		}

		appts, err = h.service.GetOrgQueue(r.Context(), &models.OrgQueueRequest{
			OrgID:       orgID,
			StaffUserID: staffID,
			Date:        date,
			Scope:       domain.QueueScope(scope),
			SearchName:  search,
		})

	default:
		h.logger.Warn("GET /organizations/{id}/appointments - Invalid scope %q: org_id=%d", scope, orgID)
		handlers.RespondBadRequest(w, msgInvalidScope)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrOrganizationNotFound):
			h.logger.Warn("GET /organizations/{id}/appointments - Organization not found: org_id=%d", orgID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /organizations/{id}/appointments - Access denied: org_id=%d, user_id=%d",
				orgID, staffID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /organizations/{id}/appointments - Failed: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id}/appointments - Retrieved %d appointments: org_id=%d, scope=%q",
		len(appts), orgID, scope)
	handlers.RespondJSON(w, http.StatusOK, AppointmentsResponse{
		Appointments: models.FromDomainAppointments(appts),
	})
}

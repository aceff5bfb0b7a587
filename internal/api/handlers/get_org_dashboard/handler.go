package get_org_dashboard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Nithin050/qline-service/internal/api/handlers"
	"github.com/Nithin050/qline-service/internal/api/middleware"
	"github.com/Nithin050/qline-service/internal/service/appointments"
	"github.com/Nithin050/qline-service/internal/service/appointments/models"
)

const (
	msgInvalidOrgID  = "некорректный ID организации"
	msgMissingUserID = "отсутствует ID пользователя"
	msgOrgNotFound   = "организация не найдена"
	msgForbidden     = "доступ запрещен"
)

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

// Handle GET /api/v1/organizations/{orgId}/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orgID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/dashboard - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /organizations/{id}/dashboard - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dashboard, err := h.service.GetDashboard(r.Context(), orgID, staffID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrOrganizationNotFound):
			h.logger.Warn("GET /organizations/{id}/dashboard - Organization not found: org_id=%d", orgID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /organizations/{id}/dashboard - Access denied: org_id=%d, user_id=%d",
				orgID, staffID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /organizations/{id}/dashboard - Failed: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id}/dashboard - Dashboard retrieved: org_id=%d", orgID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDashboard(dashboard))
}

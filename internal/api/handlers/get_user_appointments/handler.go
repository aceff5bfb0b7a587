package get_user_appointments

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
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgInvalidScope  = "допустимые значения scope: active, history"
)

// AppointmentsResponse список записей пользователя
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

// Handle GET /api/v1/users/{userId}/appointments?scope=active|history
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	authUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Пользователь видит только свои записи
	if userID != authUserID {
		h.logger.Warn("GET /users/{id}/appointments - Access denied: user_id=%d, auth_user_id=%d",
			userID, authUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = models.ScopeActive
	}

	appts, err := h.service.GetUserAppointments(r.Context(), &models.UserAppointmentsRequest{
		UserID: userID,
		Scope:  scope,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/appointments - Invalid scope %q: user_id=%d", scope, userID)
			handlers.RespondBadRequest(w, msgInvalidScope)

		default:
			h.logger.Error("GET /users/{id}/appointments - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/appointments - Retrieved %d appointments: user_id=%d, scope=%s",
		len(appts), userID, scope)
	handlers.RespondJSON(w, http.StatusOK, AppointmentsResponse{
		Appointments: models.FromDomainAppointments(appts),
	})
}

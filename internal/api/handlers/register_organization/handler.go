package register_organization

import (
	"errors"
	"net/http"

	"github.com/Nithin050/qline-service/internal/api/handlers"
	"github.com/Nithin050/qline-service/internal/api/middleware"
	"github.com/Nithin050/qline-service/internal/service/organizations"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidServiceType = "неизвестный тип услуг"
	msgInvalidPhone       = "телефон должен состоять ровно из 10 цифр"
	msgInvalidTemplate    = "некорректный диапазон шаблона, ожидается \"HH:MM AM - HH:MM PM\""
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	service OrganizationService
	logger  Logger
}

func NewHandler(service OrganizationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/organizations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /organizations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RegisterOrganizationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /organizations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	details, err := h.service.Register(r.Context(), req.ToServiceRequest(staffID))
	if err != nil {
		switch {
		case errors.Is(err, organizations.ErrInvalidServiceType):
			h.logger.Warn("POST /organizations - Invalid service type: %q", req.ServiceType)
			handlers.RespondBadRequest(w, msgInvalidServiceType)

		case errors.Is(err, organizations.ErrInvalidPhone):
			h.logger.Warn("POST /organizations - Invalid phone: staff_id=%d", staffID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, organizations.ErrInvalidTemplate):
			h.logger.Warn("POST /organizations - Invalid template: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTemplate)

		case errors.Is(err, organizations.ErrInvalidInput):
			h.logger.Warn("POST /organizations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /organizations - Failed to register: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /organizations - Organization registered: org_id=%d, staff_id=%d",
		details.Organization.ID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceDetails(details))
}

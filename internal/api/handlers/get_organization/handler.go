package get_organization

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Nithin050/qline-service/internal/api/handlers"
	"github.com/Nithin050/qline-service/internal/service/organizations"
)

const (
	msgInvalidOrgID = "некорректный ID организации"
	msgOrgNotFound  = "организация не найдена"
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

// Handle GET /api/v1/organizations/{orgId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orgID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id} - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	details, err := h.service.Get(r.Context(), orgID)
	if err != nil {
		switch {
		case errors.Is(err, organizations.ErrOrganizationNotFound):
			h.logger.Warn("GET /organizations/{id} - Organization not found: org_id=%d", orgID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		default:
			h.logger.Error("GET /organizations/{id} - Failed: org_id=%d, error=%v", orgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id} - Organization retrieved: org_id=%d", orgID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceDetails(details))
}

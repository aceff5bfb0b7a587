package search_organizations

import (
	"errors"
	"net/http"

	"github.com/Nithin050/qline-service/internal/api/handlers"
	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/internal/service/organizations"
)

const (
	msgInvalidServiceType = "неизвестный тип услуг"
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

// Handle GET /api/v1/organizations?serviceType=clinic&location=Kochi
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	search := domain.OrganizationSearch{
		ServiceType: domain.ServiceType(query.Get("serviceType")),
		Location:    query.Get("location"),
		ActiveOnly:  query.Get("includeInactive") != "true",
	}

	orgs, err := h.service.Search(r.Context(), search)
	if err != nil {
		switch {
		case errors.Is(err, organizations.ErrInvalidServiceType):
			h.logger.Warn("GET /organizations - Invalid service type: %q", search.ServiceType)
			handlers.RespondBadRequest(w, msgInvalidServiceType)

		default:
			h.logger.Error("GET /organizations - Failed to search: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := SearchResponse{Organizations: make([]OrganizationResponse, 0, len(orgs))}
	for _, org := range orgs {
		response.Organizations = append(response.Organizations, FromDomain(org))
	}

	h.logger.Info("GET /organizations - Found %d organizations", len(orgs))
	handlers.RespondJSON(w, http.StatusOK, response)
}

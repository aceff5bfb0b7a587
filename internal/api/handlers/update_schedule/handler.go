package update_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Nithin050/qline-service/internal/api/handlers"
	"github.com/Nithin050/qline-service/internal/api/middleware"
	"github.com/Nithin050/qline-service/internal/domain"
	"github.com/Nithin050/qline-service/internal/service/organizations"
	"github.com/Nithin050/qline-service/internal/service/organizations/models"
	"github.com/Nithin050/qline-service/pkg/ptr"
)

const (
	msgInvalidOrgID       = "некорректный ID организации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUnknownAction      = "неизвестное действие"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingActive      = "отсутствует поле active"
	msgOrgNotFound        = "организация не найдена"
	msgTemplateNotFound   = "шаблон не найден"
	msgHolidayNotFound    = "выходной не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/organizations/{orgId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orgID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /organizations/{id}/schedule - Invalid org ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrgID)
		return
	}

	staffID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /organizations/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /organizations/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	response, err := h.apply(r, orgID, staffID, &req)
	if err != nil {
		h.respondActionError(w, orgID, staffID, &req, err)
		return
	}

	h.logger.Info("PUT /organizations/{id}/schedule - Action %q applied: org_id=%d, staff_id=%d",
		req.Action, orgID, staffID)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// apply выполняет одно действие над расписанием
func (h *Handler) apply(r *http.Request, orgID, staffID int64, req *UpdateScheduleRequest) (*UpdateScheduleResponse, error) {
	ctx := r.Context()

	switch req.Action {
	case ActionAddTemplate:
		tpl, err := h.service.AddTemplate(ctx, orgID, staffID, req.Range)
		if err != nil {
			return nil, err
		}
		return &UpdateScheduleResponse{Action: req.Action, TemplateID: ptr.Ptr(tpl.ID)}, nil

	case ActionEditTemplate:
		err := h.service.EditTemplate(ctx, &models.EditTemplateRequest{
			OrgID:       orgID,
			StaffUserID: staffID,
			TemplateID:  req.TemplateID,
			Range:       req.Range,
			IsActive:    req.IsActive,
		})
		if err != nil {
			return nil, err
		}
		return &UpdateScheduleResponse{Action: req.Action, TemplateID: ptr.Ptr(req.TemplateID)}, nil

	case ActionDeleteTemplate:
		if err := h.service.DeleteTemplate(ctx, orgID, staffID, req.TemplateID); err != nil {
			return nil, err
		}
		return &UpdateScheduleResponse{Action: req.Action, TemplateID: ptr.Ptr(req.TemplateID)}, nil

	case ActionAddHoliday:
		date, err := time.Parse(domain.DateFormat, req.Date)
		if err != nil {
			return nil, errInvalidDate
		}
		holiday, err := h.service.AddHoliday(ctx, &models.AddHolidayRequest{
			OrgID:       orgID,
			StaffUserID: staffID,
			Date:        date,
		})
		if err != nil {
			return nil, err
		}
		return &UpdateScheduleResponse{Action: req.Action, HolidayID: ptr.Ptr(holiday.ID)}, nil

	case ActionRemoveHoliday:
		if err := h.service.RemoveHoliday(ctx, orgID, staffID, req.HolidayID); err != nil {
			return nil, err
		}
		return &UpdateScheduleResponse{Action: req.Action, HolidayID: ptr.Ptr(req.HolidayID)}, nil

	case ActionSetActive:
		if req.Active == nil {
			return nil, errMissingActive
		}
		org, err := h.service.SetActive(ctx, orgID, staffID, *req.Active)
		if err != nil {
			return nil, err
		}
		return &UpdateScheduleResponse{Action: req.Action, IsActive: ptr.Ptr(org.IsActive)}, nil

	default:
		return nil, errUnknownAction
	}
}

// Ошибки уровня handler: некорректные поля действия
var (
	errUnknownAction = errors.New("unknown schedule action")
	errInvalidDate   = errors.New("invalid holiday date")
	errMissingActive = errors.New("missing active field")
)

func (h *Handler) respondActionError(w http.ResponseWriter, orgID, staffID int64, req *UpdateScheduleRequest, err error) {
	switch {
	case errors.Is(err, errUnknownAction):
		h.logger.Warn("PUT /organizations/{id}/schedule - Unknown action %q: org_id=%d", req.Action, orgID)
		handlers.RespondBadRequest(w, msgUnknownAction)

	case errors.Is(err, errInvalidDate):
		h.logger.Warn("PUT /organizations/{id}/schedule - Invalid date %q: org_id=%d", req.Date, orgID)
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, errMissingActive):
		h.logger.Warn("PUT /organizations/{id}/schedule - Missing active field: org_id=%d", orgID)
		handlers.RespondBadRequest(w, msgMissingActive)

	case errors.Is(err, organizations.ErrOrganizationNotFound):
		h.logger.Warn("PUT /organizations/{id}/schedule - Organization not found: org_id=%d", orgID)
		handlers.RespondNotFound(w, msgOrgNotFound)

	case errors.Is(err, organizations.ErrTemplateNotFound):
		h.logger.Warn("PUT /organizations/{id}/schedule - Template not found: org_id=%d, template_id=%d",
			orgID, req.TemplateID)
		handlers.RespondNotFound(w, msgTemplateNotFound)

	case errors.Is(err, organizations.ErrHolidayNotFound):
		h.logger.Warn("PUT /organizations/{id}/schedule - Holiday not found: org_id=%d, holiday_id=%d",
			orgID, req.HolidayID)
		handlers.RespondNotFound(w, msgHolidayNotFound)

	case errors.Is(err, organizations.ErrAccessDenied):
		h.logger.Warn("PUT /organizations/{id}/schedule - Access denied: org_id=%d, user_id=%d",
			orgID, staffID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, organizations.ErrInvalidTemplate):
		h.logger.Warn("PUT /organizations/{id}/schedule - Invalid template: org_id=%d, range=%q",
			orgID, req.Range)
		handlers.RespondBadRequest(w, msgInvalidTemplate)

	case errors.Is(err, organizations.ErrInvalidInput):
		h.logger.Warn("PUT /organizations/{id}/schedule - Invalid input: org_id=%d, error=%v", orgID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("PUT /organizations/{id}/schedule - Failed: org_id=%d, action=%q, error=%v",
			orgID, req.Action, err)
		handlers.RespondInternalError(w)
	}
}

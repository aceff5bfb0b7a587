package book_appointment

import (
	"errors"
	"net/http"

	"github.com/Nithin050/qline-service/internal/api/handlers"
	"github.com/Nithin050/qline-service/internal/api/middleware"
	bookAppointment "github.com/Nithin050/qline-service/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOrgNotFound        = "организация не найдена"
	msgOrgInactive        = "организация приостановила прием записей"
	msgHoliday            = "выбранная дата является выходным"
	msgBookingCap         = "достигнут лимит активных записей в этой организации"
	msgInvalidTimeSlot    = "слот отсутствует в расписании организации"
	msgSlotTaken          = "слот уже занят"
	msgInvalidPhone       = "телефон должен состоять ровно из 10 цифр"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: user_id=%d, org_id=%d, slot=%q",
				userID, req.OrgID, req.TimeSlot)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, bookAppointment.ErrOrganizationNotFound):
			h.logger.Warn("POST /appointments - Organization not found: org_id=%d", req.OrgID)
			handlers.RespondNotFound(w, msgOrgNotFound)

		case errors.Is(err, bookAppointment.ErrOrganizationInactive):
			h.logger.Warn("POST /appointments - Organization inactive: org_id=%d", req.OrgID)
			handlers.RespondError(w, http.StatusConflict, msgOrgInactive)

		case errors.Is(err, bookAppointment.ErrHolidayBlocked):
			h.logger.Warn("POST /appointments - Holiday: org_id=%d, date=%s", req.OrgID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgHoliday)

		case errors.Is(err, bookAppointment.ErrBookingCapExceeded):
			h.logger.Warn("POST /appointments - Booking cap exceeded: user_id=%d, org_id=%d",
				userID, req.OrgID)
			handlers.RespondError(w, http.StatusConflict, msgBookingCap)

		case errors.Is(err, bookAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: org_id=%d, slot=%q",
				req.OrgID, req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, bookAppointment.ErrInvalidPhone):
			h.logger.Warn("POST /appointments - Invalid phone: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to book: user_id=%d, org_id=%d, error=%v",
				userID, req.OrgID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, user_id=%d, org_id=%d",
		result.ID, userID, req.OrgID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

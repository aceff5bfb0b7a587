package book_appointment

import "errors"

var (
	// ErrOrganizationNotFound возвращается, когда организация не найдена
	ErrOrganizationNotFound = errors.New("book_appointment: organization not found")

	// ErrOrganizationInactive возвращается, когда организация отключена персоналом
	ErrOrganizationInactive = errors.New("book_appointment: organization is inactive")

	// ErrHolidayBlocked возвращается, когда на выбранную дату объявлен выходной
	ErrHolidayBlocked = errors.New("book_appointment: date is marked as holiday")

	// ErrBookingCapExceeded возвращается, когда у пользователя уже максимум
	// активных записей в этой организации
	ErrBookingCapExceeded = errors.New("book_appointment: active booking limit reached for this organization")

	// ErrInvalidTimeSlot возвращается, когда слот не входит в сгенерированное
	// расписание организации на эту дату
	ErrInvalidTimeSlot = errors.New("book_appointment: time slot does not exist for this date")

	// ErrSlotTaken возвращается, когда слот уже занят другой записью
	ErrSlotTaken = errors.New("book_appointment: slot is already booked")

	// ErrInvalidPhone возвращается, когда номер телефона не из 10 цифр
	ErrInvalidPhone = errors.New("book_appointment: invalid phone number")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)

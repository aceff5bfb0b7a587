package organizations

import "errors"

var (
	// ErrOrganizationNotFound возвращается, когда организация не найдена
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrTemplateNotFound возвращается, когда шаблон слотов не найден
	ErrTemplateNotFound = errors.New("time slot template not found")

	// ErrHolidayNotFound возвращается, когда выходной не найден
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrAccessDenied возвращается, когда пользователь не является
	// сотрудником организации
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidServiceType возвращается при неизвестном типе услуг
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrInvalidPhone возвращается, когда телефон не состоит из 10 цифр
	ErrInvalidPhone = errors.New("phone number must be exactly 10 digits")

	// ErrInvalidTemplate возвращается, когда диапазон шаблона не
	// разбирается в формате "HH:MM AM - HH:MM PM"
	ErrInvalidTemplate = errors.New("invalid time slot template")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

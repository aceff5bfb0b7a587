package get_day_schedule

import "errors"

var (
	// ErrOrganizationNotFound возвращается, когда организация не найдена или отключена
	ErrOrganizationNotFound = errors.New("get_day_schedule: organization not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_schedule: internal error")
)

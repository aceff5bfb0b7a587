// Package validate содержит общие валидаторы полей, используемые
// несколькими usecase'ами.
package validate

import (
	"errors"
	"regexp"
)

var (
	// ErrInvalidPhone возвращается, когда номер телефона не состоит ровно из 10 цифр
	ErrInvalidPhone = errors.New("validate: phone number must be exactly 10 digits")
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// Phone проверяет, что номер телефона состоит ровно из 10 цифр.
// Единственная точка валидации телефона для всех путей бронирования.
func Phone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

package directory

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork каталог недоступен: ошибка соединения, таймаут или отмена запроса.
	ErrNetwork = errors.New("directory is unreachable")
	// ErrUnexpectedStatus каталог ответил кодом вне диапазона 2xx.
	ErrUnexpectedStatus = errors.New("directory returned unexpected status")
	// ErrNotFound запрошенная запись отсутствует в каталоге.
	ErrNotFound = errors.New("record not found")
	// ErrMalformedResponse тело ответа каталога не удалось разобрать.
	ErrMalformedResponse = errors.New("malformed directory response")
)

// StatusError несёт код ответа каталога. Сравнивается с ErrUnexpectedStatus через errors.Is.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnexpectedStatus, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

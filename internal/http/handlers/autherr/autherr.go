// Package autherr сопоставляет ошибки сервиса авторизации с HTTP-ответами.
package autherr

import (
	"errors"
	"net/http"

	"github.com/magabrotheeeer/storefront/internal/services/auth"
)

// Status возвращает HTTP-код и сообщение для ошибки err.
// Сообщения не раскрывают, зарегистрирован ли email при входе.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, auth.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, auth.ErrAuthInProgress):
		return http.StatusConflict, "authentication already in progress"
	case errors.Is(err, auth.ErrLoginFailed), errors.Is(err, auth.ErrRegistrationFailed):
		return http.StatusBadGateway, "authentication failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

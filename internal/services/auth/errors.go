package auth

import "errors"

var (
	// ErrLoginFailed каталог недоступен или ответил ошибкой при входе.
	ErrLoginFailed = errors.New("login failed")
	// ErrInvalidCredentials нет записи с таким email и паролем.
	// Неизвестный email и неверный пароль не различаются.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrRegistrationFailed каталог недоступен или не принял новую запись.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrAuthInProgress для этой сессии уже выполняется вход или регистрация.
	ErrAuthInProgress = errors.New("authentication already in progress")
)

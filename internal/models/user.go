// Package models содержит доменные модели витрины: пользователя каталога,
// заказ и пользовательские настройки отображения.
package models

// User представляет учётную запись из каталога пользователей.
//
// Email ключ идентичности, сравнивается с учётом регистра.
// Password хранится в том виде, который вернула схема password.Hasher.
type User struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Public возвращает копию пользователя без пароля.
func (u User) Public() User {
	return User{Email: u.Email}
}

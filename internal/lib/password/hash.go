// Package password изолирует сравнение паролей за единым интерфейсом Hasher.
//
// Plaintext повторяет поведение каталога пользователей: пароль хранится и сравнивается
// как есть. Bcrypt хранит bcrypt-хеш. Схема выбирается конфигом и не затрагивает
// логику входа и регистрации.
package password

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// SchemePlaintext пароль хранится в каталоге без преобразований.
	SchemePlaintext = "plaintext"
	// SchemeBcrypt в каталоге хранится bcrypt-хеш пароля.
	SchemeBcrypt = "bcrypt"
)

// Hasher готовит пароль к сохранению и сверяет введённый пароль с сохранённым.
type Hasher interface {
	Hash(password string) (string, error)
	Matches(stored, supplied string) bool
}

// New возвращает Hasher для указанной схемы.
func New(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemePlaintext:
		return Plaintext{}, nil
	case SchemeBcrypt:
		return Bcrypt{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("password.New: unknown scheme %q", scheme)
	}
}

// Plaintext сравнивает пароли побайтно.
type Plaintext struct{}

// Hash возвращает пароль без изменений.
func (Plaintext) Hash(password string) (string, error) {
	return password, nil
}

// Matches сообщает, совпадает ли введённый пароль с сохранённым.
func (Plaintext) Matches(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// Bcrypt хранит и проверяет bcrypt-хеши.
type Bcrypt struct {
	Cost int
}

// Hash возвращает bcrypt-хеш пароля.
func (b Bcrypt) Hash(password string) (string, error) {
	return GetHash(password, b.Cost)
}

// Matches сообщает, соответствует ли введённый пароль bcrypt-хешу.
func (Bcrypt) Matches(stored, supplied string) bool {
	return CompareHash(stored, supplied) == nil
}

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func GetHash(password string, cost int) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Package jwt реализует выпуск и проверку подписанных токенов сессии посетителя.
//
// Токен хранится в куке сессии и несёт идентификатор посетителя в поле sub,
// поэтому подменить идентификатор чужой сессии без секретного ключа нельзя.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	// GenerateToken выпускает токен для посетителя с идентификатором visitorID.
	GenerateToken(visitorID string) (string, error)
	// ParseToken проверяет подпись и срок действия и возвращает claims токена.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

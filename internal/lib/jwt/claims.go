package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "storefront"

// ErrEmptySubject возвращается, если в токене нет идентификатора посетителя.
var ErrEmptySubject = errors.New("token has no subject")

// SessionClaims описывает данные, хранящиеся в токене сессии.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// VisitorID возвращает идентификатор посетителя из токена.
func (c *SessionClaims) VisitorID() string {
	return c.Subject
}

// GenerateToken создает токен с идентификатором посетителя, подписывая его секретным ключом.
func (j *MakerImpl) GenerateToken(visitorID string) (string, error) {
	const op = "jwt.GenerateToken"
	if visitorID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptySubject)
	}
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   visitorID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken парсит токен, проверяет подпись, алгоритм и срок действия.
func (j *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptySubject)
	}
	return claims, nil
}

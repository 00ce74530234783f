package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/maxturnos/turnos-service/internal/domain"
)

// Claims полезная нагрузка токена сессии
type Claims struct {
	Name         string `json:"name,omitempty"`
	Role         string `json:"role"`
	BusinessCode string `json:"negocio,omitempty"`
	SuperAdmin   bool   `json:"superadmin,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer выпускает и проверяет HS256 токены
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer создает выпускающего токены
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue подписывает токен для пользователя
func (t *TokenIssuer) Issue(p domain.Principal) (string, error) {
	now := t.now()
	claims := Claims{
		Name:         p.Name,
		Role:         string(p.Role),
		BusinessCode: p.BusinessCode,
		SuperAdmin:   p.SuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок действия, возвращает пользователя
func (t *TokenIssuer) Parse(raw string) (domain.Principal, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return domain.Principal{}, ErrInvalidToken
	}
	return domain.Principal{
		Email:        claims.Subject,
		Name:         claims.Name,
		Role:         domain.Role(claims.Role),
		BusinessCode: claims.BusinessCode,
		SuperAdmin:   claims.SuperAdmin,
	}, nil
}

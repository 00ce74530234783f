package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/maxturnos/turnos-service/internal/api/handlers"
	"github.com/maxturnos/turnos-service/internal/domain"
)

const (
	msgAuthRequired   = "Debes iniciar sesión"
	msgInvalidToken   = "Sesión inválida o expirada"
	msgAdminOnly      = "Solo el administrador del negocio puede realizar esta acción"
	msgSuperAdminOnly = "No autorizado"
)

type principalKey struct{}

// TokenParser проверяет токен сессии
type TokenParser interface {
	ParseToken(raw string) (domain.Principal, error)
}

// WithPrincipal кладет пользователя в контекст
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal пользователь запроса; false для анонимных запросов
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// Auth требует валидный Bearer токен
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgAuthRequired)
				return
			}
			p, err := parser.ParseToken(raw)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// OptionalAuth как Auth, но пропускает анонимные запросы; невалидный токен все равно 401
func OptionalAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			p, err := parser.ParseToken(raw)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin пропускает только владельцев бизнеса и суперадмина. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := GetPrincipal(r.Context())
		if !p.IsAdmin() && !p.SuperAdmin {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin пропускает только суперадмина. Ставится после Auth.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := GetPrincipal(r.Context())
		if !p.SuperAdmin {
			handlers.RespondForbidden(w, msgSuperAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

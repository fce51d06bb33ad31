package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-RoomBooking/internal/api/handlers"
)

const (
	msgMissingToken = "missing bearer token"
	msgInvalidToken = "invalid or expired token"
	msgForbidden    = "admin role required"
)

type ctxKey string

const adminSubjectKey ctxKey = "admin_subject"

// AdminClaims claims токена администратора
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth пропускает запросы с валидным HS256 токеном, у которого role совпадает с требуемой
func AdminAuth(secret []byte, role string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := ParseAdminToken(raw, secret)
			if err != nil {
				logger.Warn("auth: %s %s - rejected token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			if !strings.EqualFold(claims.Role, role) {
				logger.Warn("auth: %s %s - subject %q has role %q", r.Method, r.URL.Path, claims.Subject, claims.Role)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), adminSubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseAdminToken проверяет подпись и срок действия
func ParseAdminToken(raw string, secret []byte) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

// AdminSubject subject токена администратора из контекста
func AdminSubject(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(adminSubjectKey).(string)
	return sub, ok
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}

// IssueAdminToken подписывает токен, используется в тестах и для выдачи токенов из CLI
func IssueAdminToken(secret []byte, subject, role string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = subject
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AdminClaims{Role: role, RegisteredClaims: claims}).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

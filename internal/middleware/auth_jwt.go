package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bookstore/internal/domain/model"
	"bookstore/internal/observability"
	"bookstore/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUserRoleKey     = "user_role"     // model.Role
	CtxUserNameKey     = "user_name"     // string
	CtxTokenVersionKey = "token_version" // int
)

// TokenParser is satisfied by *token.Manager.
type TokenParser interface {
	Parse(raw string) (token.Claims, error)
}

// bearerAuth用のJWT検証ミドルウェア。
// 期限切れと不正トークンはメッセージで区別する。
func AuthJWT(tp TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return reject(c, http.StatusUnauthorized, "no_token", "token required")
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return reject(c, http.StatusUnauthorized, "no_token", "token required")
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return reject(c, http.StatusUnauthorized, "no_token", "token required")
			}

			claims, err := tp.Parse(rawToken)
			if errors.Is(err, token.ErrExpired) {
				return reject(c, http.StatusUnauthorized, "expired", "token expired")
			}
			if err != nil {
				return reject(c, http.StatusUnauthorized, "invalid", "invalid token")
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, claims.Role)
			c.Set(CtxUserNameKey, claims.Name)
			c.Set(CtxTokenVersionKey, claims.TokenVersion)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func reject(c echo.Context, status int, reason string, msg string) error {
	observability.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	return c.JSON(status, errorResponse{Error: msg})
}

// AuthJWTが入れたuser_idを取り出す
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func UserRole(c echo.Context) (model.Role, bool) {
	role, ok := c.Get(CtxUserRoleKey).(model.Role)
	if !ok || role == "" {
		return "", false
	}
	return role, true
}

package middleware

import (
	"net/http"

	"bookstore/internal/authz"

	"github.com/labstack/echo/v4"
)

// contextのroleがルートの許可リストに含まれるか確認します。
// ルートはechoに登録したパターン（c.Path()）で引く。
func RoleGuard(policy *authz.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := UserRole(c)
			if !ok {
				return reject(c, http.StatusUnauthorized, "invalid", "invalid token")
			}

			if !policy.Permits(c.Request().Method, c.Path(), role) {
				return reject(c, http.StatusForbidden, "role", "forbidden")
			}

			return next(c)
		}
	}
}

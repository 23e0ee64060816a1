package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserHandler_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{"missing name", 1, http.MethodPost, "/api/usuarios", `{"email":"ana@libreria.pe","password":"secreto123","rol":"VENDEDOR"}`, http.StatusBadRequest, "nombre required"},
		{"bad email", 1, http.MethodPost, "/api/usuarios", `{"nombre":"Ana","email":"ana","password":"secreto123","rol":"VENDEDOR"}`, http.StatusBadRequest, "email must be a valid email"},
		{"short password", 1, http.MethodPost, "/api/usuarios", `{"nombre":"Ana","email":"ana@libreria.pe","password":"corta","rol":"VENDEDOR"}`, http.StatusBadRequest, "password must be at least 8 characters"},
		{"unknown role", 1, http.MethodPost, "/api/usuarios", `{"nombre":"Ana","email":"ana@libreria.pe","password":"secreto123","rol":"JEFE"}`, http.StatusBadRequest, "rol must be one of [ADMIN VENDEDOR]"},
		{"status bad id", 1, http.MethodPatch, "/api/usuarios/x/estado", `{"activo":false}`, http.StatusBadRequest, "invalid id"},
		{"status not logged in", 0, http.MethodPatch, "/api/usuarios/3/estado", `{"activo":false}`, http.StatusUnauthorized, "unauthorized"},
		{"status missing flag", 1, http.MethodPatch, "/api/usuarios/3/estado", `{}`, http.StatusBadRequest, "activo required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, g := newTestEcho(tt.userID)
			NewUserHandler(nil).RegisterRoutes(g)

			rec := do(e, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.want+`"}`, rec.Body.String())
		})
	}
}

func TestAuthHandler_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{"malformed body", http.MethodPost, "/api/auth/login", `{"email"`, http.StatusBadRequest, "invalid body"},
		{"missing email", http.MethodPost, "/api/auth/login", `{"password":"secreto123"}`, http.StatusBadRequest, "email required"},
		{"missing password", http.MethodPost, "/api/auth/login", `{"email":"rosa@libreria.pe"}`, http.StatusBadRequest, "password required"},
		{"me without user", http.MethodGet, "/api/auth/me", "", http.StatusUnauthorized, "unauthorized"},
		{"logout without user", http.MethodPost, "/api/auth/logout", "", http.StatusUnauthorized, "unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, g := newTestEcho(0)
			h := NewAuthHandler(nil)
			h.RegisterPublicRoutes(g)
			h.RegisterRoutes(g)

			rec := do(e, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.want+`"}`, rec.Body.String())
		})
	}
}

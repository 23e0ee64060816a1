package server

import (
	"net/http"

	"bookstore/internal/authz"
	"bookstore/internal/domain/model"
)

// /api配下の許可表。ここにないルートは403
func NewPolicy() *authz.Policy {
	const (
		A = model.RoleAdmin
		V = model.RoleSeller
	)

	p := authz.NewPolicy()

	//認証
	p.Allow(http.MethodGet, "/api/auth/me", A, V).
		Allow(http.MethodPost, "/api/auth/logout", A, V)

	//書籍
	p.Allow(http.MethodGet, "/api/libros", A, V).
		Allow(http.MethodGet, "/api/libros/stock-bajo", A, V).
		Allow(http.MethodGet, "/api/libros/:id", A, V).
		Allow(http.MethodPost, "/api/libros", A).
		Allow(http.MethodPut, "/api/libros/:id", A).
		Allow(http.MethodDelete, "/api/libros/:id", A)

	//著者・カテゴリ
	for _, base := range []string{"/api/autores", "/api/categorias"} {
		p.Allow(http.MethodGet, base, A, V).
			Allow(http.MethodGet, base+"/:id", A, V).
			Allow(http.MethodPost, base, A).
			Allow(http.MethodPut, base+"/:id", A).
			Allow(http.MethodDelete, base+"/:id", A)
	}

	//顧客（販売員は参照と登録だけ）
	p.Allow(http.MethodGet, "/api/clientes", A, V).
		Allow(http.MethodGet, "/api/clientes/:id", A, V).
		Allow(http.MethodPost, "/api/clientes", A, V).
		Allow(http.MethodPut, "/api/clientes/:id", A).
		Allow(http.MethodDelete, "/api/clientes/:id", A)

	//仕入先
	p.Allow(http.MethodGet, "/api/proveedores", A).
		Allow(http.MethodGet, "/api/proveedores/:id", A).
		Allow(http.MethodPost, "/api/proveedores", A).
		Allow(http.MethodPut, "/api/proveedores/:id", A).
		Allow(http.MethodDelete, "/api/proveedores/:id", A)

	//販売
	p.Allow(http.MethodGet, "/api/ventas", A, V).
		Allow(http.MethodPost, "/api/ventas", A, V).
		Allow(http.MethodGet, "/api/ventas/:id", A, V)

	//管理者のみ
	p.Allow(http.MethodGet, "/api/movimientos", A).
		Allow(http.MethodPost, "/api/movimientos", A).
		Allow(http.MethodGet, "/api/dashboard", A).
		Allow(http.MethodGet, "/api/usuarios", A).
		Allow(http.MethodPost, "/api/usuarios", A).
		Allow(http.MethodPatch, "/api/usuarios/:id/estado", A).
		Allow(http.MethodGet, "/api/auditoria", A)

	return p
}

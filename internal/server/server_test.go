package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/domain/model"
	"bookstore/internal/handler"
	repo "bookstore/internal/repository"
	"bookstore/internal/server"
	"bookstore/internal/token"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type userStore struct {
	users map[int64]model.User
}

func (s *userStore) Create(ctx context.Context, u *model.User) error { return nil }

func (s *userStore) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, repo.ErrNotFound
}

func (s *userStore) List(ctx context.Context) ([]model.User, error) { return nil, nil }

func (s *userStore) Update(ctx context.Context, u *model.User) error { return nil }

func (s *userStore) TouchLastLogin(ctx context.Context, id int64, at time.Time) error { return nil }

func (s *userStore) IncrementTokenVersion(ctx context.Context, id int64) error { return nil }

var (
	admin  = model.User{ID: 1, Name: "Admin", Email: "admin@libreria.pe", Role: model.RoleAdmin, IsActive: true}
	seller = model.User{ID: 2, Name: "Rosa", Email: "rosa@libreria.pe", Role: model.RoleSeller, IsActive: true}
)

func newTestServer(t *testing.T) (*echo.Echo, *token.Manager) {
	t.Helper()
	logger := zap.NewNop()
	tokens := token.NewManager("server-secret", time.Hour)
	users := &userStore{users: map[int64]model.User{1: admin, 2: seller}}

	// 検証で止まる経路だけ通すのでtx・キャッシュは不要
	sales := usecase.NewSaleUsecase(nil, nil, nil, usecase.SystemClock{}, logger)
	auth := usecase.NewAuthUsecase(users, usecase.NewBcryptPasswordVerifier(), tokens, usecase.SystemClock{}, logger)

	e := server.New(server.Deps{
		Config: config.Config{CORSOrigin: "http://localhost:5173"},
		Logger: logger,
		Tokens: tokens,
		Users:  users,
		Handler: server.Handlers{
			Auth:      handler.NewAuthHandler(auth),
			Users:     handler.NewUserHandler(nil),
			Books:     handler.NewBookHandler(nil),
			Catalog:   handler.NewCatalogHandler(nil, nil),
			Clients:   handler.NewClientHandler(nil),
			Suppliers: handler.NewSupplierHandler(nil),
			Sales:     handler.NewSaleHandler(sales),
			Inventory: handler.NewInventoryHandler(nil),
			Dashboard: handler.NewDashboardHandler(nil),
			Audit:     handler.NewAuditHandler(nil),
		},
	})
	return e, tokens
}

func bearer(t *testing.T, tm *token.Manager, u model.User) string {
	t.Helper()
	tok, _, err := tm.Issue(u, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var httpMethods = map[string]bool{
	http.MethodGet: true, http.MethodPost: true, http.MethodPut: true,
	http.MethodPatch: true, http.MethodDelete: true,
}

// 登録済みの/apiルートはすべて許可表に載っている（載っていなければ誰も使えない）
func TestPolicyCoversEveryRoute(t *testing.T) {
	e, _ := newTestServer(t)
	policy := server.NewPolicy()

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		if !httpMethods[r.Method] || !strings.HasPrefix(r.Path, "/api/") || r.Path == "/api/auth/login" {
			continue
		}
		registered[r.Method+" "+r.Path] = true
		assert.True(t, policy.Has(r.Method, r.Path), "no policy entry for %s %s", r.Method, r.Path)
	}

	for _, r := range policy.Routes() {
		assert.True(t, registered[string(r)], "policy entry without route: %s", r)
	}
}

func TestPolicy_SellerPermissions(t *testing.T) {
	p := server.NewPolicy()

	assert.True(t, p.Permits(http.MethodPost, "/api/ventas", model.RoleSeller))
	assert.True(t, p.Permits(http.MethodPost, "/api/clientes", model.RoleSeller))
	assert.True(t, p.Permits(http.MethodGet, "/api/libros/:id", model.RoleSeller))

	assert.False(t, p.Permits(http.MethodDelete, "/api/autores/:id", model.RoleSeller))
	assert.False(t, p.Permits(http.MethodPost, "/api/libros", model.RoleSeller))
	assert.False(t, p.Permits(http.MethodGet, "/api/dashboard", model.RoleSeller))
	assert.False(t, p.Permits(http.MethodPost, "/api/movimientos", model.RoleSeller))
	assert.False(t, p.Permits(http.MethodGet, "/api/proveedores", model.RoleSeller))
	assert.True(t, p.Permits(http.MethodGet, "/api/proveedores", model.RoleAdmin))
}

func TestHealthz(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"mensaje":"ok"}`, rec.Body.String())
}

func TestSellerCannotDeleteAuthor(t *testing.T) {
	e, tm := newTestServer(t)
	// ハンドラに届けばnilのusecaseでpanicする
	rec := do(e, http.MethodDelete, "/api/autores/3", bearer(t, tm, seller), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
}

func TestLogin_Validation(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/auth/login", "", `{"email":"rosa@libreria.pe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"password required"}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/auth/login", "", `{"email":"nadie@libreria.pe","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"account not found"}`, rec.Body.String())
}

func TestCreateSale_RejectedBeforeTransaction(t *testing.T) {
	e, tm := newTestServer(t)
	auth := bearer(t, tm, seller)

	rec := do(e, http.MethodPost, "/api/ventas", auth, `{"total":0,"items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"cart is empty"}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/ventas", auth, `{"total":10,"items":[{"libro_id":7,"cantidad":0,"precio_unitario":10}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"item 1: cantidad must be >= 1"}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/ventas", auth, `{"items":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid body"}`, rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e, _ := newTestServer(t)
	for _, path := range []string{"/api/libros", "/api/ventas", "/api/dashboard", "/api/auth/me"} {
		rec := do(e, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

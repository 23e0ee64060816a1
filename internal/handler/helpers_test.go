package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"bookstore/internal/domain/model"
	"bookstore/internal/middleware"
	repo "bookstore/internal/repository"
	"bookstore/internal/validator"

	"github.com/labstack/echo/v4"
)

// AuthJWTの代わりにuser_idだけ入れる（0なら未ログイン扱い）
func newTestEcho(userID int64) (*echo.Echo, *echo.Group) {
	e := echo.New()
	e.Validator = validator.New()
	g := e.Group("/api", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID > 0 {
				c.Set(middleware.CtxUserIDKey, userID)
			}
			return next(c)
		}
	})
	return e, g
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// =====================
// 販売用のtx（メモリ上、ロールバックなし）
// =====================

type txStub struct {
	mu     sync.Mutex
	stock  map[int64]int64
	sales  map[int64]model.Sale
	items  []model.SaleItem
	nextID int64
}

func newTxStub(stock map[int64]int64) *txStub {
	return &txStub{stock: stock, sales: map[int64]model.Sale{}}
}

func (s *txStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

func (s *txStub) Sales() repo.SaleRepository          { return stubSales{s} }
func (s *txStub) SaleItems() repo.SaleItemRepository  { return stubItems{s} }
func (s *txStub) Inventory() repo.InventoryRepository { return stubInventory{s} }
func (s *txStub) Books() repo.BookRepository          { return nil }

func (s *txStub) id() int64 {
	s.nextID++
	return s.nextID
}

type stubSales struct{ s *txStub }

func (r stubSales) Create(ctx context.Context, sale model.Sale) (int64, error) {
	sale.ID = r.s.id()
	r.s.sales[sale.ID] = sale
	return sale.ID, nil
}

func (r stubSales) FindByID(ctx context.Context, id int64) (model.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return model.Sale{}, repo.ErrNotFound
	}
	return sale, nil
}

func (r stubSales) List(ctx context.Context, p repo.Page) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		out = append(out, sale)
	}
	return out, int64(len(out)), nil
}

func (r stubSales) CountByClient(ctx context.Context, clientID int64) (int64, error) {
	return 0, nil
}

type stubItems struct{ s *txStub }

func (r stubItems) Create(ctx context.Context, it model.SaleItem) (int64, error) {
	it.ID = r.s.id()
	r.s.items = append(r.s.items, it)
	return it.ID, nil
}

func (r stubItems) ListBySaleID(ctx context.Context, saleID int64) ([]model.SaleItem, error) {
	var out []model.SaleItem
	for _, it := range r.s.items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r stubItems) CountByBook(ctx context.Context, bookID int64) (int64, error) {
	return 0, nil
}

type stubInventory struct{ s *txStub }

func (r stubInventory) DecreaseStockIfEnough(ctx context.Context, bookID int64, qty int64) (bool, error) {
	if r.s.stock[bookID] < qty {
		return false, nil
	}
	r.s.stock[bookID] -= qty
	return true, nil
}

func (r stubInventory) IncreaseStock(ctx context.Context, bookID int64, qty int64) error {
	r.s.stock[bookID] += qty
	return nil
}

func (r stubInventory) CreateMovement(ctx context.Context, m model.InventoryMovement) (model.InventoryMovement, error) {
	m.ID = r.s.id()
	return m, nil
}

func (r stubInventory) ListMovements(ctx context.Context, f repo.MovementListFilter) ([]model.InventoryMovement, int64, error) {
	return nil, 0, nil
}

func (r stubInventory) CountMovementsByBook(ctx context.Context, bookID int64) (int64, error) {
	return 0, nil
}

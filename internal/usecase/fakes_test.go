package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"go.uber.org/zap"
)

var errInjected = errors.New("injected storage failure")

// =====================
// メモリ上のDB（WithinTxはスナップショットで巻き戻す）
// =====================

type memState struct {
	books     map[int64]model.Book
	sales     []model.Sale
	items     []model.SaleItem
	movements []model.InventoryMovement
	nextID    int64
}

func (s memState) clone() memState {
	books := make(map[int64]model.Book, len(s.books))
	for k, v := range s.books {
		books[k] = v
	}
	return memState{
		books:     books,
		sales:     append([]model.Sale(nil), s.sales...),
		items:     append([]model.SaleItem(nil), s.items...),
		movements: append([]model.InventoryMovement(nil), s.movements...),
		nextID:    s.nextID,
	}
}

type memDB struct {
	mu sync.Mutex
	st memState

	// n回目の明細insertで失敗させる（0なら失敗しない）
	failItemInsertAt int
	itemInserts      int

	txCount int
}

func newMemDB(books ...model.Book) *memDB {
	db := &memDB{st: memState{books: map[int64]model.Book{}, nextID: 100}}
	for _, b := range books {
		db.st.books[b.ID] = b
	}
	return db
}

func (db *memDB) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.txCount++
	snap := db.st.clone()
	if err := fn(memRepos{db: db}); err != nil {
		db.st = snap
		return err
	}
	return nil
}

func (db *memDB) stock(id int64) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.books[id].Stock
}

func (db *memDB) counts() (sales, items, movements int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.st.sales), len(db.st.items), len(db.st.movements)
}

func (db *memDB) id() int64 {
	db.st.nextID++
	return db.st.nextID
}

type memRepos struct{ db *memDB }

func (r memRepos) Sales() repo.SaleRepository          { return memSales(r) }
func (r memRepos) SaleItems() repo.SaleItemRepository  { return memSaleItems(r) }
func (r memRepos) Inventory() repo.InventoryRepository { return memInventory(r) }
func (r memRepos) Books() repo.BookRepository          { return memBooks(r) }

type memSales struct{ db *memDB }

func (m memSales) Create(ctx context.Context, s model.Sale) (int64, error) {
	s.ID = m.db.id()
	m.db.st.sales = append(m.db.st.sales, s)
	return s.ID, nil
}

func (m memSales) FindByID(ctx context.Context, id int64) (model.Sale, error) {
	for _, s := range m.db.st.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Sale{}, repo.ErrNotFound
}

func (m memSales) List(ctx context.Context, p repo.Page) ([]model.Sale, int64, error) {
	return append([]model.Sale(nil), m.db.st.sales...), int64(len(m.db.st.sales)), nil
}

func (m memSales) CountByClient(ctx context.Context, clientID int64) (int64, error) {
	var n int64
	for _, s := range m.db.st.sales {
		if s.ClientID != nil && *s.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

type memSaleItems struct{ db *memDB }

// 存在しない書籍は外部キー違反
func (m memSaleItems) Create(ctx context.Context, it model.SaleItem) (int64, error) {
	m.db.itemInserts++
	if m.db.failItemInsertAt > 0 && m.db.itemInserts == m.db.failItemInsertAt {
		return 0, errInjected
	}
	if _, ok := m.db.st.books[it.BookID]; !ok {
		return 0, repo.ErrReferenced
	}
	it.ID = m.db.id()
	m.db.st.items = append(m.db.st.items, it)
	return it.ID, nil
}

func (m memSaleItems) ListBySaleID(ctx context.Context, saleID int64) ([]model.SaleItem, error) {
	var out []model.SaleItem
	for _, it := range m.db.st.items {
		if it.SaleID == saleID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m memSaleItems) CountByBook(ctx context.Context, bookID int64) (int64, error) {
	var n int64
	for _, it := range m.db.st.items {
		if it.BookID == bookID {
			n++
		}
	}
	return n, nil
}

type memInventory struct{ db *memDB }

func (m memInventory) DecreaseStockIfEnough(ctx context.Context, bookID int64, qty int64) (bool, error) {
	b, ok := m.db.st.books[bookID]
	if !ok || b.Stock < qty {
		return false, nil
	}
	b.Stock -= qty
	m.db.st.books[bookID] = b
	return true, nil
}

func (m memInventory) IncreaseStock(ctx context.Context, bookID int64, qty int64) error {
	b, ok := m.db.st.books[bookID]
	if !ok {
		return repo.ErrNotFound
	}
	b.Stock += qty
	m.db.st.books[bookID] = b
	return nil
}

func (m memInventory) CreateMovement(ctx context.Context, mv model.InventoryMovement) (model.InventoryMovement, error) {
	mv.ID = m.db.id()
	m.db.st.movements = append(m.db.st.movements, mv)
	return mv, nil
}

func (m memInventory) ListMovements(ctx context.Context, f repo.MovementListFilter) ([]model.InventoryMovement, int64, error) {
	var out []model.InventoryMovement
	for _, mv := range m.db.st.movements {
		if f.BookID == nil || mv.BookID == *f.BookID {
			out = append(out, mv)
		}
	}
	return out, int64(len(out)), nil
}

func (m memInventory) CountMovementsByBook(ctx context.Context, bookID int64) (int64, error) {
	var n int64
	for _, mv := range m.db.st.movements {
		if mv.BookID == bookID {
			n++
		}
	}
	return n, nil
}

type memBooks struct{ db *memDB }

func (m memBooks) List(ctx context.Context, q repo.BookListQuery) ([]model.Book, int64, error) {
	var out []model.Book
	for _, b := range m.db.st.books {
		if q.Q == "" || strings.Contains(strings.ToLower(b.Title), strings.ToLower(q.Q)) {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (m memBooks) ListLowStock(ctx context.Context) ([]model.Book, error) {
	var out []model.Book
	for _, b := range m.db.st.books {
		if b.IsLowStock() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m memBooks) FindByID(ctx context.Context, id int64) (model.Book, error) {
	b, ok := m.db.st.books[id]
	if !ok {
		return model.Book{}, repo.ErrNotFound
	}
	return b, nil
}

// ISBNの重複は一意制約違反
func (m memBooks) Create(ctx context.Context, b model.Book) (model.Book, error) {
	for _, x := range m.db.st.books {
		if x.ISBN == b.ISBN {
			return model.Book{}, repo.ErrConflict
		}
	}
	b.ID = m.db.id()
	m.db.st.books[b.ID] = b
	return b, nil
}

// 在庫列は書かない
func (m memBooks) Update(ctx context.Context, b model.Book) error {
	cur, ok := m.db.st.books[b.ID]
	if !ok {
		return repo.ErrNotFound
	}
	b.Stock = cur.Stock
	for _, x := range m.db.st.books {
		if x.ID != b.ID && x.ISBN == b.ISBN {
			return repo.ErrConflict
		}
	}
	m.db.st.books[b.ID] = b
	return nil
}

func (m memBooks) Delete(ctx context.Context, id int64) error {
	if _, ok := m.db.st.books[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.db.st.books, id)
	return nil
}

func (m memBooks) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var n int64
	for _, b := range m.db.st.books {
		if b.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (m memBooks) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	for _, b := range m.db.st.books {
		if b.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// =====================
// 副作用の記録用
// =====================

type recordingCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes []string
	gets    int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{data: map[string][]byte{}}
}

func (c *recordingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *recordingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *recordingCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}

func (c *recordingCache) deleteCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.deletes)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []usecase.SaleCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishSaleCreated(ctx context.Context, e usecase.SaleCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func nopLogger() *zap.Logger { return zap.NewNop() }

func httpErr(err error) *usecase.HTTPError {
	he, _ := usecase.AsHTTPError(err)
	return he
}

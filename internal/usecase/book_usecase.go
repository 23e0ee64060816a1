package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookUsecase struct {
	books     repo.BookRepository
	saleItems repo.SaleItemRepository
	inventory repo.InventoryRepository
	audit     repo.AuditLogRepository
	clock     Clock
	logger    *zap.Logger
}

// DI
func NewBookUsecase(
	books repo.BookRepository,
	saleItems repo.SaleItemRepository,
	inventory repo.InventoryRepository,
	audit repo.AuditLogRepository,
	clock Clock,
	logger *zap.Logger,
) *BookUsecase {
	return &BookUsecase{
		books:     books,
		saleItems: saleItems,
		inventory: inventory,
		audit:     audit,
		clock:     clock,
		logger:    logger,
	}
}

// GET /api/librosの入力
type ListBooksInput struct {
	Page       int
	Limit      int
	Q          string
	AuthorID   *int64
	CategoryID *int64
}

type BookListOutput struct {
	Items []model.Book `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type BookInput struct {
	ISBN       string
	Title      string
	AuthorID   int64
	CategoryID int64
	Price      decimal.Decimal
	Stock      int64
	MinStock   int64
}

func (u *BookUsecase) List(ctx context.Context, in ListBooksInput) (BookListOutput, error) {
	if in.Page < 1 {
		return BookListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return BookListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return BookListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	items, total, err := u.books.List(ctx, repo.BookListQuery{
		Page:       repo.Page{Page: in.Page, Limit: in.Limit},
		Q:          strings.TrimSpace(in.Q),
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		return BookListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return BookListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *BookUsecase) LowStock(ctx context.Context) ([]model.Book, error) {
	items, err := u.books.ListLowStock(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *BookUsecase) Get(ctx context.Context, id int64) (model.Book, error) {
	if id <= 0 {
		return model.Book{}, errInvalidID()
	}
	b, err := u.books.FindByID(ctx, id)
	if err != nil {
		return model.Book{}, mapRepoErr(err, "")
	}
	return b, nil
}

func validateBook(in BookInput) (BookInput, error) {
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.Title = strings.TrimSpace(in.Title)

	if in.ISBN == "" || len(in.ISBN) > 20 {
		return in, NewHTTPError(http.StatusBadRequest, "invalid isbn")
	}
	if in.Title == "" {
		return in, NewHTTPError(http.StatusBadRequest, "titulo required")
	}
	if in.AuthorID <= 0 {
		return in, NewHTTPError(http.StatusBadRequest, "invalid autor_id")
	}
	if in.CategoryID <= 0 {
		return in, NewHTTPError(http.StatusBadRequest, "invalid categoria_id")
	}
	if !validMoney(in.Price) {
		return in, NewHTTPError(http.StatusBadRequest, "precio must be >= 0 with at most 2 decimals")
	}
	if in.Stock < 0 {
		return in, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if in.MinStock < 0 {
		return in, NewHTTPError(http.StatusBadRequest, "stock_minimo must be >= 0")
	}
	return in, nil
}

func (u *BookUsecase) Create(ctx context.Context, in BookInput) (model.Book, error) {
	in, err := validateBook(in)
	if err != nil {
		return model.Book{}, err
	}

	b, err := u.books.Create(ctx, model.Book{
		ISBN:       in.ISBN,
		Title:      in.Title,
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
		Price:      in.Price,
		Stock:      in.Stock,
		MinStock:   in.MinStock,
	})
	if err != nil {
		return model.Book{}, mapRepoErr(err, "isbn already exists")
	}
	return b, nil
}

func (u *BookUsecase) Update(ctx context.Context, actorID int64, id int64, in BookInput) error {
	if actorID <= 0 {
		return errUnauthorized()
	}
	if id <= 0 {
		return errInvalidID()
	}
	in, err := validateBook(in)
	if err != nil {
		return err
	}

	//変更前（before）
	before, err := u.books.FindByID(ctx, id)
	if err != nil {
		return mapRepoErr(err, "")
	}

	after := model.Book{
		ID:         id,
		ISBN:       in.ISBN,
		Title:      in.Title,
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
		Price:      in.Price,
		Stock:      before.Stock, // 在庫は/api/movimientos経由でのみ変更
		MinStock:   in.MinStock,
	}
	if err := u.books.Update(ctx, after); err != nil {
		return mapRepoErr(err, "isbn already exists")
	}

	u.writeAudit(ctx, actorID, model.AuditActionUpdateBook, id, auditBook(before), auditBook(after))
	return nil
}

func (u *BookUsecase) Delete(ctx context.Context, actorID int64, id int64) error {
	if actorID <= 0 {
		return errUnauthorized()
	}
	if id <= 0 {
		return errInvalidID()
	}

	before, err := u.books.FindByID(ctx, id)
	if err != nil {
		return mapRepoErr(err, "")
	}

	//販売明細・入出庫履歴から参照されていれば削除不可
	n, err := u.saleItems.CountByBook(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n > 0 {
		return errInUse("book", n, "sale items")
	}
	n, err = u.inventory.CountMovementsByBook(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if n > 0 {
		return errInUse("book", n, "inventory movements")
	}

	if err := u.books.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "")
	}

	u.writeAudit(ctx, actorID, model.AuditActionDeleteBook, id, auditBook(before), "")
	return nil
}

// 監査ログに残す項目
type bookSnapshot struct {
	ISBN     string          `json:"isbn"`
	Title    string          `json:"titulo"`
	Price    decimal.Decimal `json:"precio"`
	Stock    int64           `json:"stock"`
	MinStock int64           `json:"stock_minimo"`
}

func auditBook(b model.Book) string {
	raw, err := json.Marshal(bookSnapshot{ISBN: b.ISBN, Title: b.Title, Price: b.Price, Stock: b.Stock, MinStock: b.MinStock})
	if err != nil {
		return ""
	}
	return string(raw)
}

// 監査ログの失敗は操作自体を失敗させない
func (u *BookUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, bookID int64, before, after string) {
	err := u.audit.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceBook,
		ResourceID:   bookID,
		BeforeJSON:   before,
		AfterJSON:    after,
		CreatedAt:    u.clock.Now(),
	})
	if err != nil {
		u.logger.Warn("audit log write failed", zap.Int64("book_id", bookID), zap.Error(err))
	}
}

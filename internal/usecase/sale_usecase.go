package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bookstore/internal/domain/model"
	"bookstore/internal/observability"
	repo "bookstore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// 確定後の副作用（イベント送信・キャッシュ削除）の待ち時間上限
const afterCommitTimeout = 3 * time.Second

type SaleUsecase struct {
	tx        repo.TransactionManager
	publisher SaleEventPublisher
	cache     Cache
	clock     Clock
	logger    *zap.Logger
}

func NewSaleUsecase(
	tx repo.TransactionManager,
	publisher SaleEventPublisher,
	cache Cache,
	clock Clock,
	logger *zap.Logger,
) *SaleUsecase {
	return &SaleUsecase{
		tx:        tx,
		publisher: publisher,
		cache:     cache,
		clock:     clock,
		logger:    logger,
	}
}

// カートの1行。単価はカートに入れた時点の値
type SaleItemInput struct {
	BookID    int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

type CreateSaleInput struct {
	ClientID *int64 // nilは店頭の匿名客
	Total    decimal.Decimal
	Items    []SaleItemInput
}

type SaleListOutput struct {
	Items []model.Sale `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type SaleCreatedEvent struct {
	EventID    string          `json:"event_id"`
	SaleID     int64           `json:"sale_id"`
	ClientID   *int64          `json:"client_id,omitempty"`
	OperatorID int64           `json:"operator_id"`
	Total      decimal.Decimal `json:"total"`
	Items      []SaleEventItem `json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
}

type SaleEventItem struct {
	BookID    int64           `json:"book_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type insufficientStockError struct {
	BookID int64
}

func (e *insufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for book %d", e.BookID)
}

// CreateSale records the header, every line item and every stock
// decrement in one transaction, or nothing at all.
// Calling it twice with the same cart records two sales.
func (u *SaleUsecase) CreateSale(ctx context.Context, operatorID int64, in CreateSaleInput) (model.Sale, error) {
	if operatorID <= 0 {
		return model.Sale{}, errUnauthorized()
	}
	if err := validateSaleInput(in); err != nil {
		observability.SalesFailedTotal.WithLabelValues("validation").Inc()
		return model.Sale{}, err
	}

	//合計はカート確定時の値をそのまま保存する（差異はログだけ）
	if sum := cartSum(in.Items); !sum.Equal(in.Total) {
		u.logger.Warn("sale total differs from line items",
			zap.Int64("user_id", operatorID),
			zap.String("total", in.Total.String()),
			zap.String("items_sum", sum.String()))
	}

	ctx, span := observability.StartSpan(ctx, "SaleUsecase.CreateSale")
	defer span.End()
	span.SetAttributes(attribute.Int("sale.items", len(in.Items)))

	//クライアント切断でtxを中断しない
	txCtx := context.WithoutCancel(ctx)

	now := u.clock.Now()
	start := time.Now()

	var created model.Sale
	err := u.tx.WithinTx(txCtx, func(r repo.TxRepos) error {
		//ヘッダ
		header := model.Sale{
			ClientID:  in.ClientID,
			UserID:    operatorID,
			Total:     in.Total,
			CreatedAt: now,
		}
		saleID, err := r.Sales().Create(txCtx, header)
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
		header.ID = saleID

		//明細→在庫減算をカート順に
		lines := make([]model.SaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			line := model.SaleItem{
				SaleID:    saleID,
				BookID:    it.BookID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			}
			lineID, err := r.SaleItems().Create(txCtx, line)
			if err != nil {
				return fmt.Errorf("insert sale item (book %d): %w", it.BookID, err)
			}
			line.ID = lineID

			ok, err := r.Inventory().DecreaseStockIfEnough(txCtx, it.BookID, it.Quantity)
			if err != nil {
				return fmt.Errorf("decrease stock (book %d): %w", it.BookID, err)
			}
			if !ok {
				return &insufficientStockError{BookID: it.BookID}
			}
			lines = append(lines, line)
		}

		header.Items = lines
		created = header
		return nil
	})
	observability.SaleTxLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rolled back")

		var ise *insufficientStockError
		if errors.As(err, &ise) {
			observability.SalesFailedTotal.WithLabelValues("insufficient_stock").Inc()
			u.logger.Warn("sale rejected: insufficient stock",
				zap.Int64("user_id", operatorID),
				zap.Int64("book_id", ise.BookID))
			return model.Sale{}, NewHTTPError(http.StatusConflict, ise.Error())
		}

		observability.SalesFailedTotal.WithLabelValues("tx_error").Inc()
		u.logger.Error("sale transaction rolled back",
			zap.Int64("user_id", operatorID),
			zap.Error(err))
		return model.Sale{}, NewHTTPError(http.StatusInternalServerError, "sale transaction failed")
	}

	span.SetAttributes(attribute.Int64("sale.id", created.ID))
	observability.SalesCreatedTotal.Inc()
	observability.SaleItemsSoldTotal.Add(float64(cartUnits(in.Items)))
	u.logger.Info("sale committed",
		zap.Int64("sale_id", created.ID),
		zap.Int64("user_id", operatorID),
		zap.String("total", created.Total.String()),
		zap.Int("items", len(created.Items)))

	u.afterCommit(txCtx, created)
	return created, nil
}

// コミット後だけ実行。失敗してもレスポンスには影響させない
func (u *SaleUsecase) afterCommit(ctx context.Context, sale model.Sale) {
	ctx, cancel := context.WithTimeout(ctx, afterCommitTimeout)
	defer cancel()

	if err := u.cache.Delete(ctx, dashboardCacheKey); err != nil {
		u.logger.Warn("dashboard cache invalidation failed", zap.Int64("sale_id", sale.ID), zap.Error(err))
	}

	ev := SaleCreatedEvent{
		EventID:    uuid.NewString(),
		SaleID:     sale.ID,
		ClientID:   sale.ClientID,
		OperatorID: sale.UserID,
		Total:      sale.Total,
		CreatedAt:  sale.CreatedAt,
		Items:      make([]SaleEventItem, 0, len(sale.Items)),
	}
	for _, it := range sale.Items {
		ev.Items = append(ev.Items, SaleEventItem{BookID: it.BookID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	if err := u.publisher.PublishSaleCreated(ctx, ev); err != nil {
		u.logger.Warn("sale event publish failed", zap.Int64("sale_id", sale.ID), zap.Error(err))
	}
}

func validateSaleInput(in CreateSaleInput) error {
	if len(in.Items) == 0 {
		return NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	if in.ClientID != nil && *in.ClientID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid cliente_id")
	}
	if !validMoney(in.Total) {
		return NewHTTPError(http.StatusBadRequest, "total must be >= 0 with at most 2 decimals")
	}
	for i, it := range in.Items {
		if it.BookID <= 0 {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: invalid libro_id", i+1))
		}
		if it.Quantity < 1 {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: cantidad must be >= 1", i+1))
		}
		if !validMoney(it.UnitPrice) {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("item %d: precio_unitario must be >= 0 with at most 2 decimals", i+1))
		}
	}
	return nil
}

func cartSum(items []SaleItemInput) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return sum
}

func cartUnits(items []SaleItemInput) int64 {
	var n int64
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func (u *SaleUsecase) ListSales(ctx context.Context, page int, limit int) (SaleListOutput, error) {
	if page < 1 {
		return SaleListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return SaleListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var out SaleListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		sales, total, err := r.Sales().List(ctx, repo.Page{Page: page, Limit: limit})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = SaleListOutput{Items: sales, Total: total, Page: page, Limit: limit}
		return nil
	})
	if err != nil {
		return SaleListOutput{}, err
	}
	return out, nil
}

func (u *SaleUsecase) GetSale(ctx context.Context, saleID int64) (model.Sale, error) {
	if saleID <= 0 {
		return model.Sale{}, errInvalidID()
	}

	var out model.Sale
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Sales().FindByID(ctx, saleID)
		if err != nil {
			return mapRepoErr(err, "")
		}

		items, err := r.SaleItems().ListBySaleID(ctx, saleID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		s.Items = items
		out = s
		return nil
	})
	if err != nil {
		return model.Sale{}, err
	}
	return out, nil
}

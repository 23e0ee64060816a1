package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bookstore/internal/domain/model"
	"bookstore/internal/observability"
	repo "bookstore/internal/repository"

	"go.uber.org/zap"
)

// 手動の入庫・出庫（販売以外の在庫変動）
type InventoryUsecase struct {
	tx     repo.TransactionManager
	cache  Cache
	clock  Clock
	logger *zap.Logger
}

func NewInventoryUsecase(tx repo.TransactionManager, cache Cache, clock Clock, logger *zap.Logger) *InventoryUsecase {
	return &InventoryUsecase{tx: tx, cache: cache, clock: clock, logger: logger}
}

type MovementInput struct {
	BookID   int64
	Kind     model.MovementKind
	Quantity int64
	Reason   string
}

type MovementListOutput struct {
	Items []model.InventoryMovement `json:"items"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

var errNotEnoughStock = errors.New("not enough stock")

// RegisterMovement appends a ledger row and adjusts the stock counter in
// the same transaction.
func (u *InventoryUsecase) RegisterMovement(ctx context.Context, operatorID int64, in MovementInput) (model.InventoryMovement, error) {
	if operatorID <= 0 {
		return model.InventoryMovement{}, errUnauthorized()
	}
	if in.BookID <= 0 {
		return model.InventoryMovement{}, NewHTTPError(http.StatusBadRequest, "invalid libro_id")
	}
	if !in.Kind.Valid() {
		return model.InventoryMovement{}, NewHTTPError(http.StatusBadRequest, "tipo_movimiento must be ENTRADA or SALIDA")
	}
	if in.Quantity < 1 {
		return model.InventoryMovement{}, NewHTTPError(http.StatusBadRequest, "cantidad must be >= 1")
	}
	reason := strings.TrimSpace(in.Reason)
	if len(reason) > 255 {
		return model.InventoryMovement{}, NewHTTPError(http.StatusBadRequest, "motivo too long")
	}

	ctx, span := observability.StartSpan(ctx, "InventoryUsecase.RegisterMovement")
	defer span.End()

	var out model.InventoryMovement
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Books().FindByID(ctx, in.BookID); err != nil {
			return err
		}

		switch in.Kind {
		case model.MovementOut:
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, in.BookID, in.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return errNotEnoughStock
			}
		case model.MovementIn:
			if err := r.Inventory().IncreaseStock(ctx, in.BookID, in.Quantity); err != nil {
				return err
			}
		}

		m, err := r.Inventory().CreateMovement(ctx, model.InventoryMovement{
			BookID:    in.BookID,
			Kind:      in.Kind,
			Quantity:  in.Quantity,
			UserID:    operatorID,
			Reason:    reason,
			CreatedAt: u.clock.Now(),
		})
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, errNotEnoughStock) {
			return model.InventoryMovement{}, NewHTTPError(http.StatusBadRequest, "insufficient stock")
		}
		if !errors.Is(err, repo.ErrNotFound) {
			u.logger.Error("inventory movement rolled back", zap.Int64("book_id", in.BookID), zap.Error(err))
		}
		return model.InventoryMovement{}, mapRepoErr(err, "")
	}

	observability.InventoryMovementsTotal.WithLabelValues(string(in.Kind)).Inc()
	u.logger.Info("inventory movement recorded",
		zap.Int64("movement_id", out.ID),
		zap.Int64("book_id", in.BookID),
		zap.String("kind", string(in.Kind)),
		zap.Int64("quantity", in.Quantity),
		zap.Int64("user_id", operatorID))

	if err := u.cache.Delete(context.WithoutCancel(ctx), dashboardCacheKey); err != nil {
		u.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
	return out, nil
}

func (u *InventoryUsecase) ListMovements(ctx context.Context, bookID *int64, page int, limit int) (MovementListOutput, error) {
	if page < 1 {
		return MovementListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return MovementListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if bookID != nil && *bookID <= 0 {
		return MovementListOutput{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid libro_id %d", *bookID))
	}

	var out MovementListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, total, err := r.Inventory().ListMovements(ctx, repo.MovementListFilter{
			Page:   repo.Page{Page: page, Limit: limit},
			BookID: bookID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = MovementListOutput{Items: items, Total: total, Page: page, Limit: limit}
		return nil
	})
	if err != nil {
		return MovementListOutput{}, err
	}
	return out, nil
}
